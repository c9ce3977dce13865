package metrics

import "github.com/prometheus/client_golang/prometheus"

// Graph and stage label values.
const (
	GraphOfficers  = "officers"
	GraphCompanies = "corporations"

	StageProjected = "projected"
	StageFiltered  = "filtered"
)

// Registry holds all metrics for one pipeline run
type Registry struct {
	// Load Metrics
	FilesLoadedTotal     prometheus.Counter
	RecordsLoadedTotal   prometheus.Counter
	RecordsRejectedTotal *prometheus.CounterVec

	// Graph Metrics
	GraphNodes *prometheus.GaugeVec
	GraphEdges *prometheus.GaugeVec

	// Stage Metrics
	StageDuration *prometheus.GaugeVec

	// Publish Metrics
	ArtifactsWrittenTotal  prometheus.Counter
	ArtifactBytesTotal     prometheus.Counter
	PublishOperationsTotal *prometheus.CounterVec

	// System Metrics
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initLoadMetrics()
	r.initGraphMetrics()
	r.initStageMetrics()
	r.initPublishMetrics()
	r.initSystemMetrics()

	return r
}
