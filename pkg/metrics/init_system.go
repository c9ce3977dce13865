package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPublishMetrics() {
	r.ArtifactsWrittenTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "leaknet_artifacts_written_total",
			Help: "Number of artifacts written to the output directory",
		},
	)

	r.ArtifactBytesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "leaknet_artifact_bytes_total",
			Help: "Bytes written to the output directory",
		},
	)

	r.PublishOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaknet_publish_operations_total",
			Help: "Artifact publications per sink",
		},
		[]string{"sink", "status"}, // s3|postgres, success|error
	)
}

func (r *Registry) initSystemMetrics() {
	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "leaknet_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects at the end of the run",
		},
	)
}
