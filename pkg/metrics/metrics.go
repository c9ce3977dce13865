package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordLoad records the outcome of reading the input directory
func (r *Registry) RecordLoad(files, records int) {
	r.FilesLoadedTotal.Add(float64(files))
	r.RecordsLoadedTotal.Add(float64(records))
}

// RecordRejected records records skipped for reason
func (r *Registry) RecordRejected(reason string, count int) {
	r.RecordsRejectedTotal.WithLabelValues(reason).Add(float64(count))
}

// RecordGraph records the size of a graph at a pipeline stage
func (r *Registry) RecordGraph(graph, stage string, nodes, edges int) {
	r.GraphNodes.WithLabelValues(graph, stage).Set(float64(nodes))
	r.GraphEdges.WithLabelValues(graph, stage).Set(float64(edges))
}

// RecordStage records how long a stage took
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Set(duration.Seconds())
}

// RecordArtifact records one written artifact
func (r *Registry) RecordArtifact(bytes int64) {
	r.ArtifactsWrittenTotal.Inc()
	r.ArtifactBytesTotal.Add(float64(bytes))
}

// RecordPublish records one publication attempt
func (r *Registry) RecordPublish(sink string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.PublishOperationsTotal.WithLabelValues(sink, status).Inc()
}

// UpdateSystemMetrics samples runtime memory statistics
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// WriteTextfile writes every metric to path in the text exposition format,
// for pickup by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
