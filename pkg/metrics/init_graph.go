package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leaknet_graph_nodes",
			Help: "Number of nodes in a projection graph",
		},
		[]string{"graph", "stage"}, // officers|corporations, projected|filtered
	)

	r.GraphEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leaknet_graph_edges",
			Help: "Number of edges in a projection graph",
		},
		[]string{"graph", "stage"},
	)
}

func (r *Registry) initStageMetrics() {
	r.StageDuration = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leaknet_stage_duration_seconds",
			Help: "Wall time of the last run of each pipeline stage",
		},
		[]string{"stage"},
	)
}
