package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLoadMetrics() {
	r.FilesLoadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "leaknet_files_loaded_total",
			Help: "Number of company documents read from the input directory",
		},
	)

	r.RecordsLoadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "leaknet_records_loaded_total",
			Help: "Number of officer records decoded",
		},
	)

	r.RecordsRejectedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaknet_records_rejected_total",
			Help: "Number of officer records left out of the membership index",
		},
		[]string{"reason"},
	)
}
