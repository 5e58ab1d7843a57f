package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_storage_errors_total",
		Help: "Cart storage operations that failed and were degraded to an empty or unsaved cart",
	},
	[]string{"operation"},
)
