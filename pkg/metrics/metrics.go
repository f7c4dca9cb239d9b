package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio del workflow de órdenes.
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_orders_created_total",
		Help: "Órdenes creadas exitosamente.",
	})
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_orders_cancelled_total",
		Help: "Órdenes canceladas exitosamente.",
	})
	OrdersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_orders_rejected_total",
		Help: "Órdenes rechazadas por validación o falta de stock.",
	})
)

// HTTPRequestDuration histograma de latencia HTTP por ruta, método y status.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ventas_http_request_duration_seconds",
	Help:    "Duración de las peticiones HTTP.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})
