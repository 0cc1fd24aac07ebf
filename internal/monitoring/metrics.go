package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gotix_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotix_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gotix_orders_created_total",
		Help: "Orders successfully created",
	})

	ordersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gotix_orders_completed_total",
		Help: "Orders moved to the completed state",
	})

	ordersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gotix_orders_cancelled_total",
		Help: "Orders moved to the cancelled state",
	})

	vouchersIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gotix_vouchers_issued_total",
		Help: "Vouchers generated at order completion",
	})

	reservationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gotix_reservation_rejections_total",
		Help: "Order attempts rejected for insufficient ticket stock",
	})
)

func RecordOrderCreated()   { ordersCreated.Inc() }
func RecordOrderCompleted() { ordersCompleted.Inc() }
func RecordOrderCancelled() { ordersCancelled.Inc() }

func RecordVouchersIssued(n int) { vouchersIssued.Add(float64(n)) }

func RecordReservationRejected() { reservationRejections.Inc() }

// HTTPMetrics records per-request latency and counts. Routes are labelled
// by their registered pattern, not the raw path, to keep cardinality bounded.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

// Handler exposes the Prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
