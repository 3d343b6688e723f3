package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "obrago"

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// StatusCategoryCounter counts responses by 2xx/4xx/5xx
	StatusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_status_category_total",
			Help:      "Total number of responses by status category",
		},
		[]string{"category"},
	)

	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_gate_decisions_total",
			Help:      "Identity gate outcomes by resolved state",
		},
		[]string{"state"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Outbound emails by kind and result",
		},
		[]string{"kind", "result"},
	)

	adminActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_actions_total",
			Help:      "Admin role workflow actions",
		},
		[]string{"action"},
	)

	registerOnce sync.Once
)

// Register adds every collector to the default registry. Safe to call twice.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDurationHistogram,
			StatusCategoryCounter,
			gateDecisions,
			emailsSent,
			adminActions,
		)
	})
}

// Middleware records request metrics. The route template is used as path
// label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)
		method := c.Request.Method

		RequestCounter.WithLabelValues(method, path, statusStr).Inc()
		RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			StatusCategoryCounter.WithLabelValues(category).Inc()
		}
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GateDecision counts an identity gate outcome.
func GateDecision(state string) {
	gateDecisions.WithLabelValues(state).Inc()
}

// EmailSent counts an outbound email attempt.
func EmailSent(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	emailsSent.WithLabelValues(kind, result).Inc()
}

// AdminAction counts an admin workflow transition.
func AdminAction(action string) {
	adminActions.WithLabelValues(action).Inc()
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
