package hub

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirigera_hub_requests_total",
			Help: "Hub API requests by resource, method and status.",
		},
		[]string{"resource", "method", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dirigera_hub_request_duration_seconds",
			Help:    "Hub API request latency by resource and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
	eventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirigera_hub_events_total",
			Help: "Events received from the hub event stream by type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration, eventCounter)
}

// resource reduces a path to its first segment so ids do not explode label
// cardinality: "/devices/abc" becomes "devices".
func resource(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

func observe(method, path, status string, start time.Time) {
	r := resource(path)
	requestCounter.WithLabelValues(r, method, status).Inc()
	requestDuration.WithLabelValues(r, method).Observe(time.Since(start).Seconds())
}
