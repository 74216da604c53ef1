package onap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onapsdk_requests_total",
		Help: "Requests sent to ONAP services by service, method and status code.",
	}, []string{"service", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "onapsdk_request_duration_seconds",
		Help:    "Latency of requests sent to ONAP services.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})
)

func recordRequest(service, method, code string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(service, method, code).Inc()
	requestDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}
