package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "backend_request_latency_seconds",
			Namespace: ImmermexNamespace,
			Buckets:   prometheus.DefBuckets,
			Help:      "The latency of requests against the Immermex compute backend in seconds.",
		},
		[]string{"endpoint"},
	)

	BackendRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "backend_request_errors_total",
			Namespace: ImmermexNamespace,
			Help:      "The total number of failed backend requests, by error class.",
		},
		[]string{"endpoint", "class"},
	)

	FetchRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name:      "fetch_retries_total",
			Namespace: ImmermexNamespace,
			Help:      "The total number of producer retries performed by the fetch layer.",
		},
	)
)
