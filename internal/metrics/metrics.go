// Package metrics holds the Prometheus collectors shared by the API client and
// the dashboard server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubescout",
			Name:      "api_requests_total",
			Help:      "Requests sent to the video API, by status code and method.",
		},
		[]string{"code", "method"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubescout",
			Name:      "http_requests_total",
			Help:      "Dashboard requests, by route and status code.",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tubescout",
			Name:      "http_request_duration_seconds",
			Help:      "Dashboard request duration in seconds, by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(APIRequests, HTTPRequests, HTTPDuration)
}
