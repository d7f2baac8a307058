package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pdp_api_requests_total",
		Help: "API requests by endpoint and outcome.",
	},
	[]string{"endpoint", "status"},
)
