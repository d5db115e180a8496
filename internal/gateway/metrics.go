package gateway

import "expvar"

var (
	metricRequestsTotal   = expvar.NewInt("gateway_requests_total")
	metricRequestErrors   = expvar.NewInt("gateway_request_errors_total")
	metricRequestTimeouts = expvar.NewInt("gateway_request_timeouts_total")
	metricIntentsRefused  = expvar.NewInt("gateway_intents_refused_total")
)
