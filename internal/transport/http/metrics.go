package httptransport

import "expvar"

var (
	metricViewRequestsTotal = expvar.NewInt("view_requests_total")

	metricGestureTotal  = expvar.NewInt("gesture_total")
	metricGestureErrors = expvar.NewInt("gesture_errors_total")

	metricSSEConnectionsTotal  = expvar.NewInt("view_sse_connections_total")
	metricSSEConnectionsActive = expvar.NewInt("view_sse_connections_active")

	metricWSConnectionsTotal  = expvar.NewInt("view_ws_connections_total")
	metricWSConnectionsActive = expvar.NewInt("view_ws_connections_active")
)
