// Package middleware provides net/http middleware for the inspector.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request and stream metrics
//
// # OpenTelemetry Middleware
//
// Tracing starts a server span for every request, named after the matched
// route pattern, and stores it in the request context:
//
//	r.Use(middleware.Tracing(
//	    middleware.WithTracerName("fiberctl"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The tracer comes from the global OpenTelemetry provider unless one is
// passed with WithTracer.
//
// # Prometheus Metrics
//
// Metrics collects:
//   - fiber_inspector_requests_total: requests by route and status class
//   - fiber_inspector_request_duration_seconds: request latency by route
//   - fiber_inspector_request_errors_total: 4xx and 5xx responses by kind
//   - fiber_inspector_stream_clients: connected live stream clients
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
package middleware
