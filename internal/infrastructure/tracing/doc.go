/*
Package tracing assigns request ids and logs one span per HTTP request.

Trace context travels in the X-Trace-ID and X-Span-ID headers. A request
without a trace id gets a fresh one; both ids are echoed in the response.
Completed spans are handed to a buffered collector that logs them with zap
off the request path.

# Usage

	tracer := tracing.New("webdesk", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	traceID := tracing.GetTraceID(c.Request.Context())
*/
package tracing
