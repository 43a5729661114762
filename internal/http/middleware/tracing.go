package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps requests in an ochttp span annotated with the
// request line and the targeted tenant schema
func TracingMiddleware(next http.Handler) http.Handler {
	handler := &ochttp.Handler{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := trace.FromContext(r.Context())
			if span != nil {
				span.AddAttributes(
					trace.StringAttribute("http.method", r.Method),
					trace.StringAttribute("http.path", r.URL.Path),
					trace.StringAttribute("http.user_agent", r.UserAgent()),
				)
				if schema := r.Header.Get(TenantSchemaHeader); schema != "" {
					span.AddAttributes(trace.StringAttribute("tenant.schema", schema))
				}
				if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
					span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
				}
			}

			next.ServeHTTP(&statusRecorder{ResponseWriter: w, ctx: r.Context()}, r)
		}),
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
	return handler
}

// statusRecorder marks the active span as failed for 4xx and 5xx answers
type statusRecorder struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code

	if span := trace.FromContext(sr.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	sr.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*statusRecorder)(nil)
