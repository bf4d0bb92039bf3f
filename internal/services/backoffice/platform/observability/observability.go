// Package observability provides request logging for the backoffice HTTP
// surface.
package observability

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"go.opentelemetry.io/otel/trace"
)

// statusRecorder captures the status code and byte count written downstream.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogger logs one key/value line per request. A nil logger uses the
// standard logger. Requests inside a traced span also log its trace id,
// so the middleware belongs inside the tracing handler.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Printf(
				"http request method=%s path=%s status=%d bytes=%d latency=%s request_id=%s%s",
				strings.TrimSpace(r.Method),
				strings.TrimSpace(r.URL.Path),
				status,
				recorder.bytes,
				time.Since(started).Round(time.Microsecond),
				httpx.RequestIDFrom(r),
				traceField(r),
			)
		})
	}
}

func traceField(r *http.Request) string {
	sc := trace.SpanContextFromContext(r.Context())
	if !sc.HasTraceID() {
		return ""
	}
	return " trace_id=" + sc.TraceID().String()
}
