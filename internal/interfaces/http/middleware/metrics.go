package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	appmetrics "github.com/turtacn/FragSAR/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count, latency, response size and in-flight
// requests, labelled by chi route pattern so path parameters and query
// strings do not explode label cardinality.
func Metrics(m *appmetrics.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inFlight := m.HTTPInFlight.WithLabelValues()
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			m.RecordHTTPRequest(r.Method, routePattern(r), statusOf(ww), time.Since(start), int64(ww.BytesWritten()))
		})
	}
}

//Personal.AI order the ending
