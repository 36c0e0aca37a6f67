package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yusufkecer/body-composition-backend/internal/metrics"
)

// RequestMetrics counts requests by route template so path parameters do
// not explode label cardinality.
func RequestMetrics(metricsManager *metrics.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route := "unmatched"
			if current := mux.CurrentRoute(req); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			metricsManager.GaugeRequests.Inc()
			defer metricsManager.GaugeRequests.Dec()
			defer func(begin time.Time) {
				metricsManager.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
			}(time.Now())

			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, req)

			metricsManager.CounterRequests.WithLabelValues(req.Method, route, strconv.Itoa(resp.statusCode)).Inc()
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (r *responseWriter) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseWriter) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
