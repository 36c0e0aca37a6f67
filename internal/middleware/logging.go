package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey contextKey = "request_id"
)

// RequestID returns the ID assigned by LogRequest, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns a logrus entry tagged with the request ID of ctx.
func Logger(ctx context.Context) *log.Entry {
	entry := log.NewEntry(log.StandardLogger())
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	if accountID, ok := AccountID(ctx); ok {
		entry = entry.WithField("account_id", accountID)
	}
	return entry
}

// LogRequest tags each request with an ID, echoed in the response, and logs
// it once served. A valid incoming X-Request-ID is reused.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		begin := time.Now()
		resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(resp, r.WithContext(ctx))

		log.WithFields(log.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     resp.statusCode,
			"duration":   time.Since(begin).String(),
		}).Debug("request served")
	})
}
