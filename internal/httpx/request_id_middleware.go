package httpx

import (
	"net/http"

	"volumeapi/internal/logger"

	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestIDLen = 128
)

// RequestIDMiddleware tags every request with an id, reusing the caller's X-Request-Id
// when it is short enough, and echoes it on the response. The id reaches log entries
// through logger.For.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := logger.ContextWithID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
