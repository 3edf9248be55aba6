package httpx

import (
	"net/http"

	"volumeapi/internal/logger"
)

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	return logger.IDFrom(r.Context())
}
