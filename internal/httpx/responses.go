package httpx

import (
	"encoding/json"
	"net/http"

	"volumeapi/internal/logger"
)

// ErrorBody is the body of every failed response.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the body of responses that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.For(r.Context()).WithError(err).Warn("encode response")
	}
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorBody{Error: message})
}

// JSONMessage writes {"message": message}.
func JSONMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, MessageBody{Message: message})
}
