package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Every response body on the chat route, success or failure, is a
// ChatResponse. The front-end renders whatever arrives in reply, so
// errors must be phrased for the end user, not the developer.

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the outbound chat payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Fixed user-facing messages for request-level failures.
const (
	emptyMessageReply  = "Please send a non-empty message so I can help you."
	internalErrorReply = "Something went wrong on our side. Please try again in a moment."
)

// writeJSON writes a JSON response with the given status code.
// Note: if encoding fails after WriteHeader is called, there is no way
// to notify the client; the error is only logged.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeReply writes a ChatResponse with the given status code.
func writeReply(w http.ResponseWriter, status int, reply string) {
	writeJSON(w, status, ChatResponse{Reply: reply})
}
