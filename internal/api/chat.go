package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/furiabot/furiabot/internal/chat"
)

// maxBodyBytes caps the chat request body size.
const maxBodyBytes = 1 << 20 // 1 MiB

// ChatHandler handles chat HTTP endpoints via the Genkit Flow.
//
// Endpoints:
//   - POST /chat        - synchronous chat (JSON request/response)
//   - POST /chat/stream - streaming chat (Server-Sent Events)
//
// Both endpoints go through the same Flow so traces look identical.
type ChatHandler struct {
	flow   *chat.Flow
	logger *slog.Logger
}

// NewChatHandler creates a chat handler for the given Flow.
func NewChatHandler(flow *chat.Flow, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{flow: flow, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("POST /chat/stream", h.handleStream)
}

// decodeMessage reads and validates the chat request body.
// Returns the trimmed message, or false if the request was rejected
// (the 400 response has already been written).
func (h *ChatHandler) decodeMessage(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeReply(w, http.StatusRequestEntityTooLarge,
				"That message is too long for me. Please send something shorter.")
			return "", false
		}
		writeReply(w, http.StatusBadRequest, emptyMessageReply)
		return "", false
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeReply(w, http.StatusBadRequest, emptyMessageReply)
		return "", false
	}

	return message, true
}

// handleChat answers one chat message synchronously.
//
// Validation failures return 400 without ever invoking the agent.
// Generation failures are already absorbed into the reply text by the
// Flow, so an error here is a transport-level fault and maps to 500
// with a generic message.
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	out, err := h.flow.Run(r.Context(), chat.Input{Message: message})
	if err != nil {
		h.logger.Error("chat flow failed",
			"error", err,
			"request_id", RequestID(r.Context()),
		)
		writeReply(w, http.StatusInternalServerError, internalErrorReply)
		return
	}

	writeReply(w, http.StatusOK, out.Reply)
}

// SSEEvent represents a Server-Sent Event payload.
type SSEEvent struct {
	// Event type: "chunk" for partial text, "done" for the final
	// output, "error" for errors.
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// SSEChunkData is the data for "chunk" events.
type SSEChunkData struct {
	Text string `json:"text"`
}

// SSEDoneData is the data for "done" events.
type SSEDoneData struct {
	Reply string `json:"reply"`
}

// SSEErrorData is the data for "error" events.
type SSEErrorData struct {
	Message string `json:"message"`
}

// handleStream answers one chat message over Server-Sent Events.
//
// Event types:
//   - chunk: partial text {"text": "..."}
//   - done:  final reply  {"reply": "..."}
//   - error: failure      {"message": "..."}
func (h *ChatHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	ctx := r.Context()
	var finalOutput chat.Output
	var streamErr error

	for streamValue, err := range h.flow.Stream(ctx, chat.Input{Message: message}) {
		select {
		case <-ctx.Done():
			h.logger.Debug("client disconnected", "request_id", RequestID(ctx))
			return
		default:
		}

		if err != nil {
			streamErr = err
			break
		}

		if streamValue.Done {
			finalOutput = streamValue.Output
			break
		}

		if streamValue.Stream.Text != "" {
			h.writeSSE(w, flusher, SSEEvent{Event: "chunk", Data: SSEChunkData{Text: streamValue.Stream.Text}})
		}
	}

	if streamErr != nil {
		h.logger.Error("chat stream failed",
			"error", streamErr,
			"request_id", RequestID(ctx),
		)
		h.writeSSE(w, flusher, SSEEvent{Event: "error", Data: SSEErrorData{Message: internalErrorReply}})
		return
	}

	h.writeSSE(w, flusher, SSEEvent{Event: "done", Data: SSEDoneData{Reply: finalOutput.Reply}})
}

// writeSSE serializes one event onto the stream and flushes it.
func (h *ChatHandler) writeSSE(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal SSE event", "error", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}
