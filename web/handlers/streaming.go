package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alienxp03/folio/internal/core"
)

type debateRequest struct {
	Topic string `json:"topic"`
}

// handleDebateGenerate streams a generated debate using Server-Sent Events.
// Each event is one `data: <json>` line carrying a turn object, then a
// terminal `{"done": true}`, or `{"error": ...}` if generation aborts. Turns
// already streamed before a failure stand; the stream always terminates.
func (h *Handler) handleDebateGenerate(w http.ResponseWriter, r *http.Request) {
	var req debateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := core.ValidateTopic(req.Topic)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		slog.Error("Streaming unsupported: ResponseWriter does not implement http.Flusher")
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	if h.engine == nil {
		slog.Error("Debate requested without model credential configured")
		h.sendSSEData(w, flusher, map[string]string{"error": "Server configuration error"})
		return
	}

	slog.Debug("New debate stream", "topic", topic, "remote_addr", r.RemoteAddr)

	// The request context cancels in-flight model calls when the client
	// disconnects mid-stream.
	err = h.engine.Run(r.Context(), topic, func(turn core.Turn) {
		h.sendSSEData(w, flusher, turn)
	})
	if err != nil {
		slog.Error("Failed to generate debate", "topic", topic, "error", err)
		h.sendSSEData(w, flusher, map[string]string{"error": "Failed to generate debate"})
		return
	}

	h.sendSSEData(w, flusher, map[string]bool{"done": true})
}

// sendSSEData writes one `data:` event and flushes it to the client.
func (h *Handler) sendSSEData(w http.ResponseWriter, flusher http.Flusher, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal SSE data", "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		slog.Error("Failed to write SSE data", "error", err)
		return
	}
	flusher.Flush()
}
