package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/journal"
)

// KeepaliveInterval is how often an idle event stream sends a comment line.
var KeepaliveInterval = 30 * time.Second

// JournalHandler lists recent journal events and streams new ones over Server-Sent Events.
type JournalHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewJournalHandler(e *engine.Engine, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{engine: e, logger: logger}
}

// List handles GET /v1/journal?limit=N.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, journal.DefaultLimit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	events, err := h.engine.Journal(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if events == nil {
		events = []journal.Event{}
	}
	writeJSON(w, h.logger, http.StatusOK, events)
}

// Stream handles GET /v1/journal/stream. Each journal event is sent with its type as
// the SSE event name.
func (h *JournalHandler) Stream(w http.ResponseWriter, r *http.Request) {
	events, err := h.engine.Subscribe(r.Context())
	if err != nil {
		h.logger.Error("Failed to subscribe to journal", "error", err)
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("SSE connection established", "remote_addr", r.RemoteAddr)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	keepalive := time.NewTicker(KeepaliveInterval)
	defer keepalive.Stop()

	h.sendSSE(w, "connected", map[string]string{"message": "Connected to journal stream"})

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("SSE client disconnected", "remote_addr", r.RemoteAddr)
			return

		case e, ok := <-events:
			if !ok {
				return
			}
			h.sendSSE(w, string(e.Type), e)

		case <-keepalive.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				h.logger.Error("Failed to write keepalive", "error", err)
				return
			}
			flush(w)
		}
	}
}

// sendSSE sends a Server-Sent Event to the client
func (h *JournalHandler) sendSSE(w http.ResponseWriter, eventType string, data any) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("Failed to marshal SSE data", "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, dataJSON); err != nil {
		h.logger.Error("Failed to write event", "error", err)
		return
	}
	flush(w)
}

func flush(w http.ResponseWriter) {
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
