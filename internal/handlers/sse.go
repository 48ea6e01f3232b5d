package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"

	"impostor/internal/store"
)

// StreamSession streams session state to an external display. Every
// state change pushes the full presentation state as datastar signals;
// the display never needs to poll.
func (h *Handler) StreamSession(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	log.Printf("SSE connection established for session %s", code)

	entry, err := h.store.GetSession(code)
	if err != nil {
		log.Printf("SSE requested for non-existent session: %s", code)
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	sse := datastar.NewSSE(w, r)

	events := h.eventBus.Subscribe(code)
	defer h.eventBus.Unsubscribe(code, events)

	// Initial state so a display connecting mid-game catches up
	if err := h.sendStateSignals(sse, entry); err != nil {
		log.Printf("failed to send initial state for session %s: %v", code, err)
		return
	}

	// Keepalive ping; browsers may close idle SSE connections after a
	// few minutes
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("SSE context cancelled for session %s", code)
			return
		case <-heartbeat.C:
			if _, err := h.store.GetSession(code); err != nil {
				log.Printf("heartbeat: session %s no longer exists, closing SSE", code)
				return
			}
			if err := sse.Send("keepalive", []string{fmt.Sprintf(`{"time":"%s"}`, time.Now().Format(time.RFC3339))}); err != nil {
				log.Printf("keepalive failed for session %s: %v - closing connection", code, err)
				return
			}
		case event := <-events:
			switch event.Type {
			case EventStateChanged, EventSessionReset:
				if err := h.sendStateSignals(sse, entry); err != nil {
					log.Printf("failed to push state for session %s: %v", code, err)
					return
				}
			default:
				log.Printf("unknown event type %s for session %s", event.Type, code)
			}
		}
	}
}

// sendStateSignals pushes the current presentation state over SSE
func (h *Handler) sendStateSignals(sse *datastar.ServerSentEventGenerator, entry *store.SessionEntry) error {
	entry.Mu.Lock()
	state := entry.Controller.UIState()
	entry.Mu.Unlock()

	return sse.MarshalAndPatchSignals(map[string]interface{}{
		"session": state,
	})
}
