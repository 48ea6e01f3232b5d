package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"impostor/internal/game"
)

// utteranceRequest is the body of POST /session/{code}/utterance
type utteranceRequest struct {
	Text string `json:"text"`
}

// utteranceResponse carries the moderator's reply. Directives are the
// bracketed tokens an external display consumes, in emission order.
type utteranceResponse struct {
	Response   string     `json:"response"`
	Directives []string   `json:"directives"`
	Phase      game.Phase `json:"phase"`
}

// sessionCreatedResponse is the body of POST /session/new
type sessionCreatedResponse struct {
	ID    string     `json:"id"`
	Code  string     `json:"code"`
	Phase game.Phase `json:"phase"`
}

// CreateSession creates a new game session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.CreateSession(h.newController())
	if err != nil {
		log.Printf("failed to create session: %v", err)
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	log.Printf("session %s created", entry.Code)
	respondJSON(w, http.StatusCreated, sessionCreatedResponse{
		ID:    entry.ID,
		Code:  entry.Code,
		Phase: entry.Controller.Session().Phase,
	})
}

// HandleUtterance feeds one utterance to the session's engine and
// returns the moderator's reply
func (h *Handler) HandleUtterance(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	entry, err := h.store.GetSession(code)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req utteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	// One utterance at a time per session; the engine itself is not
	// safe for concurrent use.
	entry.Mu.Lock()
	outcome := entry.Controller.Handle(req.Text)
	phase := entry.Controller.Session().Phase
	entry.Touch()
	entry.Mu.Unlock()

	tokens := make([]string, 0, len(outcome.Directives))
	for _, d := range outcome.Directives {
		tokens = append(tokens, d.Token())
	}

	h.eventBus.Publish(Event{Type: EventStateChanged, SessionCode: code})

	respondJSON(w, http.StatusOK, utteranceResponse{
		Response:   outcome.Response,
		Directives: tokens,
		Phase:      phase,
	})
}

// GetState returns the session's presentation state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	entry, err := h.store.GetSession(code)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	entry.Mu.Lock()
	state := entry.Controller.UIState()
	entry.Mu.Unlock()

	respondJSON(w, http.StatusOK, state)
}

// ResetSession returns a session to the idle phase, keeping its code
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	entry, err := h.store.GetSession(code)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	entry.Mu.Lock()
	entry.Controller.Reset()
	phase := entry.Controller.Session().Phase
	entry.Touch()
	entry.Mu.Unlock()

	log.Printf("session %s reset", code)
	h.eventBus.Publish(Event{Type: EventSessionReset, SessionCode: code})

	respondJSON(w, http.StatusOK, map[string]interface{}{"phase": phase})
}
