package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"impostor/internal/config"
	"impostor/internal/game"
	"impostor/internal/store"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    *store.MemoryStore
	config   *config.ServerConfig
	topics   *game.TopicService
	eventBus *EventBus
	narrator game.Narrator
}

// Option customizes a Handler
type Option func(*Handler)

// WithNarrator attaches the optional narration collaborator; every
// session created through this handler will use it for fallbacks
func WithNarrator(n game.Narrator) Option {
	return func(h *Handler) { h.narrator = n }
}

// New creates a new handler
func New(st *store.MemoryStore, cfg *config.ServerConfig, topics *game.TopicService, opts ...Option) *Handler {
	h := &Handler{
		store:    st,
		config:   cfg,
		topics:   topics,
		eventBus: NewEventBus(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Store returns the handler's store (for testing)
func (h *Handler) Store() *store.MemoryStore {
	return h.store
}

// newController builds a controller for a fresh session
func (h *Handler) newController() *game.Controller {
	var opts []game.Option
	if h.narrator != nil {
		opts = append(opts, game.WithNarrator(h.narrator))
	}
	return game.NewController(h.config.GameSettings(), h.topics, opts...)
}

// Event represents a session event
type Event struct {
	Type        string
	SessionCode string
	Data        interface{}
}

// Event types published on the bus
const (
	EventStateChanged = "state_changed"
	EventSessionReset = "session_reset"
)

// EventBus manages event subscriptions
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe subscribes to events for a session
func (eb *EventBus) Subscribe(sessionCode string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 10)
	eb.subscribers[sessionCode] = append(eb.subscribers[sessionCode], ch)
	return ch
}

// Unsubscribe removes a subscription
func (eb *EventBus) Unsubscribe(sessionCode string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[sessionCode]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[sessionCode] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

// Publish publishes an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[event.SessionCode] {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
