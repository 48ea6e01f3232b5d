package store

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"impostor/internal/game"
)

// ErrSessionNotFound is returned when a session code does not exist
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionEntry wraps a game controller with its identity and a lock.
// All utterance handling for one session runs under Mu, so the engine
// itself stays lock-free.
type SessionEntry struct {
	Mu         sync.Mutex
	ID         string
	Code       string
	Controller *game.Controller
	CreatedAt  time.Time
	LastActive time.Time
}

// Touch marks the session as recently used
func (e *SessionEntry) Touch() {
	e.LastActive = time.Now()
}

// MemoryStore holds all game sessions in memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionEntry
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*SessionEntry),
	}
}

// CreateSession registers a new session built around the given
// controller and returns its entry
func (s *MemoryStore) CreateSession(ctrl *game.Controller) (*SessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Generate unique session code
	var code string
	for i := 0; i < 10; i++ { // Try up to 10 times
		code = generateSessionCode()
		if _, exists := s.sessions[code]; !exists {
			break
		}
	}
	if _, exists := s.sessions[code]; exists {
		return nil, fmt.Errorf("could not allocate a session code")
	}

	now := time.Now()
	entry := &SessionEntry{
		ID:         uuid.New().String(),
		Code:       code,
		Controller: ctrl,
		CreatedAt:  now,
		LastActive: now,
	}

	s.sessions[code] = entry
	return entry, nil
}

// GetSession retrieves a session by code
func (s *MemoryStore) GetSession(code string) (*SessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[code]
	if !exists {
		return nil, fmt.Errorf("session %s: %w", code, ErrSessionNotFound)
	}

	return entry, nil
}

// DeleteSession removes a session by code
func (s *MemoryStore) DeleteSession(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
}

// Count returns the number of live sessions
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ReapIdle removes sessions whose last activity is older than maxIdle
// and returns how many were removed
func (s *MemoryStore) ReapIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for code, entry := range s.sessions {
		if entry.LastActive.Before(cutoff) {
			delete(s.sessions, code)
			removed++
		}
	}
	return removed
}

// generateSessionCode generates a 5-character code. The alphabet skips
// easily-confused glyphs (0/O, 1/I/L) since codes are read aloud.
func generateSessionCode() string {
	const chars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	b := make([]byte, 5)
	rand.Read(b)

	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}

	return string(b)
}
