package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"impostor/internal/game"
)

func newTestController(t *testing.T) *game.Controller {
	t.Helper()
	topics, err := game.NewTopicServiceFromList([]string{"ceviche", "hornado"})
	if err != nil {
		t.Fatalf("topic service: %v", err)
	}
	return game.NewController(game.DefaultSettings(), topics)
}

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if store == nil {
		t.Fatal("NewMemoryStore returned nil")
	}

	if store.sessions == nil {
		t.Fatal("sessions map not initialized")
	}

	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d sessions", store.Count())
	}
}

func TestCreateSession(t *testing.T) {
	store := NewMemoryStore()

	t.Run("creates session with unique code", func(t *testing.T) {
		entry, err := store.CreateSession(newTestController(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.Code == "" {
			t.Error("session code is empty")
		}
		if len(entry.Code) != 5 {
			t.Errorf("expected code length 5, got %d", len(entry.Code))
		}

		// The alphabet skips ambiguous glyphs
		for _, char := range entry.Code {
			switch char {
			case '0', 'O', '1', 'I', 'L':
				t.Errorf("session code contains ambiguous character: %c", char)
			}
		}
	})

	t.Run("creates session with identity and timestamps", func(t *testing.T) {
		entry, err := store.CreateSession(newTestController(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.ID == "" {
			t.Error("session ID not set")
		}
		if entry.Controller == nil {
			t.Error("controller not set")
		}
		if entry.CreatedAt.IsZero() {
			t.Error("CreatedAt not set")
		}
		if entry.LastActive.IsZero() {
			t.Error("LastActive not set")
		}
	})

	t.Run("creates multiple sessions with unique codes", func(t *testing.T) {
		ctrl := newTestController(t)
		codes := make(map[string]bool)

		for i := 0; i < 100; i++ {
			entry, err := store.CreateSession(ctrl)
			if err != nil {
				t.Fatalf("unexpected error on iteration %d: %v", i, err)
			}
			if codes[entry.Code] {
				t.Errorf("duplicate session code generated: %s", entry.Code)
			}
			codes[entry.Code] = true
		}
	})
}

func TestGetSession(t *testing.T) {
	store := NewMemoryStore()

	t.Run("returns error for non-existent session", func(t *testing.T) {
		_, err := store.GetSession("ABCDE")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("returns existing session", func(t *testing.T) {
		created, err := store.CreateSession(newTestController(t))
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		retrieved, err := store.GetSession(created.Code)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if retrieved != created {
			t.Error("retrieved session is not the same instance")
		}
	})
}

func TestDeleteSession(t *testing.T) {
	store := NewMemoryStore()

	entry, err := store.CreateSession(newTestController(t))
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	store.DeleteSession(entry.Code)

	if _, err := store.GetSession(entry.Code); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op
	store.DeleteSession(entry.Code)
}

func TestReapIdle(t *testing.T) {
	store := NewMemoryStore()

	stale, err := store.CreateSession(newTestController(t))
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	fresh, err := store.CreateSession(newTestController(t))
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	stale.LastActive = time.Now().Add(-2 * time.Hour)

	removed := store.ReapIdle(time.Hour)
	if removed != 1 {
		t.Errorf("expected 1 reaped session, got %d", removed)
	}

	if _, err := store.GetSession(stale.Code); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session should be gone, got %v", err)
	}
	if _, err := store.GetSession(fresh.Code); err != nil {
		t.Errorf("fresh session should survive, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctrl := newTestController(t)

	t.Run("concurrent session creation", func(t *testing.T) {
		var wg sync.WaitGroup
		numGoroutines := 100

		entries := make([]*SessionEntry, numGoroutines)
		errs := make([]error, numGoroutines)

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				entry, err := store.CreateSession(ctrl)
				entries[idx] = entry
				errs[idx] = err
			}(i)
		}

		wg.Wait()

		codes := make(map[string]bool)
		for i, entry := range entries {
			if errs[i] != nil {
				t.Errorf("goroutine %d got error: %v", i, errs[i])
				continue
			}
			if codes[entry.Code] {
				t.Errorf("duplicate session code: %s", entry.Code)
			}
			codes[entry.Code] = true
		}
	})

	t.Run("concurrent reads and deletes", func(t *testing.T) {
		var entries []*SessionEntry
		for i := 0; i < 20; i++ {
			entry, err := store.CreateSession(ctrl)
			if err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
			entries = append(entries, entry)
		}

		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					store.GetSession(entries[j%len(entries)].Code)
				}
			}()
		}

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				store.DeleteSession(entries[idx].Code)
			}(i)
		}

		wg.Wait()
	})
}
