package handlers

import (
	"testing"
	"time"

	"impostor/internal/config"
	"impostor/internal/game"
	"impostor/internal/store"
)

func testConfig() *config.ServerConfig {
	cfg := config.DefaultConfig()
	cfg.Server.Port = "8080"
	cfg.Server.Host = "localhost"
	return cfg
}

func testTopics(t *testing.T) *game.TopicService {
	t.Helper()
	topics, err := game.NewTopicServiceFromList([]string{"ceviche", "hornado", "paramo"})
	if err != nil {
		t.Fatalf("topic service: %v", err)
	}
	return topics
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return New(store.NewMemoryStore(), testConfig(), testTopics(t))
}

func TestNew(t *testing.T) {
	memStore := store.NewMemoryStore()
	handler := New(memStore, testConfig(), testTopics(t))

	if handler == nil {
		t.Fatal("New returned nil handler")
	}

	if handler.store != memStore {
		t.Error("handler store is not the provided store")
	}

	if handler.eventBus == nil {
		t.Error("handler eventBus is nil")
	}
}

func TestNewEventBus(t *testing.T) {
	eb := NewEventBus()

	if eb == nil {
		t.Fatal("NewEventBus returned nil")
	}

	if eb.subscribers == nil {
		t.Fatal("subscribers map not initialized")
	}

	if len(eb.subscribers) != 0 {
		t.Errorf("expected empty subscribers map, got %d", len(eb.subscribers))
	}
}

func TestEventBus_Subscribe(t *testing.T) {
	eb := NewEventBus()

	t.Run("creates subscription channel", func(t *testing.T) {
		ch := eb.Subscribe("ABCDE")

		if ch == nil {
			t.Fatal("Subscribe returned nil channel")
		}

		// Verify channel is buffered
		select {
		case ch <- Event{Type: "test"}:
			// Should not block
		default:
			t.Error("channel appears to be unbuffered")
		}
	})

	t.Run("multiple subscriptions to same session", func(t *testing.T) {
		ch1 := eb.Subscribe("FGHJK")
		ch2 := eb.Subscribe("FGHJK")

		if ch1 == ch2 {
			t.Error("Subscribe returned same channel for different subscriptions")
		}

		eb.mu.RLock()
		subs := eb.subscribers["FGHJK"]
		eb.mu.RUnlock()

		if len(subs) != 2 {
			t.Errorf("expected 2 subscribers, got %d", len(subs))
		}
	})
}

func TestEventBus_PublishAndUnsubscribe(t *testing.T) {
	eb := NewEventBus()

	ch1 := eb.Subscribe("ABCDE")
	ch2 := eb.Subscribe("ABCDE")
	other := eb.Subscribe("ZZZZZ")

	eb.Publish(Event{Type: EventStateChanged, SessionCode: "ABCDE"})

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != EventStateChanged {
				t.Errorf("subscriber %d got event type %q", i, event.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("subscriber %d did not receive event", i)
		}
	}

	select {
	case event := <-other:
		t.Errorf("unrelated subscriber received event %q", event.Type)
	default:
	}

	// After unsubscribe the channel is closed and removed
	eb.Unsubscribe("ABCDE", ch1)
	if _, open := <-ch1; open {
		t.Error("expected channel to be closed after unsubscribe")
	}

	eb.mu.RLock()
	remaining := len(eb.subscribers["ABCDE"])
	eb.mu.RUnlock()
	if remaining != 1 {
		t.Errorf("expected 1 remaining subscriber, got %d", remaining)
	}
}

func TestEventBus_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	eb := NewEventBus()
	eb.Subscribe("ABCDE")

	// Buffer is 10; publishing more must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 25; i++ {
			eb.Publish(Event{Type: EventStateChanged, SessionCode: "ABCDE"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
}
