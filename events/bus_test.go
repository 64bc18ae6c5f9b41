package events

import (
	"testing"
	"time"
)

// TestPublishSubscribe verifies delivery and timestamping.
func TestPublishSubscribe(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe(4)

	b.Publish(Event{Type: SessionStarted, ProfileID: "v8"})

	select {
	case ev := <-ch:
		if ev.Type != SessionStarted {
			t.Errorf("type = %v, want SessionStarted", ev.Type)
		}
		if ev.ProfileID != "v8" {
			t.Errorf("profile = %q, want v8", ev.ProfileID)
		}
		if ev.At.IsZero() {
			t.Error("At not stamped")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

// TestPublishNeverBlocks verifies a full subscriber drops instead of
// stalling the publisher.
func TestPublishNeverBlocks(t *testing.T) {
	b := NewBus()
	b.Subscribe(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Publish(Event{Type: TelemetryStalled})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber")
	}
	if b.Dropped() != 9 {
		t.Errorf("dropped = %d, want 9", b.Dropped())
	}
}

// TestCloseClosesSubscribers verifies closed-bus semantics.
func TestCloseClosesSubscribers(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe(1)
	b.Close()

	if _, open := <-ch; open {
		t.Error("subscriber channel still open after Close")
	}

	// Publish after close is a no-op, not a panic.
	b.Publish(Event{Type: SessionStopped})

	// Subscribe after close returns a closed channel.
	ch2 := b.Subscribe(1)
	if _, open := <-ch2; open {
		t.Error("post-close subscription channel open")
	}
}
