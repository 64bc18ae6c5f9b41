package engine

import (
	"sync"
	"testing"
	"time"
)

// TestClockTicksAtCadence verifies tick delivery and positive deltas.
func TestClockTicksAtCadence(t *testing.T) {
	var mu sync.Mutex
	var deltas []float64

	c := NewClock(10*time.Millisecond, func(dt float64) {
		mu.Lock()
		deltas = append(deltas, dt)
		mu.Unlock()
	})
	c.Start()
	time.Sleep(250 * time.Millisecond)
	c.Stop()

	ticks := c.Ticks()
	if ticks < 10 || ticks > 40 {
		t.Errorf("ticks = %d over 250ms at 10ms cadence, want ~25", ticks)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, dt := range deltas {
		if dt <= 0 {
			t.Errorf("tick %d: dt = %v, want > 0", i, dt)
		}
	}
}

// TestClockStopIdempotent verifies repeated Stop and Stop-before-Start.
func TestClockStopIdempotent(t *testing.T) {
	c := NewClock(10*time.Millisecond, func(float64) {})
	c.Stop()
	c.Stop()

	c2 := NewClock(10*time.Millisecond, func(float64) {})
	c2.Start()
	c2.Stop()
	c2.Stop()
}

// TestClockStopWaitsForTick verifies no tick fires after Stop returns.
func TestClockStopWaitsForTick(t *testing.T) {
	var mu sync.Mutex
	stopped := false

	c := NewClock(5*time.Millisecond, nil)
	c.tick = func(float64) {
		mu.Lock()
		if stopped {
			t.Error("tick after Stop returned")
		}
		mu.Unlock()
	}
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()
	mu.Lock()
	stopped = true
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)
}
