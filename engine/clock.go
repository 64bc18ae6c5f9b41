package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/revtone/parameter"
)

// TickFunc receives the wall-clock delta since the previous tick, in
// seconds.
type TickFunc func(dt float64)

// Clock drives a TickFunc at a fixed cadence on its own goroutine.
// Deadlines are drift-corrected: a slow tick shortens the next sleep
// rather than shifting the whole schedule. When the loop falls too far
// behind (host suspend, debugger) the schedule resets instead of
// bursting catch-up ticks; the callee sees one tick with a large dt.
type Clock struct {
	interval time.Duration
	tick     TickFunc
	now      func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	ticks    atomic.Uint64
}

// NewClock creates a stopped clock. A non-positive interval falls back
// to the render tick interval.
func NewClock(interval time.Duration, tick TickFunc) *Clock {
	if interval <= 0 {
		interval = parameter.RenderTickInterval
	}
	return &Clock{
		interval: interval,
		tick:     tick,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick loop.
func (c *Clock) Start() {
	if c.running.CompareAndSwap(false, true) {
		c.wg.Add(1)
		go c.loop()
	}
}

// Stop halts the loop and waits for the in-flight tick to finish.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		if c.running.CompareAndSwap(true, false) {
			close(c.stopChan)
			c.wg.Wait()
		}
	})
}

// Ticks returns the number of completed ticks.
func (c *Clock) Ticks() uint64 {
	return c.ticks.Load()
}

func (c *Clock) loop() {
	defer c.wg.Done()

	last := c.now()
	deadline := last.Add(c.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		now := c.now()
		if !now.Before(deadline) {
			c.tick(now.Sub(last).Seconds())
			c.ticks.Add(1)
			last = now

			deadline = deadline.Add(c.interval)
			if now.Sub(deadline) > parameter.RenderTickMaxBehind {
				deadline = now.Add(c.interval)
			}
		}

		sleep := deadline.Sub(c.now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)

		select {
		case <-c.stopChan:
			return
		case <-timer.C:
		}
	}
}
