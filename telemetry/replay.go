package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Replay plays back a recorded sample slice, pacing emissions by the
// gaps between sample timestamps. Used in tests and offline tuning.
type Replay struct {
	recorded []Sample
	speed    float64

	samples  chan Sample
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewReplay creates a replay source. speed > 1 plays faster than real
// time; 0 or less emits with no pacing at all.
func NewReplay(recorded []Sample, speed float64) *Replay {
	return &Replay{
		recorded: recorded,
		speed:    speed,
		samples:  make(chan Sample, 8),
		stopChan: make(chan struct{}),
	}
}

func (r *Replay) Name() string           { return "telemetry.replay" }
func (r *Replay) Samples() <-chan Sample { return r.samples }

// Start launches playback. The stream closes when the recording ends
// or Stop is called.
func (r *Replay) Start() error {
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}
	r.wg.Add(1)
	go r.loop()
	return nil
}

// Stop halts playback. Idempotent.
func (r *Replay) Stop() error {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		r.wg.Wait()
	})
	return nil
}

func (r *Replay) loop() {
	defer r.wg.Done()
	defer close(r.samples)

	var prevTS float64
	for i, sample := range r.recorded {
		if r.speed > 0 && i > 0 {
			gap := time.Duration((sample.Timestamp - prevTS) / r.speed * float64(time.Second))
			if gap > 0 {
				select {
				case <-r.stopChan:
					return
				case <-time.After(gap):
				}
			}
		}
		prevTS = sample.Timestamp

		select {
		case r.samples <- sample:
		case <-r.stopChan:
			return
		}
	}
}
