package telemetry

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/revtone/parameter"
)

// SimulatorConfig bounds the simulated engine.
type SimulatorConfig struct {
	IdleRPM  float64
	MaxRPM   float64
	ShiftRPM float64 // upshift threshold; 0 disables shifting
	Gears    int
	Seed     int64
}

// Simulator is a deterministic drive-cycle telemetry source: a scripted
// pedal schedule drives a first-order engine model through launch,
// upshifts, cruise and lift-off, sampled at jittered bus-poll
// intervals. Same seed, same cycle.
type Simulator struct {
	cfg SimulatorConfig

	samples  chan Sample
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	dropped  atomic.Uint64

	mu            sync.Mutex
	pedalOverride float64
	overrideOn    bool
}

// NewSimulator creates a stopped simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.IdleRPM <= 0 {
		cfg.IdleRPM = 900
	}
	if cfg.MaxRPM <= cfg.IdleRPM {
		cfg.MaxRPM = cfg.IdleRPM * 8
	}
	if cfg.Gears <= 0 {
		cfg.Gears = 6
	}
	return &Simulator{
		cfg:      cfg,
		samples:  make(chan Sample, 8),
		stopChan: make(chan struct{}),
	}
}

// Name implements the service interface.
func (s *Simulator) Name() string { return "telemetry.sim" }

// Samples returns the sample stream; closed on Stop.
func (s *Simulator) Samples() <-chan Sample { return s.samples }

// Start launches the polling goroutine.
func (s *Simulator) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	s.wg.Add(1)
	go s.loop()
	return nil
}

// Stop halts the goroutine and closes the stream. Idempotent.
func (s *Simulator) Stop() error {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		close(s.samples)
		s.running.Store(false)
	})
	return nil
}

// SetPedalOverride pins the pedal, e.g. for manual throttle from the
// dashboard.
func (s *Simulator) SetPedalOverride(v float64) {
	s.mu.Lock()
	s.pedalOverride = clamp01(v)
	s.overrideOn = true
	s.mu.Unlock()
}

// ClearPedalOverride returns control to the scripted cycle.
func (s *Simulator) ClearPedalOverride() {
	s.mu.Lock()
	s.overrideOn = false
	s.mu.Unlock()
}

// Dropped returns samples lost to a slow consumer.
func (s *Simulator) Dropped() uint64 { return s.dropped.Load() }

func (s *Simulator) loop() {
	defer s.wg.Done()

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	start := time.Now()
	prev := start

	rpm := s.cfg.IdleRPM
	gear := 1

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		jitter := parameter.SimSampleIntervalMax - parameter.SimSampleIntervalMin
		interval := parameter.SimSampleIntervalMin + time.Duration(rng.Int63n(int64(jitter)))
		timer.Reset(interval)

		select {
		case <-s.stopChan:
			return
		case now := <-timer.C:
			elapsed := now.Sub(start).Seconds()
			dt := now.Sub(prev).Seconds()
			prev = now

			pedal := s.scriptedPedal(elapsed)
			rpm, gear = s.stepEngine(rpm, gear, pedal, dt)

			sample := Sample{
				// Bus registers are coarse; quantize like one.
				RPM:       math.Round(rpm/parameter.SimSampleQuantization) * parameter.SimSampleQuantization,
				Pedal:     pedal,
				Timestamp: elapsed,
			}
			select {
			case s.samples <- sample:
			default:
				s.dropped.Add(1)
			}
		}
	}
}

// scriptedPedal is a repeating ~24s cycle: launch, hold, lift, cruise,
// coast, blip.
func (s *Simulator) scriptedPedal(elapsed float64) float64 {
	s.mu.Lock()
	if s.overrideOn {
		v := s.pedalOverride
		s.mu.Unlock()
		return v
	}
	s.mu.Unlock()

	t := math.Mod(elapsed, 24)
	switch {
	case t < 2: // idle
		return 0
	case t < 10: // full throttle pull
		return 1
	case t < 11: // lift-off
		return 0
	case t < 16: // cruise
		return 0.35
	case t < 20: // coast
		return 0
	case t < 20.5: // throttle blip
		return 0.8
	default:
		return 0
	}
}

// stepEngine advances the first-order RPM model by dt.
func (s *Simulator) stepEngine(rpm float64, gear int, pedal, dt float64) (float64, int) {
	target := s.cfg.IdleRPM + pedal*(s.cfg.MaxRPM-s.cfg.IdleRPM)
	response := parameter.SimEngineResponse
	if target < rpm {
		response = parameter.SimEngineBrakeResponse
	}
	rpm += (target - rpm) * math.Min(response*dt, 1)

	if s.cfg.ShiftRPM > 0 && gear < s.cfg.Gears && rpm >= s.cfg.ShiftRPM && pedal > 0.5 {
		rpm *= parameter.SimShiftRPMDrop
		gear++
	}
	if rpm < s.cfg.IdleRPM {
		rpm = s.cfg.IdleRPM
	}
	return rpm, gear
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
