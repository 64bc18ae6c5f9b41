package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/revtone/events"
	"github.com/lixenwraith/revtone/mapper"
	"github.com/lixenwraith/revtone/parameter"
	"github.com/lixenwraith/revtone/profile"
	"github.com/lixenwraith/revtone/smoother"
	"github.com/lixenwraith/revtone/telemetry"
)

// LayerSink consumes per-frame layer parameters. The audio graph is
// the production sink; tests substitute a recorder.
type LayerSink interface {
	SetProfile(p *profile.Profile) error
	Apply(outputs []mapper.LayerOutput)
}

// Session coordinates one playback run: it pumps telemetry into the
// smoother, drives the render clock, and forwards mapped layer
// parameters into the sink.
//
// The smoother is touched from two goroutines (telemetry pump, render
// clock); it serializes internally. Session's own fields are guarded
// by mu.
type Session struct {
	sink   LayerSink
	bus    *events.Bus
	logger *log.Logger

	mu       sync.Mutex
	sm       *smoother.Smoother
	clock    *Clock
	active   *profile.Profile
	running  bool
	scratch  []mapper.LayerOutput
	lastRPM  float64
	lastPed  float64
	lastRecv time.Time
	stalled  bool
}

// NewSession wires a session. bus and logger may be nil.
func NewSession(cfg smoother.Config, sink LayerSink, bus *events.Bus, logger *log.Logger) *Session {
	if bus == nil {
		bus = events.NewBus()
	}
	if logger == nil {
		logger = log.New(log.Writer(), "session: ", log.LstdFlags)
	}
	return &Session{
		sink:   sink,
		bus:    bus,
		logger: logger,
		sm:     smoother.New(cfg),
	}
}

// Start resets state, loads the profile into the sink, and begins
// ticking at the render cadence.
func (s *Session) Start(p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("start session: nil profile")
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("start session: already running")
	}
	if err := s.sink.SetProfile(p); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("start session: %w", err)
	}

	s.sm.Reset()
	s.active = p
	s.running = true
	s.stalled = false
	s.lastRecv = time.Time{}
	s.clock = NewClock(parameter.RenderTickInterval, s.tick)
	s.clock.Start()
	s.mu.Unlock()

	s.logger.Printf("started profile %q", p.ID)
	s.bus.Publish(events.Event{Type: events.SessionStarted, ProfileID: p.ID})
	return nil
}

// Stop halts ticking, silences the layers and resets the smoother.
// Safe to call when not running.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	clock := s.clock
	s.clock = nil
	p := s.active
	s.mu.Unlock()

	// Outside the lock: the in-flight tick needs mu to finish.
	clock.Stop()

	silence := make([]mapper.LayerOutput, 0, len(p.Layers))
	for _, l := range p.Layers {
		silence = append(silence, mapper.LayerOutput{LayerID: l.ID, Gain: 0, PlaybackRate: 1})
	}
	s.sink.Apply(silence)
	s.sm.Reset()

	s.logger.Printf("stopped profile %q", p.ID)
	s.bus.Publish(events.Event{Type: events.SessionStopped, ProfileID: p.ID})
	return nil
}

// SwitchProfile is stop+start with the new profile. The cut is abrupt;
// no crossfade between kits.
func (s *Session) SwitchProfile(p *profile.Profile) error {
	if err := s.Stop(); err != nil {
		return err
	}
	if err := s.Start(p); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Type: events.ProfileSwitched, ProfileID: p.ID})
	return nil
}

// Ingest feeds one telemetry sample to the smoother.
func (s *Session) Ingest(sample telemetry.Sample) {
	s.sm.Ingest(sample.RPM, sample.Pedal, sample.Timestamp)

	s.mu.Lock()
	s.lastRecv = time.Now()
	if s.stalled {
		s.stalled = false
		s.mu.Unlock()
		s.bus.Publish(events.Event{Type: events.TelemetryResumed})
		return
	}
	s.mu.Unlock()
}

// Attach consumes a source's stream on a new goroutine until the
// stream closes. The source's lifecycle stays with the caller.
func (s *Session) Attach(src telemetry.Source) {
	go func() {
		for sample := range src.Samples() {
			s.Ingest(sample)
		}
	}()
}

// tick runs on the clock goroutine: advance one step, map, apply.
func (s *Session) tick(dt float64) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	rpm, pedal := s.sm.Advance(dt)
	s.lastRPM = rpm
	s.lastPed = pedal
	s.scratch = mapper.ComputeInto(s.scratch[:0], rpm, pedal, s.active)
	outputs := s.scratch

	stallEvent := false
	if !s.lastRecv.IsZero() && !s.stalled &&
		time.Since(s.lastRecv) > parameter.TelemetryStallTimeout {
		s.stalled = true
		stallEvent = true
	}
	s.mu.Unlock()

	s.sink.Apply(outputs)
	if stallEvent {
		s.bus.Publish(events.Event{Type: events.TelemetryStalled})
	}
}

// Snapshot is a point-in-time view for observers.
type Snapshot struct {
	ProfileID string
	Running   bool
	Stalled   bool
	RPM       float64
	Pedal     float64
	Rate      float64
	Ticks     uint64
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Running: s.running,
		Stalled: s.stalled,
		RPM:     s.lastRPM,
		Pedal:   s.lastPed,
		Rate:    s.sm.Rate(),
	}
	if s.active != nil {
		snap.ProfileID = s.active.ID
	}
	if s.clock != nil {
		snap.Ticks = s.clock.Ticks()
	}
	return snap
}

// Bus exposes the session event bus for observers.
func (s *Session) Bus() *events.Bus {
	return s.bus
}
