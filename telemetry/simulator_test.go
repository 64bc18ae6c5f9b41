package telemetry

import (
	"testing"
	"time"
)

// TestSimulatorEmitsSamples verifies cadence, ranges and monotonic
// timestamps over a short run.
func TestSimulatorEmitsSamples(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{
		IdleRPM: 900, MaxRPM: 8200, ShiftRPM: 7900, Seed: 1,
	})
	if err := sim.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	var samples []Sample
	deadline := time.After(2 * time.Second)
collect:
	for len(samples) < 10 {
		select {
		case s, ok := <-sim.Samples():
			if !ok {
				break collect
			}
			samples = append(samples, s)
		case <-deadline:
			break collect
		}
	}
	sim.Stop()

	if len(samples) < 10 {
		t.Fatalf("got %d samples in 2s, want >= 10", len(samples))
	}

	prevTS := -1.0
	for i, s := range samples {
		if s.RPM < 900 || s.RPM > 8200 {
			t.Errorf("sample %d: rpm %v outside [900, 8200]", i, s.RPM)
		}
		if s.Pedal < 0 || s.Pedal > 1 {
			t.Errorf("sample %d: pedal %v outside [0,1]", i, s.Pedal)
		}
		if s.Timestamp <= prevTS {
			t.Errorf("sample %d: timestamp %v not after %v", i, s.Timestamp, prevTS)
		}
		prevTS = s.Timestamp
	}
}

// TestSimulatorPedalOverride verifies a pinned pedal reaches the
// stream.
func TestSimulatorPedalOverride(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{IdleRPM: 900, MaxRPM: 8200, Seed: 1})
	sim.SetPedalOverride(0.42)
	if err := sim.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sim.Stop()

	select {
	case s := <-sim.Samples():
		if s.Pedal != 0.42 {
			t.Errorf("pedal = %v, want override 0.42", s.Pedal)
		}
	case <-time.After(time.Second):
		t.Fatal("no sample")
	}
}

// TestSimulatorStopIdempotent verifies double stop and stream close.
func TestSimulatorStopIdempotent(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{IdleRPM: 900, MaxRPM: 8200, Seed: 1})
	if err := sim.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sim.Stop()
	sim.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sim.Samples():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream not closed after Stop")
		}
	}
}

// TestReplayDeliversRecording verifies order and completion without
// pacing.
func TestReplayDeliversRecording(t *testing.T) {
	recorded := []Sample{
		{RPM: 1000, Pedal: 0.1, Timestamp: 0},
		{RPM: 2000, Pedal: 0.5, Timestamp: 0.07},
		{RPM: 3000, Pedal: 1.0, Timestamp: 0.14},
	}
	r := NewReplay(recorded, 0)
	if err := r.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer r.Stop()

	var got []Sample
	deadline := time.After(time.Second)
	for len(got) < len(recorded) {
		select {
		case s, ok := <-r.Samples():
			if !ok {
				t.Fatalf("stream closed after %d samples", len(got))
			}
			got = append(got, s)
		case <-deadline:
			t.Fatalf("timed out after %d samples", len(got))
		}
	}
	for i := range recorded {
		if got[i] != recorded[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], recorded[i])
		}
	}
}
