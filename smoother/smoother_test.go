package smoother

import (
	"math"
	"testing"
)

const frameDt = 1.0 / 60.0

// accelerate feeds a climb: samples every 70ms, stepRPM apart, pedal
// held at 1, with four render ticks between samples. Returns the last
// ingested rpm and timestamp.
func accelerate(s *Smoother, startRPM, stepRPM float64, samples int) (lastRPM, lastT float64) {
	t := 0.0
	for k := 0; k < samples; k++ {
		lastRPM = startRPM + stepRPM*float64(k)
		s.Ingest(lastRPM, 1.0, t)
		for i := 0; i < 4; i++ {
			s.Advance(frameDt)
		}
		lastT = t
		t += 0.07
	}
	return lastRPM, lastT
}

// TestAdvanceWithoutTelemetry verifies the smoother idles at zero when
// no sample ever arrives.
func TestAdvanceWithoutTelemetry(t *testing.T) {
	s := New(DefaultConfig())
	for i := 0; i < 300; i++ {
		rpm, pedal := s.Advance(frameDt)
		if rpm != 0 {
			t.Fatalf("tick %d: rpm = %v, want 0", i, rpm)
		}
		if pedal != 0 {
			t.Fatalf("tick %d: pedal = %v, want 0", i, pedal)
		}
	}
}

// TestConvergenceToTarget verifies steady telemetry pulls the output
// onto the sample value without oscillation.
func TestConvergenceToTarget(t *testing.T) {
	s := New(DefaultConfig())
	ts := 0.0
	var rpm, pedal float64
	for k := 0; k < 200; k++ {
		s.Ingest(3000, 0.5, ts)
		ts += 0.07
		for i := 0; i < 4; i++ {
			rpm, pedal = s.Advance(frameDt)
		}
	}
	if math.Abs(rpm-3000) > 30 {
		t.Errorf("rpm = %v, want ~3000", rpm)
	}
	if math.Abs(pedal-0.5) > 0.01 {
		t.Errorf("pedal = %v, want ~0.5", pedal)
	}
}

// TestPedalConvergesMonotonically verifies the pedal EMA approaches
// its target without overshoot in either direction.
func TestPedalConvergesMonotonically(t *testing.T) {
	s := New(DefaultConfig())
	s.Ingest(1000, 1.0, 0)
	prev := 0.0
	for i := 0; i < 200; i++ {
		_, pedal := s.Advance(frameDt)
		if pedal < prev {
			t.Fatalf("tick %d: pedal decreased %v -> %v while target is 1", i, prev, pedal)
		}
		if pedal > 1 {
			t.Fatalf("tick %d: pedal %v above 1", i, pedal)
		}
		prev = pedal
	}
	if prev < 0.99 {
		t.Errorf("pedal = %v after 200 ticks, want ~1", prev)
	}
}

// TestFirstTickUsesDefaultDt verifies a huge first delta (e.g. the
// process was backgrounded before the session started) does not jump
// the estimate.
func TestFirstTickUsesDefaultDt(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())
	a.Ingest(5000, 1.0, 0)
	b.Ingest(5000, 1.0, 0)

	rpmA, pedA := a.Advance(5.0) // measured delta after a stall
	rpmB, pedB := b.Advance(frameDt)

	if rpmA != rpmB || pedA != pedB {
		t.Errorf("first tick with dt=5.0 gave (%v, %v), want same as dt=1/60 (%v, %v)",
			rpmA, pedA, rpmB, pedB)
	}
}

// TestLargeDtClamped verifies post-stall deltas are capped at
// MaxFrameDt once ticking has begun.
func TestLargeDtClamped(t *testing.T) {
	run := func(stallDt float64) (float64, float64) {
		s := New(DefaultConfig())
		s.Ingest(2000, 1.0, 0)
		s.Ingest(3000, 1.0, 0.07)
		s.Advance(frameDt)
		return s.Advance(stallDt)
	}

	rpmA, pedA := run(10.0)
	rpmB, pedB := run(DefaultConfig().MaxFrameDt)
	if rpmA != rpmB || pedA != pedB {
		t.Errorf("dt=10.0 gave (%v, %v), want same as dt=MaxFrameDt (%v, %v)",
			rpmA, pedA, rpmB, pedB)
	}
}

// TestIngestDebounce verifies a near-duplicate sample updates the raw
// targets but not the velocity estimate.
func TestIngestDebounce(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())

	a.Ingest(1000, 1.0, 0)
	a.Ingest(2000, 1.0, 0.07)
	b.Ingest(1000, 1.0, 0)
	b.Ingest(2000, 1.0, 0.07)
	// within the debounce window; must not touch the rate
	b.Ingest(2000, 1.0, 0.075)

	for i := 0; i < 10; i++ {
		rpmA, _ := a.Advance(frameDt)
		rpmB, _ := b.Advance(frameDt)
		if rpmA != rpmB {
			t.Fatalf("tick %d: duplicate sample changed output %v != %v", i, rpmA, rpmB)
		}
	}
}

// TestIngestClampsInputs verifies out-of-range telemetry is clamped,
// never propagated.
func TestIngestClampsInputs(t *testing.T) {
	s := New(DefaultConfig())
	s.Ingest(-500, 3.0, 0)
	s.Ingest(-500, -1.0, 0.07)

	for i := 0; i < 300; i++ {
		rpm, pedal := s.Advance(frameDt)
		if rpm < 0 {
			t.Fatalf("tick %d: rpm %v negative", i, rpm)
		}
		if pedal < 0 || pedal > 1 {
			t.Fatalf("tick %d: pedal %v outside [0,1]", i, pedal)
		}
	}
}

// TestOvershootBoundOnLiftOff is the regression test for the core
// design goal: a sharp pedal release between two bus samples must not
// let the output run past the last real reading.
func TestOvershootBoundOnLiftOff(t *testing.T) {
	s := New(DefaultConfig())
	lastRPM, lastT := accelerate(s, 3000, 100, 12)

	// single lift-off sample, then the bus goes quiet
	s.Ingest(lastRPM, 0.0, lastT+0.07)

	peak := 0.0
	for i := 0; i < 1200; i++ {
		rpm, _ := s.Advance(frameDt)
		if rpm > peak {
			peak = rpm
		}
	}
	if peak > lastRPM+50 {
		t.Errorf("output peaked at %v, want <= %v", peak, lastRPM+50)
	}
}

// TestOvershootBoundWithContinuedTelemetry covers the realistic case:
// the bus keeps polling through the lift-off. The output must then
// never exceed the held reading at all.
func TestOvershootBoundWithContinuedTelemetry(t *testing.T) {
	s := New(DefaultConfig())
	lastRPM, lastT := accelerate(s, 3000, 500, 12)

	peak := 0.0
	ts := lastT + 0.07
	for k := 0; k < 100; k++ {
		s.Ingest(lastRPM, 0.0, ts)
		ts += 0.07
		for i := 0; i < 4; i++ {
			rpm, _ := s.Advance(frameDt)
			if rpm > peak {
				peak = rpm
			}
		}
	}
	if peak > lastRPM+1 {
		t.Errorf("output peaked at %v, want <= %v", peak, lastRPM+1)
	}
}

// TestPedalReleaseCutsExtrapolation verifies the confidence mechanism
// itself: the same climb overshoots further when the pedal stays down
// than when it is released.
func TestPedalReleaseCutsExtrapolation(t *testing.T) {
	peakAfter := func(liftPedal float64) float64 {
		s := New(DefaultConfig())
		lastRPM, lastT := accelerate(s, 3000, 500, 12)
		s.Ingest(lastRPM, liftPedal, lastT+0.07)
		peak := 0.0
		for i := 0; i < 1200; i++ {
			rpm, _ := s.Advance(frameDt)
			if rpm > peak {
				peak = rpm
			}
		}
		return peak - lastRPM
	}

	released := peakAfter(0.0)
	held := peakAfter(1.0)
	if released >= held {
		t.Errorf("release overshoot %v not below held-pedal overshoot %v", released, held)
	}
}

// TestReset verifies all state clears.
func TestReset(t *testing.T) {
	s := New(DefaultConfig())
	accelerate(s, 3000, 200, 8)
	s.Reset()

	rpm, pedal := s.Advance(frameDt)
	if rpm != 0 || pedal != 0 {
		t.Errorf("after reset: (%v, %v), want (0, 0)", rpm, pedal)
	}
	if s.Rate() != 0 {
		t.Errorf("after reset: rate %v, want 0", s.Rate())
	}
}

// TestDeterministicSequence verifies two smoothers fed the identical
// call sequence produce identical outputs, pinning the stage ordering
// (including the one-frame pedal lag read by the extrapolation stage).
func TestDeterministicSequence(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())

	feed := func(s *Smoother) []float64 {
		var out []float64
		t := 0.0
		for k := 0; k < 20; k++ {
			s.Ingest(1000+float64(k)*300, float64(k%2), t)
			t += 0.07
			for i := 0; i < 4; i++ {
				rpm, pedal := s.Advance(frameDt)
				out = append(out, rpm, pedal)
			}
		}
		return out
	}

	outA := feed(a)
	outB := feed(b)
	for i := range outA {
		if outA[i] != outB[i] {
			t.Fatalf("output %d differs: %v != %v", i, outA[i], outB[i])
		}
	}
}
