// Package smoother reconstructs a continuous engine RPM and pedal
// signal from sparse, jittery bus telemetry.
//
// Telemetry arrives at irregular ~50-100ms intervals; audio parameters
// are rendered at ~60 Hz. The smoother fills the gap by extrapolating
// along an estimated RPM velocity, scaled by a confidence derived from
// pedal position: a released pedal throttles extrapolation back within
// the same tick, which is what prevents pitch overshoot on a sharp
// lift-off between two samples.
package smoother

import (
	"math"
	"sync"
)

// Smoother converts sparse (rpm, pedal, timestamp) samples into a dense
// estimate safe to drive audio pitch and gain.
//
// Ingest is called from the telemetry goroutine and Advance from the
// render clock; an internal mutex serializes them. Neither blocks.
type Smoother struct {
	mu  sync.Mutex
	cfg Config

	// RPM estimate
	renderedRPM float64 // working extrapolated estimate
	outputRPM   float64 // post output-EMA value fed to audio
	rpmRate     float64 // working RPM velocity (RPM/s), may be negative
	targetRate  float64 // velocity target from the last two samples

	// Raw telemetry, stored verbatim
	targetRPM   float64
	targetPedal float64

	renderedPedal float64

	// Velocity bookkeeping
	prevSampleRPM  float64
	prevSampleTime float64
	haveSample     bool

	ticked bool // Advance has run since the last reset
}

// New creates a smoother with the given coefficients.
func New(cfg Config) *Smoother {
	return &Smoother{cfg: cfg}
}

// Ingest records one telemetry sample. Out-of-range inputs are clamped,
// never rejected; timestamp is monotonic seconds.
//
// The velocity target only updates when the sample is far enough from
// the previous one (debounce against duplicate or zero-delta reads);
// the raw targets always update so drift correction tracks the newest
// real value regardless.
func (s *Smoother) Ingest(rpm, pedal, timestamp float64) {
	rpm = math.Max(rpm, 0)
	pedal = clamp01(pedal)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.haveSample {
		dt := timestamp - s.prevSampleTime
		if dt > s.cfg.DebounceMinDt {
			instantRate := (rpm - s.prevSampleRPM) / dt
			s.targetRate = s.targetRate*(1-s.cfg.BlendFactor) + instantRate*s.cfg.BlendFactor
		}
	}

	s.prevSampleRPM = rpm
	s.prevSampleTime = timestamp
	s.targetRPM = rpm
	s.targetPedal = pedal
	s.haveSample = true
}

// Advance steps the estimate by dt seconds and returns the smoothed
// (rpm, pedal) pair. dt is clamped to (0, MaxFrameDt]; the first call
// after a reset uses DefaultDt regardless of the measured delta.
//
// The stages below are order-dependent: each consumes the previous
// stage's output, and stage 2 deliberately reads the pedal value from
// before stage 6's update (one-frame lag keeps extrapolation confidence
// decoupled from pedal responsiveness). Do not reorder or split them.
func (s *Smoother) Advance(dt float64) (rpm, pedal float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ticked || dt <= 0 {
		dt = s.cfg.DefaultDt
		s.ticked = true
	} else if dt > s.cfg.MaxFrameDt {
		dt = s.cfg.MaxFrameDt
	}

	// 1. Rate smoothing: ease the working velocity toward the target
	// so a fresh sample never lands as an audible pitch kink.
	s.rpmRate += (s.targetRate - s.rpmRate) * s.cfg.RateAlpha

	// 2. Confidence-scaled extrapolation: project forward along the
	// velocity, trusted in proportion to pedal position. The floor
	// keeps idle from freezing entirely.
	confidence := math.Max(s.renderedPedal, s.cfg.ConfidenceFloor)
	s.renderedRPM += s.rpmRate * dt * confidence

	// 3. Drift correction: slow pull toward the last real sample
	// bounds accumulated extrapolation error.
	s.renderedRPM += (s.targetRPM - s.renderedRPM) * s.cfg.CorrectionAlpha

	// 4. Clamp.
	s.renderedRPM = math.Max(s.renderedRPM, 0)

	// 5. Output smoothing: absorbs residual per-tick stair-stepping
	// before the value reaches audio.
	s.outputRPM += (s.renderedRPM - s.outputRPM) * s.cfg.OutputAlpha

	// 6. Pedal smoothing, independent of RPM.
	s.renderedPedal += (s.targetPedal - s.renderedPedal) * s.cfg.PedalAlpha

	return s.outputRPM, s.renderedPedal
}

// Reset zeroes all state. Called on session stop.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderedRPM = 0
	s.outputRPM = 0
	s.rpmRate = 0
	s.targetRate = 0
	s.targetRPM = 0
	s.targetPedal = 0
	s.renderedPedal = 0
	s.prevSampleRPM = 0
	s.prevSampleTime = 0
	s.haveSample = false
	s.ticked = false
}

// Rate returns the current RPM velocity estimate, for diagnostics.
func (s *Smoother) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rpmRate
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
