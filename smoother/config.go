package smoother

import "github.com/lixenwraith/revtone/parameter"

// Config collects the smoothing coefficients so tests can override them
// without touching the state transition itself. All alphas are per-tick
// EMA coefficients at the render cadence.
type Config struct {
	RateAlpha       float64 // velocity target -> working rate
	CorrectionAlpha float64 // pull toward last real sample
	OutputAlpha     float64 // final output EMA
	PedalAlpha      float64 // pedal position EMA

	ConfidenceFloor float64 // min extrapolation confidence at closed throttle
	BlendFactor     float64 // newest instantaneous velocity weight

	DebounceMinDt float64 // seconds; below this, skip velocity update
	MaxFrameDt    float64 // seconds; cap on a single advance step
	DefaultDt     float64 // seconds; assumed for the first tick
}

// DefaultConfig returns the tuned production coefficients.
func DefaultConfig() Config {
	return Config{
		RateAlpha:       parameter.RateSmoothingAlpha,
		CorrectionAlpha: parameter.DriftCorrectionAlpha,
		OutputAlpha:     parameter.OutputSmoothingAlpha,
		PedalAlpha:      parameter.PedalSmoothingAlpha,
		ConfidenceFloor: parameter.ExtrapolationConfidenceFloor,
		BlendFactor:     parameter.TelemetryBlendFactor,
		DebounceMinDt:   parameter.TelemetryDebounceMinDt,
		MaxFrameDt:      parameter.MaxFrameDt,
		DefaultDt:       parameter.DefaultFrameDt,
	}
}
