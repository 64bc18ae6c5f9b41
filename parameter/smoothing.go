package parameter

// Telemetry Signal Smoothing
//
// The smoother bridges sparse ~14 Hz bus samples and the ~60 Hz render
// clock. Alphas are per-tick EMA coefficients at the 60 Hz cadence.
const (
	// RateSmoothingAlpha blends the velocity target into the working
	// RPM rate. Low value avoids a pitch kink when a sample lands.
	RateSmoothingAlpha = 0.06

	// DriftCorrectionAlpha pulls the extrapolated RPM back toward the
	// last real sample, bounding long-run extrapolation error.
	DriftCorrectionAlpha = 0.02

	// OutputSmoothingAlpha is the final EMA between the internal RPM
	// estimate and the value fed to audio.
	OutputSmoothingAlpha = 0.12

	// PedalSmoothingAlpha smooths raw pedal position.
	PedalSmoothingAlpha = 0.15

	// ExtrapolationConfidenceFloor keeps a minimum of forward
	// extrapolation alive at closed throttle.
	ExtrapolationConfidenceFloor = 0.05

	// TelemetryBlendFactor weights the newest instantaneous velocity
	// against the running target. 50/50 is deliberately coarse since
	// samples already arrive ~70 ms apart.
	TelemetryBlendFactor = 0.5

	// TelemetryDebounceMinDt rejects velocity updates from duplicate
	// or near-zero-delta samples (seconds).
	TelemetryDebounceMinDt = 0.01

	// MaxFrameDt caps a single render step after a stall, e.g. the
	// process being backgrounded (seconds).
	MaxFrameDt = 0.1

	// DefaultFrameDt is assumed for the first tick after a reset,
	// before a measured delta exists (seconds).
	DefaultFrameDt = 1.0 / 60.0
)
