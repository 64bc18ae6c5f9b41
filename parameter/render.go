package parameter

import "time"

// Render Loop Timing
const (
	// RenderTickInterval is the target cadence for smoother advance
	// and layer parameter updates.
	RenderTickInterval = time.Second / 60

	// RenderTickMaxBehind before the deadline schedule resets instead
	// of bursting catch-up ticks. Single-step-per-tick is an invariant
	// of the smoother, not an approximation.
	RenderTickMaxBehind = 2 * RenderTickInterval
)

// Telemetry Watchdog
const (
	// TelemetryStallTimeout without a sample before the session flags
	// the source as stalled.
	TelemetryStallTimeout = 500 * time.Millisecond
)
