package parameter

// Crossfade Mapping
const (
	// PedalAxisFloor keeps the on-load layers minimally present at
	// closed throttle so idle never goes fully off-load.
	PedalAxisFloor = 0.05

	// SoftLimiterFraction positions the start of the limiter ramp
	// below the profile's soft limiter threshold.
	SoftLimiterFraction = 0.93

	// ExtraLayerGainScale attenuates auxiliary layers relative to the
	// on-load axis gain.
	ExtraLayerGainScale = 0.5
)

// Playback Rate Bounds
const (
	// MinPlaybackRate bounds pitch-down so a layer never slows into
	// an unrecognizable rumble.
	MinPlaybackRate = 0.1

	// MaxPlaybackRate bounds pitch-up past which resampling artifacts
	// dominate.
	MaxPlaybackRate = 4.0
)
