package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// SpeakerBufferDuration determines output latency. 100ms keeps
	// underruns rare on cheap onboard audio.
	SpeakerBufferDuration = 100 * time.Millisecond
)

// Layer Playback
const (
	// ResampleQuality for the per-layer pitch resampler. 3 is the
	// sweet spot between sinc width and per-frame cost.
	ResampleQuality = 3

	// GainSilenceThreshold below which a layer is muted outright
	// instead of driven at a large negative volume exponent.
	GainSilenceThreshold = 1e-3

	// VolumeBase for the logarithmic gain stage.
	VolumeBase = 2.0
)

// Layer Synthesis
const (
	// FiringPulsesPerRev sets the synthesized fundamental: a four
	// stroke V8 fires four times per crank revolution.
	FiringPulsesPerRev = 4.0

	// LayerHeadroom scales synthesized layers below full scale so
	// four simultaneous layers cannot clip the mixer.
	LayerHeadroom = 0.25
)
