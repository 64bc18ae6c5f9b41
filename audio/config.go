package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/revtone/parameter"
)

// Config holds audio output settings.
type Config struct {
	Enabled         bool
	SampleRate      int
	BufferDuration  time.Duration
	MasterVolume    float64 // [0,1]
	ResampleQuality int
}

// DefaultConfig returns production audio settings.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		SampleRate:      parameter.AudioSampleRate,
		BufferDuration:  parameter.SpeakerBufferDuration,
		MasterVolume:    0.8,
		ResampleQuality: parameter.ResampleQuality,
	}
}

// LoadConfig builds a config from defaults overlaid with environment
// variables. Malformed values are ignored, out-of-range values clamped.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("REVTONE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume as 0-100
	if volume := os.Getenv("REVTONE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("REVTONE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
