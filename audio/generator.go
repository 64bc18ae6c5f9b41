package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/revtone/parameter"
	"github.com/lixenwraith/revtone/profile"
)

// cycleStreamer synthesizes an endless engine-cycle loop: a harmonic
// stack on the firing fundamental plus a noise bed. It stands in for a
// recorded sample buffer; the graph pitches it with a resampler exactly
// as it would a decoded recording.
type cycleStreamer struct {
	sr        beep.SampleRate
	freq      float64   // firing fundamental at native pitch (Hz)
	phase     float64   // [0,1)
	harmonics []float64 // amplitude per harmonic, 1-indexed fundamental
	noise     float64   // noise bed mix
	norm      float64   // 1 / total amplitude
	rng       *rand.Rand
}

func newCycleStreamer(sr beep.SampleRate, anchorRPM float64, harmonics []float64, noise float64, seed int64) *cycleStreamer {
	freq := anchorRPM / 60.0 * parameter.FiringPulsesPerRev
	if freq <= 0 {
		freq = 30 // misconfigured anchor; keep the streamer alive
	}
	total := noise
	for _, a := range harmonics {
		total += a
	}
	if total <= 0 {
		total = 1
	}
	return &cycleStreamer{
		sr:        sr,
		freq:      freq,
		harmonics: harmonics,
		noise:     noise,
		norm:      1 / total,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (c *cycleStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	step := c.freq / float64(c.sr)
	for i := range samples {
		var val float64
		for h, amp := range c.harmonics {
			val += amp * math.Sin(2*math.Pi*float64(h+1)*c.phase)
		}
		if c.noise > 0 {
			val += c.noise * (c.rng.Float64()*2 - 1)
		}
		val *= c.norm * parameter.LayerHeadroom

		samples[i][0] = val
		samples[i][1] = val

		c.phase += step
		if c.phase >= 1 {
			c.phase -= 1
		}
	}
	return len(samples), true
}

func (c *cycleStreamer) Err() error {
	return nil
}

// newLayerStreamer picks a timbre per layer role. On-load layers get a
// bright harmonic stack, off-load a darker one with overrun noise, the
// limiter is mostly noise, extra layers a thin whine.
func newLayerStreamer(sr beep.SampleRate, l profile.Layer, seed int64) beep.Streamer {
	switch l.Role {
	case profile.RoleOnLow:
		return newCycleStreamer(sr, l.AnchorRPM, []float64{1.0, 0.55, 0.4, 0.2, 0.12}, 0.04, seed)
	case profile.RoleOnHigh:
		return newCycleStreamer(sr, l.AnchorRPM, []float64{1.0, 0.7, 0.5, 0.35, 0.25, 0.15}, 0.06, seed)
	case profile.RoleOffLow:
		return newCycleStreamer(sr, l.AnchorRPM, []float64{1.0, 0.3, 0.1}, 0.15, seed)
	case profile.RoleOffHigh:
		return newCycleStreamer(sr, l.AnchorRPM, []float64{1.0, 0.4, 0.15}, 0.2, seed)
	case profile.RoleLimiter:
		return newCycleStreamer(sr, l.AnchorRPM, []float64{0.5}, 0.9, seed)
	default: // RoleExtra
		return newCycleStreamer(sr, l.AnchorRPM*2, []float64{1.0, 0.2}, 0.02, seed)
	}
}
