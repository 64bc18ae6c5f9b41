// Package mapper converts a smoothed (rpm, pedal) pair into per-layer
// gain and playback-rate parameters via equal-power crossfades on two
// independent axes: RPM (low band vs high band) and throttle (on-load
// vs off-load).
//
// Equal-power, not linear: a linear blend dips to half power at the
// midpoint (an audible -3 dB sag). With gains cos(t*pi/2) and
// sin(t*pi/2) the squared gains always sum to 1, so perceived loudness
// holds through the transition. The whole mapping costs four trig
// calls per frame.
package mapper

import (
	"math"

	"github.com/lixenwraith/revtone/parameter"
	"github.com/lixenwraith/revtone/profile"
)

// LayerOutput is the per-frame parameter set for one layer. Produced
// fresh every frame, never persisted.
type LayerOutput struct {
	LayerID      string
	Gain         float64 // [0,1]
	PlaybackRate float64 // [MinPlaybackRate, MaxPlaybackRate]
}

// Band selects the low or high RPM sample band.
type Band int

const (
	BandLow Band = iota
	BandHigh
)

// BandAnchor returns the representative RPM for a band: the mean
// anchor of the band's on/off layers, falling back to the profile's
// min (low) or max (high) RPM when the band has no layers.
func BandAnchor(band Band, p *profile.Profile) float64 {
	var sum float64
	var n int
	for _, l := range p.Layers {
		switch band {
		case BandLow:
			if l.Role == profile.RoleOnLow || l.Role == profile.RoleOffLow {
				sum += l.AnchorRPM
				n++
			}
		case BandHigh:
			if l.Role == profile.RoleOnHigh || l.Role == profile.RoleOffHigh {
				sum += l.AnchorRPM
				n++
			}
		}
	}
	if n == 0 {
		if band == BandLow {
			return p.MinRPM
		}
		return p.MaxRPM
	}
	return sum / float64(n)
}

// crossfadePos maps rpm onto [0,1] between the band anchors. A profile
// whose anchors coincide would divide by zero; degrade to a hard step
// at the shared anchor instead.
func crossfadePos(rpm, lowAnchor, highAnchor float64) float64 {
	if highAnchor == lowAnchor {
		if rpm >= lowAnchor {
			return 1
		}
		return 0
	}
	return clamp((rpm-lowAnchor)/(highAnchor-lowAnchor), 0, 1)
}

// LimiterRatio ramps 0..1 across the limiter window. The ramp starts
// slightly below the soft limiter threshold so crackle fades in before
// the cut.
func LimiterRatio(rpm float64, p *profile.Profile) float64 {
	softStart := p.SoftLimiterRPM * parameter.SoftLimiterFraction
	span := p.LimiterRPM - softStart
	if span <= 0 {
		if rpm >= p.LimiterRPM {
			return 1
		}
		return 0
	}
	return clamp((rpm-softStart)/span, 0, 1)
}

// PlaybackRate returns the pitch multiplier that shifts a layer
// recorded at anchor to sound like rpm. A non-positive anchor is
// misconfigured data; degrade to native pitch rather than produce Inf.
func PlaybackRate(rpm, anchor float64) float64 {
	if anchor <= 0 {
		return 1.0
	}
	return clamp(rpm/anchor, parameter.MinPlaybackRate, parameter.MaxPlaybackRate)
}

// Compute maps (rpm, pedal) to one LayerOutput per profile layer, in
// profile layer order. Pure function: no state, safe to call
// concurrently.
func Compute(rpm, pedal float64, p *profile.Profile) []LayerOutput {
	return ComputeInto(make([]LayerOutput, 0, len(p.Layers)), rpm, pedal, p)
}

// ComputeInto appends the outputs to dst, for callers that reuse a
// scratch slice across frames.
func ComputeInto(dst []LayerOutput, rpm, pedal float64, p *profile.Profile) []LayerOutput {
	lowAnchor := BandAnchor(BandLow, p)
	highAnchor := BandAnchor(BandHigh, p)

	// RPM axis
	t := crossfadePos(rpm, lowAnchor, highAnchor)
	lowGain := math.Cos(t * math.Pi / 2)
	highGain := math.Sin(t * math.Pi / 2)

	// Throttle axis. The floor keeps a minimal on-load presence at
	// idle so the engine never sounds fully dead.
	pedalEff := clamp(math.Max(pedal, parameter.PedalAxisFloor), 0, 1)
	onGain := math.Sin(pedalEff * math.Pi / 2)
	offGain := math.Cos(pedalEff * math.Pi / 2)

	limiter := LimiterRatio(rpm, p)

	for _, l := range p.Layers {
		var gain float64
		switch l.Role {
		case profile.RoleOnLow:
			gain = onGain * lowGain
		case profile.RoleOnHigh:
			gain = onGain * highGain
		case profile.RoleOffLow:
			gain = offGain * lowGain
		case profile.RoleOffHigh:
			gain = offGain * highGain
		case profile.RoleLimiter:
			gain = limiter
		case profile.RoleExtra:
			gain = onGain * parameter.ExtraLayerGainScale
		}
		dst = append(dst, LayerOutput{
			LayerID:      l.ID,
			Gain:         gain,
			PlaybackRate: PlaybackRate(rpm, l.AnchorRPM),
		})
	}
	return dst
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
