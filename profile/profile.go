package profile

import (
	"errors"
	"fmt"
)

// Role determines which gain formula the crossfade mapper applies to a
// layer.
type Role int

const (
	RoleOnLow   Role = iota // Under load, low RPM band
	RoleOnHigh              // Under load, high RPM band
	RoleOffLow              // Off throttle, low RPM band
	RoleOffHigh             // Off throttle, high RPM band
	RoleLimiter             // Rev limiter crackle
	RoleExtra               // Auxiliary (induction, transmission whine)
	roleCount
)

var roleNames = [roleCount]string{
	RoleOnLow:   "on_low",
	RoleOnHigh:  "on_high",
	RoleOffLow:  "off_low",
	RoleOffHigh: "off_high",
	RoleLimiter: "limiter",
	RoleExtra:   "extra",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole maps a config string to a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if s == name {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Layer is one sample layer within a profile. AnchorRPM is the RPM at
// which the layer plays at native pitch (playback rate 1.0).
type Layer struct {
	ID        string
	AnchorRPM float64
	Role      Role
}

// Profile is an immutable descriptor of one vehicle sound kit. It is
// constructed once, validated, and shared read-only by render-loop
// calls, so nothing here may be mutated after Validate.
type Profile struct {
	ID   string
	Name string

	// Layers in declaration order. Order fixes the output ordering of
	// the mapper, so it must be stable across frames.
	Layers []Layer

	MinRPM         float64
	MaxRPM         float64
	IdleRPM        float64
	SoftLimiterRPM float64
	LimiterRPM     float64
}

// Sentinel errors
var (
	ErrUnknownRole     = errors.New("unknown layer role")
	ErrNoLayers        = errors.New("profile has no layers")
	ErrBadRPMRange     = errors.New("profile rpm thresholds out of order")
	ErrBadLimiterRange = errors.New("profile limiter thresholds out of order")
	ErrDuplicateLayer  = errors.New("duplicate layer id")
	ErrNotFound        = errors.New("profile not found")
)

// Validate checks the structural invariants. Layer anchors are not
// required to be positive here: the mapper's playback-rate guard
// degrades a non-positive anchor to rate 1.0 instead of rejecting the
// profile.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("profile id is empty")
	}
	if len(p.Layers) == 0 {
		return fmt.Errorf("%s: %w", p.ID, ErrNoLayers)
	}
	if !(p.MinRPM < p.IdleRPM && p.IdleRPM <= p.MaxRPM) {
		return fmt.Errorf("%s: %w: min=%.0f idle=%.0f max=%.0f",
			p.ID, ErrBadRPMRange, p.MinRPM, p.IdleRPM, p.MaxRPM)
	}
	if !(p.SoftLimiterRPM < p.LimiterRPM) {
		return fmt.Errorf("%s: %w: soft=%.0f hard=%.0f",
			p.ID, ErrBadLimiterRange, p.SoftLimiterRPM, p.LimiterRPM)
	}
	seen := make(map[string]struct{}, len(p.Layers))
	for _, l := range p.Layers {
		if l.ID == "" {
			return fmt.Errorf("%s: layer with empty id", p.ID)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%s: %w: %q", p.ID, ErrDuplicateLayer, l.ID)
		}
		seen[l.ID] = struct{}{}
		if l.Role < 0 || l.Role >= roleCount {
			return fmt.Errorf("%s: layer %q: %w: %d", p.ID, l.ID, ErrUnknownRole, int(l.Role))
		}
	}
	return nil
}

// Layer returns the layer with the given id, or false.
func (p *Profile) Layer(id string) (Layer, bool) {
	for _, l := range p.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}
