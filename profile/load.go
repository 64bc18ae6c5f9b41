package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// layerJSON is the on-disk layer form; role is a string key.
type layerJSON struct {
	ID        string  `json:"id"`
	AnchorRPM float64 `json:"anchor_rpm"`
	Role      string  `json:"role"`
}

type profileJSON struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Layers         []layerJSON `json:"layers"`
	MinRPM         float64     `json:"min_rpm"`
	MaxRPM         float64     `json:"max_rpm"`
	IdleRPM        float64     `json:"idle_rpm"`
	SoftLimiterRPM float64     `json:"soft_limiter_rpm"`
	LimiterRPM     float64     `json:"limiter_rpm"`
}

// Parse decodes and validates a single profile from JSON.
func Parse(data []byte) (*Profile, error) {
	var pj profileJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	p := &Profile{
		ID:             pj.ID,
		Name:           pj.Name,
		MinRPM:         pj.MinRPM,
		MaxRPM:         pj.MaxRPM,
		IdleRPM:        pj.IdleRPM,
		SoftLimiterRPM: pj.SoftLimiterRPM,
		LimiterRPM:     pj.LimiterRPM,
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	p.Layers = make([]Layer, 0, len(pj.Layers))
	for _, lj := range pj.Layers {
		role, err := ParseRole(lj.Role)
		if err != nil {
			return nil, fmt.Errorf("profile %q: layer %q: %w", pj.ID, lj.ID, err)
		}
		p.Layers = append(p.Layers, Layer{
			ID:        lj.ID,
			AnchorRPM: lj.AnchorRPM,
			Role:      role,
		})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads and parses a profile JSON file.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}
