package profile

import "fmt"

// Catalog holds validated profiles keyed by id, preserving registration
// order for deterministic listing.
type Catalog struct {
	order    []string
	profiles map[string]*Profile
}

// NewCatalog builds a catalog from the given profiles, validating each.
func NewCatalog(profiles ...*Profile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates and registers a profile.
func (c *Catalog) Add(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := c.profiles[p.ID]; exists {
		return fmt.Errorf("profile %q already registered", p.ID)
	}
	c.profiles[p.ID] = p
	c.order = append(c.order, p.ID)
	return nil
}

// Get returns the profile with the given id.
func (c *Catalog) Get(id string) (*Profile, error) {
	p, ok := c.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// IDs returns profile ids in registration order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered profiles.
func (c *Catalog) Len() int {
	return len(c.order)
}
