package profile

// Builtin kits. Anchor placement follows the recorded-sample convention:
// low-band layers are captured mid-range under load, high-band layers
// near peak power, so the crossfade midpoint lands where the engine
// character changes.

// V8 is a naturally aspirated crossplane V8 kit.
func V8() *Profile {
	return &Profile{
		ID:   "v8",
		Name: "Crossplane V8",
		Layers: []Layer{
			{ID: "v8_on_low", AnchorRPM: 5300, Role: RoleOnLow},
			{ID: "v8_on_high", AnchorRPM: 7900, Role: RoleOnHigh},
			{ID: "v8_off_low", AnchorRPM: 5300, Role: RoleOffLow},
			{ID: "v8_off_high", AnchorRPM: 7900, Role: RoleOffHigh},
			{ID: "v8_limiter", AnchorRPM: 8200, Role: RoleLimiter},
		},
		MinRPM:         900,
		MaxRPM:         8200,
		IdleRPM:        950,
		SoftLimiterRPM: 7900,
		LimiterRPM:     8200,
	}
}

// I4Turbo is a turbocharged inline four kit with an induction layer.
func I4Turbo() *Profile {
	return &Profile{
		ID:   "i4t",
		Name: "Turbo Inline Four",
		Layers: []Layer{
			{ID: "i4t_on_low", AnchorRPM: 3400, Role: RoleOnLow},
			{ID: "i4t_on_high", AnchorRPM: 6200, Role: RoleOnHigh},
			{ID: "i4t_off_low", AnchorRPM: 3400, Role: RoleOffLow},
			{ID: "i4t_off_high", AnchorRPM: 6200, Role: RoleOffHigh},
			{ID: "i4t_limiter", AnchorRPM: 6800, Role: RoleLimiter},
			{ID: "i4t_induction", AnchorRPM: 5000, Role: RoleExtra},
		},
		MinRPM:         800,
		MaxRPM:         6800,
		IdleRPM:        850,
		SoftLimiterRPM: 6500,
		LimiterRPM:     6800,
	}
}

// Builtins returns a catalog of the built-in kits.
func Builtins() *Catalog {
	c, err := NewCatalog(V8(), I4Turbo())
	if err != nil {
		// Builtin data is compile-time fixed; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}
