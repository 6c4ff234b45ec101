package config

// Presets are named starting points for common runs.
var presets = map[string]func(Config) Config{
	// One nominal spin, X gate.
	"single": func(c Config) Config {
		return c
	},
	// Disorder-averaged X gate over a small ensemble.
	"robust": func(c Config) Config {
		c.Spins = 8
		c.FreqSpread = 0.2
		c.AmpSpread = 0.05
		c.MaxIter = 500
		return c
	},
	// Hadamard with an amplitude penalty to keep the pulse gentle.
	"hadamard": func(c Config) Config {
		c.Target = "hadamard"
		c.PenaltyWeight = 1e-4
		return c
	},
}

// Preset returns the named preset applied over the defaults.
func Preset(name string) (Config, bool) {
	apply, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return apply(Default()), true
}

// PresetNames lists the available presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
