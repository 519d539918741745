package config

import "sort"

func preset(layout string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Layout = layout
	if edit != nil {
		edit(c)
	}
	return c
}

var Presets = map[string]map[string]*Config{
	"home": {
		"default": preset("home", nil),
		"moon": preset("home", func(c *Config) {
			c.Gravity = Vec{Y: 1.62}
			c.PressedGravity = Vec{Y: -1}
		}),
		"still": preset("home", func(c *Config) {
			c.FlipGravity = false
			c.Hand = false
		}),
	},
	"letters": {
		"default": preset("letters", nil),
		"chaos": preset("letters", func(c *Config) {
			c.ScatterImpulse = 6
			c.FlipGravity = false
		}),
	},
	"playground": {
		"default": preset("playground", nil),
		"zero_g": preset("playground", func(c *Config) {
			c.Gravity = Vec{}
			c.PressedGravity = Vec{Y: 4}
		}),
		"stress": preset("playground", func(c *Config) {
			c.Run.FPS = 24
			c.Run.Jitter = 0.5
			c.Run.Runs = 8
		}),
	},
}

func GetPreset(layout, name string) *Config {
	layoutPresets, ok := Presets[layout]
	if !ok {
		return nil
	}
	cfg, ok := layoutPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(layout string) []string {
	layoutPresets, ok := Presets[layout]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(layoutPresets))
	for name := range layoutPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
