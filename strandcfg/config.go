// Package strandcfg loads the physical and scheduling constants the rest
// of the library is parameterized over, from a YAML file or its built-in
// defaults.
package strandcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable constant a strand graph needs at
// construction time: device cadence and the spatializer's physical
// model.
type Config struct {
	SampleRate  uint32 `yaml:"sample_rate"`
	BlockFrames int    `yaml:"block_frames"`

	SpeedOfSound     float32 `yaml:"speed_of_sound"`
	EarSeparation    float32 `yaml:"ear_separation"`
	SmoothWindow     float32 `yaml:"smooth_window"`
	MaxDelay         float32 `yaml:"max_delay"`
	GainSmoothWindow float32 `yaml:"gain_smooth_window"`
}

// WithDefaults returns c with every zero-valued field replaced by the
// library's default, so a partial YAML document (or an empty Config{})
// still produces a usable configuration.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.SampleRate == 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BlockFrames == 0 {
		c.BlockFrames = d.BlockFrames
	}
	if c.SpeedOfSound == 0 {
		c.SpeedOfSound = d.SpeedOfSound
	}
	if c.EarSeparation == 0 {
		c.EarSeparation = d.EarSeparation
	}
	if c.SmoothWindow == 0 {
		c.SmoothWindow = d.SmoothWindow
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.GainSmoothWindow == 0 {
		c.GainSmoothWindow = d.GainSmoothWindow
	}
	return c
}

// Default returns the library's built-in defaults: CD-quality audio,
// a 3ms block, and the physical constants spec'd for the spatializer.
func Default() Config {
	return Config{
		SampleRate:       44100,
		BlockFrames:      128,
		SpeedOfSound:     343,
		EarSeparation:    0.1075,
		SmoothWindow:     0.5,
		MaxDelay:         4.0,
		GainSmoothWindow: 0.1,
	}
}

// Load reads and parses a YAML config file at path, filling any field it
// omits from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("strandcfg: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("strandcfg: parsing %s: %w", path, err)
	}
	return c.WithDefaults(), nil
}
