// Package config loads room specification files. Room specs are JSON (the
// format plotting and archival tooling consumes) with YAML accepted for
// hand-written files; the extension picks the decoder.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/geometry"
)

const (
	DefaultSampleRate   = 44100.0
	DefaultBufferLength = 44100
	DefaultSpeedOfSound = 343.0
)

// Config is one room specification: geometry, transducer positions,
// per-band wall absorption, and simulation settings.
type Config struct {
	RoomDims          [3]float64       `json:"room_dims" yaml:"room_dims"`
	SourcePositions   [][3]float64     `json:"source_positions" yaml:"source_positions"`
	ReceiverPositions [][3]float64     `json:"receiver_positions" yaml:"receiver_positions"`
	AbsCoeff          AbsorptionConfig `json:"abs_coeff" yaml:"abs_coeff"`
	MaxOrder          int              `json:"max_order" yaml:"max_order"`
	Simulation        SimulationConfig `json:"simulation,omitempty" yaml:"simulation"`
}

// AbsorptionConfig holds six per-wall coefficients for each band, in the
// canonical wall order: floor, ceiling, front, back, left, right.
type AbsorptionConfig struct {
	Low  []float64 `json:"low" yaml:"low"`
	Mid  []float64 `json:"mid" yaml:"mid"`
	High []float64 `json:"high" yaml:"high"`
}

// SimulationConfig holds the discretization settings of the synthesizer.
type SimulationConfig struct {
	SampleRate   float64 `json:"sample_rate" yaml:"sample_rate"`
	BufferLength int     `json:"buffer_length" yaml:"buffer_length"`
	SpeedOfSound float64 `json:"speed_of_sound" yaml:"speed_of_sound"`
	Enhanced     bool    `json:"enhanced" yaml:"enhanced"`
}

// DefaultConfig returns a config with standard simulation settings and no
// room; loaded files override what they specify.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			SampleRate:   DefaultSampleRate,
			BufferLength: DefaultBufferLength,
			SpeedOfSound: DefaultSpeedOfSound,
		},
	}
}

// Load reads a room spec from path. ".json" files use the JSON decoder,
// ".yaml"/".yml" the YAML decoder.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported extension %q", filepath.Ext(path))
	}
	return cfg, nil
}

// Save writes the config to path in the format its extension selects.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		return fmt.Errorf("config: unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineConfig converts the room spec to the engine's input. Validation
// happens inside the engine, before any simulation work.
func (c *Config) EngineConfig() acoustics.Config {
	return acoustics.Config{
		RoomDims:  c.RoomDims,
		Sources:   toPoints(c.SourcePositions),
		Receivers: toPoints(c.ReceiverPositions),
		Absorption: acoustics.Absorption{
			acoustics.BandLow:  c.AbsCoeff.Low,
			acoustics.BandMid:  c.AbsCoeff.Mid,
			acoustics.BandHigh: c.AbsCoeff.High,
		},
		MaxOrder: c.MaxOrder,
	}
}

// EngineOptions converts the simulation settings to engine options,
// substituting defaults for unset fields.
func (c *Config) EngineOptions() acoustics.Options {
	opts := acoustics.DefaultOptions()
	if c.Simulation.SampleRate > 0 {
		opts.SampleRate = c.Simulation.SampleRate
	}
	if c.Simulation.BufferLength > 0 {
		opts.BufferLength = c.Simulation.BufferLength
	}
	if c.Simulation.SpeedOfSound > 0 {
		opts.SpeedOfSound = c.Simulation.SpeedOfSound
	}
	opts.Enhanced = c.Simulation.Enhanced
	return opts
}

// Room builds the room geometry from the configured dimensions.
func (c *Config) Room() (*geometry.Room, error) {
	return geometry.NewRoom(c.RoomDims[0], c.RoomDims[1], c.RoomDims[2])
}

func toPoints(coords [][3]float64) []geometry.Point {
	pts := make([]geometry.Point, len(coords))
	for i, c := range coords {
		pts[i] = geometry.Point{X: c[0], Y: c[1], Z: c[2]}
	}
	return pts
}
