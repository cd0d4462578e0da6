package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/roomsim/internal/acoustics"
)

const jsonSpec = `{
  "room_dims": [4, 3, 2.5],
  "source_positions": [[1, 1, 1.2]],
  "receiver_positions": [[3, 2, 1.2], [2, 1, 1.5]],
  "abs_coeff": {
    "low":  [0.1, 0.1, 0.1, 0.1, 0.1, 0.1],
    "mid":  [0.3, 0.3, 0.3, 0.3, 0.3, 0.3],
    "high": [0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
  },
  "max_order": 3
}`

const yamlSpec = `
room_dims: [4, 3, 2.5]
source_positions:
  - [1, 1, 1.2]
receiver_positions:
  - [3, 2, 1.2]
abs_coeff:
  low: [0.1, 0.1, 0.1, 0.1, 0.1, 0.1]
  mid: [0.3, 0.3, 0.3, 0.3, 0.3, 0.3]
  high: [0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
max_order: 2
simulation:
  sample_rate: 48000
  enhanced: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeFile(t, "room.json", jsonSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RoomDims != [3]float64{4, 3, 2.5} {
		t.Errorf("unexpected dims: %v", cfg.RoomDims)
	}
	if len(cfg.ReceiverPositions) != 2 {
		t.Errorf("expected 2 receivers, got %d", len(cfg.ReceiverPositions))
	}
	if cfg.MaxOrder != 3 {
		t.Errorf("expected max_order 3, got %d", cfg.MaxOrder)
	}

	// Unspecified simulation settings fall back to defaults.
	if cfg.Simulation.SampleRate != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %f", cfg.Simulation.SampleRate)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "room.yaml", yamlSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxOrder != 2 {
		t.Errorf("expected max_order 2, got %d", cfg.MaxOrder)
	}
	if cfg.Simulation.SampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %f", cfg.Simulation.SampleRate)
	}
	if !cfg.Simulation.Enhanced {
		t.Error("expected enhanced mode")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load(writeFile(t, "room.toml", "x = 1")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	orig, err := Load(writeFile(t, "room.json", jsonSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.json")
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.RoomDims != orig.RoomDims || again.MaxOrder != orig.MaxOrder {
		t.Error("round trip changed the config")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg, err := Load(writeFile(t, "room.json", jsonSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ec := cfg.EngineConfig()
	if len(ec.Sources) != 1 || len(ec.Receivers) != 2 {
		t.Fatalf("unexpected transducer counts: %d sources, %d receivers", len(ec.Sources), len(ec.Receivers))
	}
	if ec.Sources[0].Z != 1.2 {
		t.Errorf("expected source z 1.2, got %f", ec.Sources[0].Z)
	}
	if err := ec.Absorption.Validate(); err != nil {
		t.Errorf("converted absorption invalid: %v", err)
	}
	if ec.Absorption[acoustics.BandMid][0] != 0.3 {
		t.Errorf("unexpected mid coefficient: %f", ec.Absorption[acoustics.BandMid][0])
	}
}

func TestEngineOptionsDefaults(t *testing.T) {
	cfg := &Config{}
	opts := cfg.EngineOptions()

	if opts.SampleRate != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %f", opts.SampleRate)
	}
	if opts.BufferLength != DefaultBufferLength {
		t.Errorf("expected default buffer length, got %d", opts.BufferLength)
	}
	if opts.SpeedOfSound != DefaultSpeedOfSound {
		t.Errorf("expected default speed of sound, got %f", opts.SpeedOfSound)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("furnished_room")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.RoomDims != [3]float64{4, 3, 2.5} {
		t.Errorf("unexpected dims: %v", cfg.RoomDims)
	}
	if cfg.Simulation.SampleRate != DefaultSampleRate {
		t.Error("preset missing default simulation settings")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Fatal("preset names not sorted")
		}
	}
}

func TestPresetsConvert(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)

			if _, err := cfg.Room(); err != nil {
				t.Fatalf("preset room invalid: %v", err)
			}
			if err := cfg.EngineConfig().Absorption.Validate(); err != nil {
				t.Fatalf("preset absorption invalid: %v", err)
			}
		})
	}
}
