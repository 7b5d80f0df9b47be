// Package config manages JSON-backed configuration for the emulation
// core: region timing, FastROM override, APU clock ratio tuning, and
// log level. Host-only concerns (window, key bindings, paths) are not
// this package's job.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the core's tunable settings.
type Config struct {
	Emulation EmulationConfig `json:"emulation"`
	Audio     AudioConfig     `json:"audio"`
	Debug     DebugConfig     `json:"debug"`

	configPath string
	loaded     bool
}

// EmulationConfig controls core timing behavior.
type EmulationConfig struct {
	Region         string `json:"region"`          // "NTSC" or "PAL"
	ForceFastROM   bool   `json:"force_fast_rom"`  // override the cartridge header's speed bit
	CycleAccuracy  bool   `json:"cycle_accuracy"`  // run the scheduler in lock-step rather than batched
	SaveStateSlots int    `json:"save_state_slots"`
}

// AudioConfig tunes the APU's relationship to the main clock.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	ClockRatio float64 `json:"clock_ratio"` // APU-to-master clock scale factor, 1.0 = nominal
}

// DebugConfig controls logging verbosity.
type DebugConfig struct {
	LogLevel   string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
	CPUTracing bool   `json:"cpu_tracing"`
	PPUTracing bool   `json:"ppu_tracing"`
}

// New returns a Config populated with the nominal NTSC defaults.
func New() *Config {
	return &Config{
		Emulation: EmulationConfig{
			Region:         "NTSC",
			ForceFastROM:   false,
			CycleAccuracy:  true,
			SaveStateSlots: 10,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 32000,
			ClockRatio: 1.0,
		},
		Debug: DebugConfig{
			LogLevel: "INFO",
		},
	}
}

// LoadFromFile reads a JSON config file, writing out the defaults if
// it doesn't yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile writes the config as indented JSON to path.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save writes back to the path Config was last loaded from or saved to.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

func (c *Config) validate() error {
	if c.Emulation.Region != "NTSC" && c.Emulation.Region != "PAL" {
		c.Emulation.Region = "NTSC"
	}
	if c.Emulation.SaveStateSlots <= 0 {
		c.Emulation.SaveStateSlots = 10
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 32000
	}
	if c.Audio.ClockRatio <= 0 {
		c.Audio.ClockRatio = 1.0
	}
	switch c.Debug.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		c.Debug.LogLevel = "INFO"
	}
	return nil
}

// IsLoaded reports whether the config was populated from an existing file.
func (c *Config) IsLoaded() bool { return c.loaded }

// GetConfigPath returns the path most recently used by Load/SaveToFile.
func (c *Config) GetConfigPath() string { return c.configPath }

// Clone deep-copies the config via a JSON round trip.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return New()
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return New()
	}
	clone.configPath = c.configPath
	clone.loaded = c.loaded
	return clone
}

// MasterClockHz returns the master clock rate for the configured region.
func (c *Config) MasterClockHz() float64 {
	if c.Emulation.Region == "PAL" {
		return 21281370.0
	}
	return 21477270.0
}

// GetDefaultConfigPath returns the default on-disk config location.
func GetDefaultConfigPath() string {
	return "./config/snesgo.json"
}
