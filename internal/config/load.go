package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.Source = configPath
	}

	applyFlags(cfg)
	cfg.normalize()

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./scenedemo.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "SceneDemo")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SceneDemo")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scenedemo")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "scenedemo")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize replaces unusable values with defaults and clamps the scene options.
func (c *Config) normalize() {
	def := Default()
	if c.Graphics.Width <= 0 {
		c.Graphics.Width = def.Graphics.Width
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = def.Graphics.Height
	}
	if c.Graphics.ShadowResolution <= 0 {
		c.Graphics.ShadowResolution = def.Graphics.ShadowResolution
	}
	// Written as positive tests so NaN falls back too
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		c.Camera.FOV = def.Camera.FOV
	}
	if !(c.Camera.Near > 0) {
		c.Camera.Near = def.Camera.Near
	}
	if !(c.Camera.Far > c.Camera.Near) {
		c.Camera.Far = def.Camera.Far
	}
	c.Scene.clamp()
}

// clamp forces the option values into the ranges the panel widgets allow.
func (s *SceneConfig) clamp() {
	s.SphereColor &= 0xFFFFFF
	s.Speed = clampf(s.Speed, 0, 0.01)
	s.Angle = clampf(s.Angle, 0, 1)
	s.Penumbra = clampf(s.Penumbra, 0, 1)
	s.Intensity = clampf(s.Intensity, 0, 1)
}

func clampf(v, lo, hi float32) float32 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
