package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/scenedemo/internal/logger"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.Shadows {
		t.Error("expected shadows to be enabled by default")
	}

	// Scene options
	if !cfg.Scene.ExtendedLighting {
		t.Error("expected extended lighting by default")
	}
	if cfg.Scene.Wireframe {
		t.Error("expected wireframe off by default")
	}
	if cfg.Scene.SphereColor != 0x0000FF {
		t.Errorf("expected sphere color #0000ff, got %s", cfg.Scene.SphereColor)
	}
	if cfg.Scene.Speed != 0.01 {
		t.Errorf("expected speed 0.01, got %f", cfg.Scene.Speed)
	}
	if cfg.Scene.Angle != 0.2 || cfg.Scene.Penumbra != 0 || cfg.Scene.Intensity != 1 {
		t.Errorf("unexpected spot defaults: %+v", cfg.Scene)
	}

	// Camera
	if cfg.Camera.FOV != 45 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 {
		t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
	}
	if cfg.Camera.Eye != [3]float32{-10, 30, 30} {
		t.Errorf("expected eye (-10,30,30), got %v", cfg.Camera.Eye)
	}

	// Debug
	if cfg.Debug.ScreenshotFormat != "png" {
		t.Errorf("expected screenshot format 'png', got %s", cfg.Debug.ScreenshotFormat)
	}

	// Logging
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  shadows: false
  clear_color: "#102030"

scene:
  extended_lighting: false
  wireframe: true
  sphere_color: "#ff8800"
  speed: 0.005
  angle: 0.4

camera:
  eye: [1, 2, 3]

logging:
  level: "debug"
  log_file: "demo.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.ClearColor != 0x102030 {
		t.Errorf("expected clear color #102030, got %s", cfg.Graphics.ClearColor)
	}
	// Unset keys keep their defaults
	if cfg.Graphics.ShadowResolution != 2048 {
		t.Errorf("expected shadow resolution 2048, got %d", cfg.Graphics.ShadowResolution)
	}

	if cfg.Scene.ExtendedLighting {
		t.Error("expected extended lighting to be false")
	}
	if !cfg.Scene.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Scene.SphereColor != 0xFF8800 {
		t.Errorf("expected sphere color #ff8800, got %s", cfg.Scene.SphereColor)
	}
	if cfg.Scene.Speed != 0.005 {
		t.Errorf("expected speed 0.005, got %f", cfg.Scene.Speed)
	}
	if cfg.Scene.Intensity != 1 {
		t.Errorf("expected default intensity 1, got %f", cfg.Scene.Intensity)
	}

	if cfg.Camera.Eye != [3]float32{1, 2, 3} {
		t.Errorf("expected eye (1,2,3), got %v", cfg.Camera.Eye)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "demo.log" {
		t.Errorf("expected log file 'demo.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileBadColor(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "color.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  sphere_color: \"#zzzzzz\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), configPath)
	if err == nil {
		t.Fatal("expected error for bad color")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error to name the line, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    HexColor
		wantErr bool
	}{
		{"#0000ff", 0x0000FF, false},
		{"#FFFFFF", 0xFFFFFF, false},
		{"0x00ff00", 0x00FF00, false},
		{"255", 0xFF, false},
		{" #333333 ", 0x333333, false},
		{"#1000000", 0, true},
		{"0x1000000", 0, true},
		{"blue", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")

	cfg := Default()
	cfg.Scene.SphereColor = 0xABCDEF
	cfg.Scene.Speed = 0.0025
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.Contains(string(data), "#abcdef") {
		t.Errorf("expected color written as #abcdef, got:\n%s", data)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Scene.SphereColor != 0xABCDEF || loaded.Scene.Speed != 0.0025 {
		t.Errorf("saved scene section not restored: %+v", loaded.Scene)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 0
	cfg.Graphics.ShadowResolution = -1
	cfg.Camera.FOV = 200
	cfg.Camera.Far = 0
	cfg.Scene.Speed = 5
	cfg.Scene.Angle = -1
	cfg.Scene.Intensity = 2

	cfg.normalize()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width reset to 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.ShadowResolution != 2048 {
		t.Errorf("expected shadow resolution reset, got %d", cfg.Graphics.ShadowResolution)
	}
	if cfg.Camera.FOV != 45 || cfg.Camera.Far != 1000 {
		t.Errorf("expected camera reset, got %+v", cfg.Camera)
	}
	if cfg.Scene.Speed != 0.01 {
		t.Errorf("expected speed clamped to 0.01, got %f", cfg.Scene.Speed)
	}
	if cfg.Scene.Angle != 0 {
		t.Errorf("expected angle clamped to 0, got %f", cfg.Scene.Angle)
	}
	if cfg.Scene.Intensity != 1 {
		t.Errorf("expected intensity clamped to 1, got %f", cfg.Scene.Intensity)
	}
}

func TestNormalizeNaN(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(c *Config) bool
	}{
		{"speed", "scene:\n  speed: .nan\n", func(c *Config) bool { return c.Scene.Speed == 0 }},
		{"angle", "scene:\n  angle: .nan\n", func(c *Config) bool { return c.Scene.Angle == 0 }},
		{"penumbra", "scene:\n  penumbra: .nan\n", func(c *Config) bool { return c.Scene.Penumbra == 0 }},
		{"intensity", "scene:\n  intensity: .nan\n", func(c *Config) bool { return c.Scene.Intensity == 0 }},
		{"fov", "camera:\n  fov: .nan\n", func(c *Config) bool { return c.Camera.FOV == 45 }},
		{"near", "camera:\n  near: .nan\n", func(c *Config) bool { return c.Camera.Near == Default().Camera.Near }},
		{"far", "camera:\n  far: .nan\n", func(c *Config) bool { return c.Camera.Far == 1000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0644); err != nil {
				t.Fatal(err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatalf("loadFromFile: %v", err)
			}
			cfg.normalize()

			if !tt.check(cfg) {
				t.Errorf("NaN %s survived normalize: scene %+v, camera %+v", tt.name, cfg.Scene, cfg.Camera)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "scenedemo.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find scenedemo.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowStats {
					t.Error("expected show_stats to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "basic flag",
			setup: func() { *flagBasic = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.ExtendedLighting {
					t.Error("expected extended lighting off with basic flag")
				}
			},
			teardown: func() { *flagBasic = false },
		},
		{
			name:  "no-shadows flag",
			setup: func() { *flagNoShadows = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Shadows {
					t.Error("expected shadows off with no-shadows flag")
				}
			},
			teardown: func() { *flagNoShadows = false },
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Debug.WatchConfig {
					t.Error("expected watch_config on with watch flag")
				}
			},
			teardown: func() { *flagWatch = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
scene:
  extended_lighting: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flags override the file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagBasic = true
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagBasic = false
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Scene.ExtendedLighting {
		t.Error("expected basic flag to win over the file")
	}
	if cfg.Source != configPath {
		t.Errorf("expected source %s, got %s", configPath, cfg.Source)
	}
}

func TestWatcher(t *testing.T) {
	logger.InitNop()

	path := filepath.Join(t.TempDir(), "scenedemo.yaml")
	if err := os.WriteFile(path, []byte("scene:\n  speed: 0.002\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	// A broken file is skipped, the next good write still arrives
	if err := os.WriteFile(path, []byte("scene: [oops\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(path, []byte("scene:\n  speed: 0.004\n  sphere_color: \"#ff0000\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case sc := <-w.Updates():
			if sc.Speed != 0.004 {
				continue
			}
			if sc.SphereColor != 0xFF0000 {
				t.Errorf("expected sphere color #ff0000, got %s", sc.SphereColor)
			}
			// Keys absent from the file fall back to defaults
			if sc.Angle != 0.2 {
				t.Errorf("expected default angle 0.2, got %f", sc.Angle)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for config update")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	logger.InitNop()

	path := filepath.Join(t.TempDir(), "scenedemo.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
