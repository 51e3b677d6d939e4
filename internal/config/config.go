// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Source is the file the config was read from, empty for pure defaults.
	Source string `yaml:"-"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int      `yaml:"width"`
	Height           int      `yaml:"height"`
	Fullscreen       bool     `yaml:"fullscreen"`
	VSync            bool     `yaml:"vsync"`
	Shadows          bool     `yaml:"shadows"`
	ShadowResolution int32    `yaml:"shadow_resolution"`
	ClearColor       HexColor `yaml:"clear_color"`
}

// SceneConfig selects the scene variant and seeds the live options.
// It is also the section the config watcher reloads while running.
type SceneConfig struct {
	ExtendedLighting bool     `yaml:"extended_lighting"` // spotlight, helper, shadows, extra sliders
	Wireframe        bool     `yaml:"wireframe"`
	SphereColor      HexColor `yaml:"sphere_color"`
	Speed            float32  `yaml:"speed"`
	Angle            float32  `yaml:"angle"`
	Penumbra         float32  `yaml:"penumbra"`
	Intensity        float32  `yaml:"intensity"`
}

// CameraConfig holds the perspective camera and its starting pose.
type CameraConfig struct {
	FOV    float32    `yaml:"fov"` // vertical, degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
	ShowStats        bool   `yaml:"show_stats"`
	WatchConfig      bool   `yaml:"watch_config"` // reload the scene section when the file changes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's stock values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			Shadows:          true,
			ShadowResolution: 2048,
			ClearColor:       0x000000,
		},
		Scene: SceneConfig{
			ExtendedLighting: true,
			Wireframe:        false,
			SphereColor:      0x0000FF,
			Speed:            0.01,
			Angle:            0.2,
			Penumbra:         0,
			Intensity:        1,
		},
		Camera: CameraConfig{
			FOV:    45,
			Near:   0.1,
			Far:    1000,
			Eye:    [3]float32{-10, 30, 30},
			Target: [3]float32{0, 0, 0},
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
			ShowStats:        false,
			WatchConfig:      false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
