// Package app wires the demo together: config, scene, frame loop, config
// reloads, keyboard actions and screenshots. It owns no window; a host
// drives Frame once per display refresh.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/config"
	"github.com/Faultbox/scenedemo/internal/engine/camera"
	"github.com/Faultbox/scenedemo/internal/engine/debug"
	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/logger"
	"github.com/Faultbox/scenedemo/pkg/math"
)

// PixelSource is a render target that can be read back.
type PixelSource interface {
	Size() (width, height int32)
	ReadPixels() []byte
}

// Stats is a snapshot of the frame counters.
type Stats struct {
	Frames uint64
	Phase  float64
	FPS    float32
}

// App is the host-independent part of the demo.
type App struct {
	cfg *config.Config

	opts     *scene.Options
	graph    *scene.Graph
	handles  *scene.Handles
	bindings *scene.Bindings
	loop     *scene.Loop

	watcher *config.Watcher
	updates <-chan config.SceneConfig

	shots   *debug.ScreenshotCapture
	palette int

	// FPS over the last full second
	now       func() time.Time
	fpsStart  time.Time
	fpsFrames int
	fps       float32

	log *zap.Logger
}

// New builds the scene described by cfg and a loop that renders into sink.
// A failing config watcher is logged and the demo runs without reloads.
func New(cfg *config.Config, sink scene.RenderSink) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	a := &App{
		cfg:   cfg,
		shots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "scenedemo", cfg.Debug.ScreenshotFormat),
		now:   time.Now,
		log:   logger.Named("app"),
	}

	opts := OptionsFromConfig(cfg.Scene)
	a.opts = &opts
	a.graph, a.handles = scene.Build(a.opts, BuildConfig(cfg))
	a.bindings = scene.NewBindings(a.opts, a.handles)
	a.loop = scene.NewLoop(a.graph, a.handles, a.opts, sink)
	a.fpsStart = a.now()

	if cfg.Debug.WatchConfig {
		if cfg.Source == "" {
			a.log.Warn("config watching requested but no config file was loaded")
		} else if w, err := config.Watch(cfg.Source); err != nil {
			a.log.Warn("config watching disabled", zap.Error(err))
		} else {
			a.watcher = w
			a.updates = w.Updates()
		}
	}

	a.log.Info("scene built",
		zap.Bool("extended_lighting", a.graph.Extended()),
		zap.Int("meshes", len(a.graph.Meshes)),
		zap.Int("line_sets", len(a.graph.Lines)),
		zap.Bool("watching", a.updates != nil),
	)
	return a, nil
}

// OptionsFromConfig converts the scene section into an options record.
func OptionsFromConfig(sc config.SceneConfig) scene.Options {
	o := scene.Options{
		Wireframe:     sc.Wireframe,
		SphereColor:   scene.Color(sc.SphereColor),
		BobSpeed:      sc.Speed,
		SpotAngle:     sc.Angle,
		SpotPenumbra:  sc.Penumbra,
		SpotIntensity: sc.Intensity,
	}
	o.Clamp()
	return o
}

// BuildConfig derives the scene variant and camera from cfg.
func BuildConfig(cfg *config.Config) scene.BuildConfig {
	return scene.BuildConfig{
		Width:            cfg.Graphics.Width,
		Height:           cfg.Graphics.Height,
		ExtendedLighting: cfg.Scene.ExtendedLighting,
		FOV:              cfg.Camera.FOV,
		Near:             cfg.Camera.Near,
		Far:              cfg.Camera.Far,
		Eye:              math.V3(cfg.Camera.Eye[0], cfg.Camera.Eye[1], cfg.Camera.Eye[2]),
		Target:           math.V3(cfg.Camera.Target[0], cfg.Camera.Target[1], cfg.Camera.Target[2]),
	}
}

// Frame applies pending config reloads, then steps and renders the scene.
func (a *App) Frame() error {
	a.applyUpdates()

	if err := a.loop.Frame(); err != nil {
		return err
	}

	a.tick()
	return nil
}

// applyUpdates drains the reload channel. It runs on the render thread, so
// the bindings stay the only writer of the options.
func (a *App) applyUpdates() {
	for {
		select {
		case sc, ok := <-a.updates:
			if !ok {
				a.updates = nil
				return
			}
			if sc.ExtendedLighting != a.graph.Extended() {
				a.log.Warn("extended_lighting changes need a restart",
					zap.Bool("running", a.graph.Extended()),
					zap.Bool("config", sc.ExtendedLighting),
				)
			}
			a.bindings.Apply(OptionsFromConfig(sc))
			a.log.Info("scene options reloaded", zap.Any("options", *a.opts))
		default:
			return
		}
	}
}

func (a *App) tick() {
	a.fpsFrames++
	now := a.now()
	elapsed := now.Sub(a.fpsStart)
	if elapsed < time.Second {
		return
	}

	a.fps = float32(float64(a.fpsFrames) / elapsed.Seconds())
	a.log.Debug("fps",
		zap.Float32("fps", a.fps),
		zap.Uint64("frames", a.loop.Frames()),
		zap.Float64("phase", a.loop.Phase()),
	)
	a.fpsFrames = 0
	a.fpsStart = now
}

// Stats returns the frame counters.
func (a *App) Stats() Stats {
	return Stats{
		Frames: a.loop.Frames(),
		Phase:  a.loop.Phase(),
		FPS:    a.fps,
	}
}

// WindowTitle appends the frame rate and frame count to base.
func WindowTitle(base string, s Stats) string {
	return fmt.Sprintf("%s - %.0f FPS, frame %d", base, s.FPS, s.Frames)
}

// Resize updates the camera for a new viewport size.
func (a *App) Resize(width, height int) {
	a.handles.Camera.SetAspect(width, height)
	a.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Orbit feeds pointer input to the camera: drag rotates, pan moves the
// center and wheel zooms.
func (a *App) Orbit(dragX, dragY, panX, panY, wheel float32) {
	cam := a.handles.Camera
	if dragX != 0 || dragY != 0 {
		cam.HandleDrag(dragX, dragY)
	}
	if panX != 0 || panY != 0 {
		cam.HandlePan(panX, panY)
	}
	if wheel != 0 {
		cam.HandleZoom(wheel)
	}
}

// Screenshot writes the contents of src to the screenshot directory.
func (a *App) Screenshot(src PixelSource) (string, error) {
	w, h := src.Size()
	path, err := a.shots.CaptureFromPixels(src.ReadPixels(), int(w), int(h))
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// Bindings returns the option writer shared by the panel and the keys.
func (a *App) Bindings() *scene.Bindings {
	return a.bindings
}

// Options returns the live options record.
func (a *App) Options() *scene.Options {
	return a.opts
}

// Graph returns the scene graph.
func (a *App) Graph() *scene.Graph {
	return a.graph
}

// Camera returns the scene camera.
func (a *App) Camera() *camera.OrbitCamera {
	return a.handles.Camera
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Close stops the loop, which releases the render sink, and the config
// watcher. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	if err := a.loop.Stop(); err != nil {
		errs = append(errs, err)
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing config watcher: %w", err))
		}
		a.watcher = nil
		a.updates = nil
	}
	return errors.Join(errs...)
}
