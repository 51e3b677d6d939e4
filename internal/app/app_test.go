package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/internal/config"
	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/logger"
)

func init() {
	logger.InitNop()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Debug.ScreenshotDir = t.TempDir()
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, *scene.RecordingSink) {
	t.Helper()
	sink := &scene.RecordingSink{}
	a, err := New(cfg, sink)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, sink
}

func TestNewNilConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestNewBuildsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Wireframe = true
	cfg.Scene.SphereColor = 0xFF8800
	cfg.Scene.Speed = 0.004

	a, _ := newTestApp(t, cfg)

	if !a.Graph().Extended() {
		t.Error("expected extended variant by default")
	}
	mat := a.Graph().Sphere.Material
	if !mat.Wireframe || mat.Color != 0xFF8800 {
		t.Errorf("sphere material = %+v, want wireframe #ff8800", *mat)
	}
	if a.Options().BobSpeed != 0.004 {
		t.Errorf("BobSpeed = %f, want 0.004", a.Options().BobSpeed)
	}
	if got := a.Camera().Aspect; math32.Abs(got-1280.0/720.0) > 1e-5 {
		t.Errorf("camera aspect = %f", got)
	}
}

func TestNewBasicVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ExtendedLighting = false

	a, _ := newTestApp(t, cfg)

	if a.Graph().Extended() {
		t.Error("expected basic variant")
	}
	if a.Bindings().Extended() {
		t.Error("bindings should not expose spot fields")
	}
}

func TestOptionsFromConfigClamps(t *testing.T) {
	o := OptionsFromConfig(config.SceneConfig{
		SphereColor: 0x123456,
		Speed:       1,
		Angle:       -1,
		Penumbra:    0.5,
		Intensity:   3,
	})

	want := scene.Options{
		SphereColor:   0x123456,
		BobSpeed:      scene.MaxBobSpeed,
		SpotAngle:     0,
		SpotPenumbra:  0.5,
		SpotIntensity: 1,
	}
	if o != want {
		t.Errorf("OptionsFromConfig() = %+v, want %+v", o, want)
	}
}

func TestFrameRendersThroughSink(t *testing.T) {
	a, sink := newTestApp(t, testConfig(t))

	for i := 0; i < 5; i++ {
		if err := a.Frame(); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
	}

	if len(sink.Frames) != 5 {
		t.Errorf("renders = %d, want 5", len(sink.Frames))
	}
	if s := a.Stats(); s.Frames != 5 {
		t.Errorf("Stats().Frames = %d, want 5", s.Frames)
	}
}

func TestFrameAppliesConfigUpdates(t *testing.T) {
	a, sink := newTestApp(t, testConfig(t))

	updates := make(chan config.SceneConfig, 1)
	a.updates = updates

	sc := a.Config().Scene
	sc.Wireframe = true
	sc.SphereColor = 0x00FF00
	sc.Speed = 0.005
	sc.Angle = 0.6
	updates <- sc

	// Nothing changes until the render thread drains the channel
	if a.Options().BobSpeed != 0.01 {
		t.Fatalf("options changed before Frame")
	}

	if err := a.Frame(); err != nil {
		t.Fatal(err)
	}

	o := a.Options()
	if !o.Wireframe || o.SphereColor != 0x00FF00 || o.BobSpeed != 0.005 || o.SpotAngle != 0.6 {
		t.Errorf("options not reloaded: %+v", *o)
	}

	// The reload lands before the step of the same frame
	rec := sink.Frames[0]
	if !rec.Wireframe || rec.SphereColor != 0x00FF00 {
		t.Errorf("render saw stale material: %+v", rec)
	}
	if rec.Spot == nil || rec.Spot.Angle != 0.6 {
		t.Errorf("render saw stale spot: %+v", rec.Spot)
	}
	if got, want := a.Stats().Phase, float64(float32(0.005)); got != want {
		t.Errorf("phase = %v, want %v", got, want)
	}
}

func TestFrameClosedUpdates(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))

	updates := make(chan config.SceneConfig)
	close(updates)
	a.updates = updates

	if err := a.Frame(); err != nil {
		t.Fatal(err)
	}
	if a.updates != nil {
		t.Error("closed update channel should be dropped")
	}
}

func TestDo(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, a *App)
	}{
		{
			name:   "toggle wireframe",
			action: ActionToggleWireframe,
			check: func(t *testing.T, a *App) {
				if !a.Options().Wireframe || !a.Graph().Sphere.Material.Wireframe {
					t.Error("wireframe not applied to the material")
				}
			},
		},
		{
			name:   "next color",
			action: ActionNextColor,
			check: func(t *testing.T, a *App) {
				if got := a.Graph().Sphere.Material.Color; got != Palette[1] {
					t.Errorf("color = %06x, want %06x", uint32(got), uint32(Palette[1]))
				}
			},
		},
		{
			name:   "speed up clamps",
			action: ActionSpeedUp,
			check: func(t *testing.T, a *App) {
				if a.Options().BobSpeed != scene.MaxBobSpeed {
					t.Errorf("BobSpeed = %f, want max", a.Options().BobSpeed)
				}
			},
		},
		{
			name:   "speed down",
			action: ActionSpeedDown,
			check: func(t *testing.T, a *App) {
				if got := a.Options().BobSpeed; math32.Abs(got-0.009) > 1e-6 {
					t.Errorf("BobSpeed = %f, want 0.009", got)
				}
			},
		},
		{
			name:   "angle up",
			action: ActionAngleUp,
			check: func(t *testing.T, a *App) {
				if got := a.Options().SpotAngle; math32.Abs(got-0.25) > 1e-6 {
					t.Errorf("SpotAngle = %f, want 0.25", got)
				}
			},
		},
		{
			name:   "penumbra down clamps",
			action: ActionPenumbraDown,
			check: func(t *testing.T, a *App) {
				if a.Options().SpotPenumbra != 0 {
					t.Errorf("SpotPenumbra = %f, want 0", a.Options().SpotPenumbra)
				}
			},
		},
		{
			name:   "intensity down",
			action: ActionIntensityDown,
			check: func(t *testing.T, a *App) {
				if got := a.Options().SpotIntensity; math32.Abs(got-0.95) > 1e-6 {
					t.Errorf("SpotIntensity = %f, want 0.95", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, testConfig(t))
			if !a.Do(tt.action) {
				t.Fatalf("Do(%s) = false", tt.action)
			}
			tt.check(t, a)
		})
	}
}

func TestDoSpotActionsInBasicVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ExtendedLighting = false
	a, _ := newTestApp(t, cfg)

	before := *a.Options()
	for _, action := range []Action{ActionAngleUp, ActionPenumbraUp, ActionIntensityDown} {
		if a.Do(action) {
			t.Errorf("Do(%s) = true in basic variant", action)
		}
	}
	if *a.Options() != before {
		t.Errorf("options changed: %+v", *a.Options())
	}

	if a.Do(ActionNone) {
		t.Error("Do(none) = true")
	}
}

func TestNextPaletteIndex(t *testing.T) {
	if got := nextPaletteIndex(Palette[len(Palette)-1], 0); got != 0 {
		t.Errorf("wrap: got %d, want 0", got)
	}
	if got := nextPaletteIndex(0x123456, 2); got != 3 {
		t.Errorf("unknown color: got %d, want 3", got)
	}
}

type fakeSource struct {
	w, h   int32
	pixels []byte
}

func (f fakeSource) Size() (int32, int32) { return f.w, f.h }
func (f fakeSource) ReadPixels() []byte { return f.pixels }

func TestScreenshot(t *testing.T) {
	cfg := testConfig(t)
	a, _ := newTestApp(t, cfg)

	src := fakeSource{w: 4, h: 2, pixels: make([]byte, 4*2*4)}
	path, err := a.Screenshot(src)
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if filepath.Dir(path) != cfg.Debug.ScreenshotDir {
		t.Errorf("path %s not in %s", path, cfg.Debug.ScreenshotDir)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %s, want .png", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}

	if _, err := a.Screenshot(fakeSource{w: 4, h: 2, pixels: make([]byte, 3)}); err == nil {
		t.Error("expected error for short pixel data")
	}
}

func TestResize(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))

	a.Resize(800, 400)
	if a.Camera().Aspect != 2 {
		t.Errorf("aspect = %f, want 2", a.Camera().Aspect)
	}

	a.Resize(0, 400)
	if a.Camera().Aspect != 2 {
		t.Errorf("zero width changed aspect to %f", a.Camera().Aspect)
	}
}

func TestOrbit(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))
	cam := a.Camera()
	yaw, dist := cam.Yaw, cam.Distance

	a.Orbit(0, 0, 0, 0, 0)
	if cam.Yaw != yaw || cam.Distance != dist {
		t.Error("zero input moved the camera")
	}

	a.Orbit(10, 0, 0, 0, 1)
	if cam.Yaw == yaw {
		t.Error("drag did not rotate")
	}
	if cam.Distance >= dist {
		t.Errorf("wheel did not zoom in: %f -> %f", dist, cam.Distance)
	}
}

func TestFPS(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }
	a.fpsStart = clock

	for i := 0; i < 20; i++ {
		clock = clock.Add(50 * time.Millisecond)
		if err := a.Frame(); err != nil {
			t.Fatal(err)
		}
	}

	if got := a.Stats().FPS; math32.Abs(got-20) > 1e-3 {
		t.Errorf("FPS = %f, want 20", got)
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  string
	}{
		{"zero", Stats{}, "Scene Demo - 0 FPS, frame 0"},
		{"rounded", Stats{Frames: 1234, FPS: 59.6}, "Scene Demo - 60 FPS, frame 1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowTitle("Scene Demo", tt.stats); got != tt.want {
				t.Errorf("WindowTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClose(t *testing.T) {
	a, sink := newTestApp(t, testConfig(t))

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !sink.Closed {
		t.Error("sink not closed")
	}
	if err := a.Frame(); !errors.Is(err, scene.ErrStopped) {
		t.Errorf("Frame() after Close = %v, want ErrStopped", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWatchWithoutSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Debug.WatchConfig = true

	a, _ := newTestApp(t, cfg)
	if a.watcher != nil || a.updates != nil {
		t.Error("watcher started without a config file")
	}
}

func TestWatchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenedemo.yaml")
	if err := os.WriteFile(path, []byte("scene:\n  speed: 0.002\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Debug.WatchConfig = true
	cfg.Source = path

	a, _ := newTestApp(t, cfg)
	if a.watcher == nil || a.updates == nil {
		t.Fatal("watcher not started")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if a.watcher != nil {
		t.Error("watcher not released")
	}
}
