// Package main is the entry point for the scene demo with the ImGui
// options panel.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/app"
	"github.com/Faultbox/scenedemo/internal/config"
	"github.com/Faultbox/scenedemo/internal/engine/framebuffer"
	"github.com/Faultbox/scenedemo/internal/engine/renderer"
	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/engine/ui"
	"github.com/Faultbox/scenedemo/internal/logger"
)

const windowTitle = "Scene Demo"

func init() {
	// GL and the SDL window must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Scene Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("demo error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	bg := scene.Color(cfg.Graphics.ClearColor).RGB()

	host, err := ui.NewHost(ui.HostConfig{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Clear:      bg,
	})
	if err != nil {
		return err
	}

	// The scene is drawn offscreen and shown behind the panel
	fb, err := framebuffer.New(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return err
	}

	r, err := renderer.New(renderer.Config{
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: cfg.Graphics.ShadowResolution,
		ClearColor:       bg,
	}, fb)
	if err != nil {
		fb.Destroy()
		return err
	}

	demo, err := app.New(cfg, r)
	if err != nil {
		r.Close()
		fb.Destroy()
		return err
	}

	// GL objects go before the backend deletes the context
	host.OnClose(fb.Destroy)
	host.OnClose(func() {
		if err := demo.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	})

	panel := ui.NewPanel(demo.Bindings(), cfg.Debug.ShowStats)
	showStats := cfg.Debug.ShowStats

	var frameErr error
	titleTimer := time.Now()
	host.Run(func() {
		x, y, w, h := ui.Viewport()
		if w <= 0 || h <= 0 {
			return
		}

		pw, ph := ui.PixelSize(w, h)
		if fw, fh := fb.Size(); fw != pw || fh != ph {
			fb.Resize(pw, ph)
			demo.Resize(int(pw), int(ph))
		}

		in := ui.ReadMouse()
		demo.Orbit(in.DragX, in.DragY, in.PanX, in.PanY, in.Wheel)

		if err := demo.Frame(); err != nil {
			frameErr = err
			host.Stop()
			return
		}
		fb.Unbind()

		switch {
		case ui.IsKeyPressed(imgui.KeyEscape):
			host.Stop()
		case ui.IsKeyPressed(imgui.KeyF1):
			showStats = !showStats
			panel.SetShowStats(showStats)
		case ui.IsKeyPressed(imgui.KeyF12):
			if _, err := demo.Screenshot(fb); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		ui.DrawSceneTexture(x, y, w, h, fb.ColorTexture())
		panel.Draw(x, y, w, ui.Stats(demo.Stats()))

		if showStats && time.Since(titleTimer) >= time.Second {
			host.SetWindowTitle(app.WindowTitle(windowTitle, demo.Stats()))
			titleTimer = time.Now()
		}
	})

	return frameErr
}
