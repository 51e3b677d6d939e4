// Package main runs the scene demo in a plain SDL2 window. Options are
// edited from the keyboard instead of a panel.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/app"
	"github.com/Faultbox/scenedemo/internal/config"
	"github.com/Faultbox/scenedemo/internal/engine/framebuffer"
	"github.com/Faultbox/scenedemo/internal/engine/input"
	"github.com/Faultbox/scenedemo/internal/engine/renderer"
	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/engine/window"
	"github.com/Faultbox/scenedemo/internal/logger"
)

const windowTitle = "Scene Demo"

func main() {
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

	logger.Info("=== Scene Demo (SDL) ===")
	logger.Info(keyHelp)

	if err := run(cfg); err != nil {
		logger.Error("demo error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	dw, dh := win.DrawableSize()
	screen := &framebuffer.Screen{}
	screen.Resize(dw, dh)

	r, err := renderer.New(renderer.Config{
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: cfg.Graphics.ShadowResolution,
		ClearColor:       scene.Color(cfg.Graphics.ClearColor).RGB(),
	}, screen)
	if err != nil {
		return err
	}

	demo, err := app.New(cfg, r)
	if err != nil {
		r.Close()
		return err
	}
	// Runs before win.Close so GL objects go while the context is alive
	defer func() {
		if err := demo.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()
	demo.Resize(int(dw), int(dh))

	in := input.New()
	titleTimer := time.Now()

	for {
		if in.Update() {
			return nil
		}

		quit, shot := handleEvents(in, demo, win, screen)
		if quit {
			return nil
		}

		if err := demo.Frame(); err != nil {
			return err
		}

		// Read the back buffer before the swap invalidates it
		if shot {
			if _, err := demo.Screenshot(screen); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}
		win.SwapBuffers()

		if cfg.Debug.ShowStats && time.Since(titleTimer) >= time.Second {
			win.SetTitle(app.WindowTitle(windowTitle, demo.Stats()))
			titleTimer = time.Now()
		}
	}
}

// handleEvents applies this frame's input. It reports whether to quit and
// whether a screenshot was requested.
func handleEvents(in *input.Input, demo *app.App, win *window.Window, screen *framebuffer.Screen) (quit, shot bool) {
	for _, e := range in.Events() {
		switch e.Type {
		case input.EventWindowResize:
			dw, dh := win.DrawableSize()
			screen.Resize(dw, dh)
			demo.Resize(int(dw), int(dh))

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				return true, shot
			case sdl.SCANCODE_F12:
				if !e.Repeat {
					shot = true
				}
			default:
				if action, ok := keyActions[e.Key]; ok {
					demo.Do(action)
				}
			}

		case input.EventMouseMove:
			switch {
			case in.IsButtonDown(sdl.BUTTON_LEFT):
				demo.Orbit(e.DeltaX, e.DeltaY, 0, 0, 0)
			case in.IsButtonDown(sdl.BUTTON_RIGHT):
				demo.Orbit(0, 0, e.DeltaX, e.DeltaY, 0)
			}

		case input.EventMouseWheel:
			demo.Orbit(0, 0, 0, 0, e.DeltaY)
		}
	}
	return false, shot
}
