package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scenedemo/internal/app"
)

// keyActions maps keys to option edits.
var keyActions = map[sdl.Scancode]app.Action{
	sdl.SCANCODE_W:            app.ActionToggleWireframe,
	sdl.SCANCODE_C:            app.ActionNextColor,
	sdl.SCANCODE_RIGHTBRACKET: app.ActionSpeedUp,
	sdl.SCANCODE_LEFTBRACKET:  app.ActionSpeedDown,
	sdl.SCANCODE_A:            app.ActionAngleUp,
	sdl.SCANCODE_Z:            app.ActionAngleDown,
	sdl.SCANCODE_P:            app.ActionPenumbraUp,
	sdl.SCANCODE_L:            app.ActionPenumbraDown,
	sdl.SCANCODE_I:            app.ActionIntensityUp,
	sdl.SCANCODE_K:            app.ActionIntensityDown,
}

const keyHelp = "W wireframe  C color  [ ] speed  A/Z angle  P/L penumbra  I/K intensity  F12 screenshot  Esc quit"
