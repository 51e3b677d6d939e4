package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/engine/scene"
)

// Action is a discrete option edit, bound to a key by the hosts.
type Action int

const (
	ActionNone Action = iota
	ActionToggleWireframe
	ActionNextColor
	ActionSpeedUp
	ActionSpeedDown
	ActionAngleUp
	ActionAngleDown
	ActionPenumbraUp
	ActionPenumbraDown
	ActionIntensityUp
	ActionIntensityDown
)

// Step sizes for the keyboard actions.
const (
	SpeedStep = 0.001
	SpotStep  = 0.05
)

// Palette is the cycle of sphere colors for ActionNextColor.
var Palette = []scene.Color{
	0x0000FF,
	0xFF0000,
	0x00FF00,
	0xFFFF00,
	0xFF00FF,
	0x00FFFF,
	0xFFFFFF,
}

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionToggleWireframe: "toggle-wireframe",
	ActionNextColor:       "next-color",
	ActionSpeedUp:         "speed-up",
	ActionSpeedDown:       "speed-down",
	ActionAngleUp:         "angle-up",
	ActionAngleDown:       "angle-down",
	ActionPenumbraUp:      "penumbra-up",
	ActionPenumbraDown:    "penumbra-down",
	ActionIntensityUp:     "intensity-up",
	ActionIntensityDown:   "intensity-down",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// spotAction reports whether a only applies to the extended variant.
func (a Action) spotAction() bool {
	return a >= ActionAngleUp && a <= ActionIntensityDown
}

// Do applies an action through the bindings. It reports false when the
// action does not apply to the running scene.
func (a *App) Do(action Action) bool {
	if action.spotAction() && !a.bindings.Extended() {
		return false
	}

	b := a.bindings
	o := a.opts
	switch action {
	case ActionToggleWireframe:
		b.SetWireframe(!o.Wireframe)
	case ActionNextColor:
		a.palette = nextPaletteIndex(o.SphereColor, a.palette)
		b.SetSphereColor(Palette[a.palette])
	case ActionSpeedUp:
		b.SetBobSpeed(o.BobSpeed + SpeedStep)
	case ActionSpeedDown:
		b.SetBobSpeed(o.BobSpeed - SpeedStep)
	case ActionAngleUp:
		b.SetSpotAngle(o.SpotAngle + SpotStep)
	case ActionAngleDown:
		b.SetSpotAngle(o.SpotAngle - SpotStep)
	case ActionPenumbraUp:
		b.SetSpotPenumbra(o.SpotPenumbra + SpotStep)
	case ActionPenumbraDown:
		b.SetSpotPenumbra(o.SpotPenumbra - SpotStep)
	case ActionIntensityUp:
		b.SetSpotIntensity(o.SpotIntensity + SpotStep)
	case ActionIntensityDown:
		b.SetSpotIntensity(o.SpotIntensity - SpotStep)
	default:
		return false
	}

	a.log.Debug("action", zap.Stringer("action", action), zap.Any("options", *o))
	return true
}

// nextPaletteIndex returns the entry after the current color. A color that
// is not in the palette (set from the panel or config) continues from the
// last entry used.
func nextPaletteIndex(current scene.Color, last int) int {
	for i, c := range Palette {
		if c == current {
			return (i + 1) % len(Palette)
		}
	}
	return (last + 1) % len(Palette)
}
