package scene

import (
	gomath "math"

	"github.com/chewxy/math32"
)

const (
	// BoxSpin is the rotation added to the box about X and Y every frame.
	BoxSpin = 0.01

	// BobHeight is the peak height of the sphere's bounce.
	BobHeight = 10
)

// Step advances the animation by one frame and returns the new phase.
//
// It spins the box, adds the bob speed to the phase, places the sphere at
// the height for that phase and, when a spotlight is present, copies the
// spot options onto it and refreshes the helper. Wireframe and color are
// left alone; Bindings apply those when they change.
func Step(phase float64, opts Options, h *Handles) float64 {
	h.Box.Rotation.X = wrapAngle(h.Box.Rotation.X + BoxSpin)
	h.Box.Rotation.Y = wrapAngle(h.Box.Rotation.Y + BoxSpin)

	phase += float64(opts.BobSpeed)
	h.Sphere.Position.Y = float32(SphereHeight(phase))

	if h.Spot != nil {
		h.Spot.Angle = opts.SpotAngle
		h.Spot.Penumbra = opts.SpotPenumbra
		h.Spot.Intensity = opts.SpotIntensity
		if h.SpotHelper != nil {
			h.SpotHelper.Update()
		}
	}
	return phase
}

// SphereHeight returns the sphere's height for a phase, in [0, BobHeight].
func SphereHeight(phase float64) float64 {
	return BobHeight * gomath.Abs(gomath.Sin(phase))
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}
