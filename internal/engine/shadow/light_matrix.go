package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/pkg/math"
)

// Spot shadow camera clip planes. The demo light sits ~140 units from the
// origin, so the far plane leaves room for the whole ground plane.
const (
	SpotNear = 0.5
	SpotFar  = 500
)

// minShadowFOV keeps the projection usable when the cone closes to zero.
const minShadowFOV = 0.01

// SpotLightMatrix returns the view-projection of a perspective shadow
// camera at position looking at target, wide enough to cover a cone with
// the given half-angle. far <= 0 uses SpotFar.
func SpotLightMatrix(position, target math.Vec3, angle, far float32) math.Mat4 {
	if far <= 0 {
		far = SpotFar
	}

	fov := 2 * angle
	if fov < minShadowFOV {
		fov = minShadowFOV
	}
	if fov > math32.Pi-minShadowFOV {
		fov = math32.Pi - minShadowFOV
	}

	up := math.Vec3{Y: 1}
	if dir := target.Sub(position).Normalize(); math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(position, target, up)
	proj := math.Perspective(fov, 1, SpotNear, far)
	return proj.Mul(view)
}
