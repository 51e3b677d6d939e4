// Package camera provides the perspective orbit camera used by the demo.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Elevation above the XZ plane (radians)
	Yaw      float32 // Rotation around Y, 0 looks down -Z (radians)

	// Projection
	FOV    float32 // Vertical field of view (radians)
	Aspect float32
	Near   float32
	Far    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	PanSensitivity  float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera with the given perspective and
// default limits. fovDeg is the vertical field of view in degrees.
func NewOrbitCamera(fovDeg, aspect, near, far float32) *OrbitCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &OrbitCamera{
		Distance:        10,
		FOV:             fovDeg * math32.Pi / 180,
		Aspect:          aspect,
		Near:            near,
		Far:             far,
		MinDistance:     1,
		MaxDistance:     far * 0.9,
		MinPitch:        -math32.Pi/2 + 0.01,
		MaxPitch:        math32.Pi/2 - 0.01,
		DragSensitivity: 0.005,
		PanSensitivity:  0.0015,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return math.Vec3{
		X: c.Center.X + c.Distance*cp*sy,
		Y: c.Center.Y + c.Distance*sp,
		Z: c.Center.Z + c.Distance*cp*cy,
	}
}

// SetEye places the camera at eye while keeping the current center, and
// derives distance, pitch and yaw from it.
func (c *OrbitCamera) SetEye(eye math.Vec3) {
	off := eye.Sub(c.Center)
	d := off.Length()
	if d == 0 {
		return
	}
	c.Distance = d
	c.Pitch = math32.Asin(off.Y / d)
	c.Yaw = math32.Atan2(off.X, off.Z)
	c.clamp()
}

// LookAt moves the center to target and re-derives the orbit from eye.
func (c *OrbitCamera) LookAt(eye, target math.Vec3) {
	c.Center = target
	c.SetEye(eye)
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *OrbitCamera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// Projection returns the perspective projection matrix.
func (c *OrbitCamera) Projection() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.clamp()
}

// HandlePan moves the center in the camera's screen plane. The step scales
// with distance so the scene tracks the cursor at any zoom.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Center.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	step := c.Distance * c.PanSensitivity
	c.Center = c.Center.
		Add(right.Scale(-deltaX * step)).
		Add(up.Scale(deltaY * step))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
