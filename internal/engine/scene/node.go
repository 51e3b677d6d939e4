// Package scene holds the demo's scene graph, the live options record and
// the per-frame update loop that ties the two together.
package scene

import (
	"github.com/Faultbox/scenedemo/internal/engine/geometry"
	"github.com/Faultbox/scenedemo/pkg/math"
)

// Color is a 24-bit 0xRRGGBB color.
type Color uint32

// RGB returns the color as normalized components.
func (c Color) RGB() [3]float32 {
	return [3]float32{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}

// ColorFromRGB packs normalized components, clamping each to [0, 1].
func ColorFromRGB(rgb [3]float32) Color {
	var c Color
	for _, v := range rgb {
		b := uint32(clampf(v, 0, 1)*255 + 0.5)
		c = c<<8 | Color(b)
	}
	return c
}

// Transform is a position, an XYZ Euler rotation and a scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3 // radians
	Scale    math.Vec3
}

// identityTransform returns a transform with unit scale.
func identityTransform() Transform {
	return Transform{Scale: math.V3(1, 1, 1)}
}

// Matrix returns the model matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Material is a flat-colored lit surface.
type Material struct {
	Color       Color
	Wireframe   bool
	DoubleSided bool
}

// Mesh is a lit triangle mesh node.
type Mesh struct {
	Name     string
	Geometry *geometry.Mesh
	Material *Material
	Transform

	CastShadow    bool
	ReceiveShadow bool
}

// LineSet is an unlit line helper node (grid, axes).
type LineSet struct {
	Name  string
	Lines *geometry.Lines
	Transform
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     Color
	Intensity float32
}

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	Color     Color
	Intensity float32
	Position  math.Vec3
	Target    math.Vec3
}

// Direction returns the unit vector from the surface towards the light.
func (l *DirectionalLight) Direction() math.Vec3 {
	return l.Position.Sub(l.Target).Normalize()
}

// SpotLight is a cone light at Position aimed at Target.
type SpotLight struct {
	Color     Color
	Intensity float32
	Position  math.Vec3
	Target    math.Vec3

	Angle    float32 // cone half-angle, radians
	Penumbra float32 // 0 is a hard edge, 1 fades across the whole cone
	Distance float32 // 0 means unlimited range

	CastShadow bool
}

// Axis returns the unit vector from the light towards its target.
func (l *SpotLight) Axis() math.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}
