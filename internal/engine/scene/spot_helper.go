package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/pkg/math"
)

const (
	helperRimSegments = 32
	helperMaxLength   = 1000 // cone length for lights with unlimited range
)

// SpotSource is the light state a helper was last computed from.
type SpotSource struct {
	Position  math.Vec3
	Target    math.Vec3
	Color     Color
	Angle     float32
	Penumbra  float32
	Intensity float32
}

// SpotLightHelper draws a spotlight's cone as world-space line segments:
// the axis, four edges from the apex to the rim and the rim circle.
type SpotLightHelper struct {
	light *SpotLight

	source  SpotSource
	length  float32
	radius  float32
	lines   []float32
	version uint64
}

// NewSpotLightHelper creates a helper for light and computes it once.
func NewSpotLightHelper(light *SpotLight) *SpotLightHelper {
	h := &SpotLightHelper{
		light: light,
		lines: make([]float32, 0, (5+helperRimSegments)*2*3),
	}
	h.Update()
	return h
}

// Light returns the light this helper follows.
func (h *SpotLightHelper) Light() *SpotLight {
	return h.light
}

// Update recomputes the cone from the light's current state.
func (h *SpotLightHelper) Update() {
	l := h.light
	h.source = SpotSource{
		Position:  l.Position,
		Target:    l.Target,
		Color:     l.Color,
		Angle:     l.Angle,
		Penumbra:  l.Penumbra,
		Intensity: l.Intensity,
	}

	h.length = l.Distance
	if h.length == 0 {
		h.length = helperMaxLength
	}
	h.radius = h.length * math32.Tan(l.Angle)

	axis := l.Axis()
	u := axis.Perpendicular()
	v := u.Cross(axis)

	// point maps cone space (x, y on the unit rim, z along the axis) to world space
	point := func(x, y, z float32) math.Vec3 {
		return l.Position.
			Add(u.Scale(x * h.radius)).
			Add(v.Scale(y * h.radius)).
			Add(axis.Scale(z * h.length))
	}

	h.lines = h.lines[:0]
	apex := l.Position
	for _, p := range [5][2]float32{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		h.appendSegment(apex, point(p[0], p[1], 1))
	}
	for i := 0; i < helperRimSegments; i++ {
		a0 := float32(i) / helperRimSegments * 2 * math32.Pi
		a1 := float32(i+1) / helperRimSegments * 2 * math32.Pi
		h.appendSegment(
			point(math32.Cos(a0), math32.Sin(a0), 1),
			point(math32.Cos(a1), math32.Sin(a1), 1),
		)
	}
	h.version++
}

func (h *SpotLightHelper) appendSegment(a, b math.Vec3) {
	h.lines = append(h.lines, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
}

// Source returns the light state of the last Update.
func (h *SpotLightHelper) Source() SpotSource {
	return h.source
}

// ConeLength returns the distance from the apex to the rim plane.
func (h *SpotLightHelper) ConeLength() float32 {
	return h.length
}

// ConeRadius returns the rim radius.
func (h *SpotLightHelper) ConeRadius() float32 {
	return h.radius
}

// Lines returns segment endpoints as flat xyz triples, two points per segment.
// The slice is reused by the next Update.
func (h *SpotLightHelper) Lines() []float32 {
	return h.lines
}

// Version increases on every Update. Renderers use it to skip re-uploads.
func (h *SpotLightHelper) Version() uint64 {
	return h.version
}
