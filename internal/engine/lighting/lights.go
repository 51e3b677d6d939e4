// Package lighting packs the scene's lights into shader-ready values.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/internal/engine/scene"
)

// Uniforms holds every light value the mesh shader reads.
type Uniforms struct {
	Ambient [3]float32 // color * intensity

	DirEnabled   bool
	DirColor     [3]float32 // color * intensity
	DirDirection [3]float32 // towards the light

	SpotEnabled   bool
	SpotPosition  [3]float32
	SpotDirection [3]float32 // from the light towards its target
	SpotColor     [3]float32 // color * intensity
	SpotCosOuter  float32
	SpotCosInner  float32
	SpotDistance  float32 // 0 means no range limit
}

// FromGraph collects the lights of g.
func FromGraph(g *scene.Graph) Uniforms {
	var u Uniforms

	if g.Ambient != nil {
		u.Ambient = scaled(g.Ambient.Color, g.Ambient.Intensity)
	}

	if l := g.Directional; l != nil {
		u.DirEnabled = true
		u.DirColor = scaled(l.Color, l.Intensity)
		u.DirDirection = l.Direction().Array()
	}

	if l := g.Spot; l != nil {
		u.SpotEnabled = true
		u.SpotPosition = l.Position.Array()
		u.SpotDirection = l.Axis().Array()
		u.SpotColor = scaled(l.Color, l.Intensity)
		u.SpotCosOuter, u.SpotCosInner = SpotCone(l.Angle, l.Penumbra)
		u.SpotDistance = l.Distance
	}

	return u
}

// SpotCone returns the cosines of the outer cone edge and of the inner edge
// where the penumbra fade ends.
func SpotCone(angle, penumbra float32) (cosOuter, cosInner float32) {
	cosOuter = math32.Cos(angle)
	cosInner = math32.Cos(angle * (1 - penumbra))
	return cosOuter, cosInner
}

// SpotFactor returns the cone attenuation for a surface at cosTheta from
// the light axis. The shader computes the same value.
func SpotFactor(cosTheta, cosOuter, cosInner float32) float32 {
	if cosInner <= cosOuter {
		// Hard edge
		if cosTheta > cosOuter {
			return 1
		}
		return 0
	}
	return smoothstep(cosOuter, cosInner, cosTheta)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func scaled(c scene.Color, intensity float32) [3]float32 {
	rgb := c.RGB()
	return [3]float32{rgb[0] * intensity, rgb[1] * intensity, rgb[2] * intensity}
}
