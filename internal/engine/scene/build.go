package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/internal/engine/camera"
	"github.com/Faultbox/scenedemo/internal/engine/geometry"
	"github.com/Faultbox/scenedemo/pkg/math"
)

// BuildConfig describes the viewport and which scene variant to build.
type BuildConfig struct {
	Width  int
	Height int

	// ExtendedLighting swaps the directional light for a shadow-casting
	// spotlight with a cone helper and enables the spot sliders.
	ExtendedLighting bool

	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Eye    math.Vec3
	Target math.Vec3
}

// DefaultBuildConfig returns the stock camera for a width x height viewport.
func DefaultBuildConfig(width, height int) BuildConfig {
	return BuildConfig{
		Width:            width,
		Height:           height,
		ExtendedLighting: true,
		FOV:              45,
		Near:             0.1,
		Far:              1000,
		Eye:              math.V3(-10, 30, 30),
	}
}

// Graph is the complete scene. Its topology is fixed once Build returns.
type Graph struct {
	Camera *camera.OrbitCamera

	Box    *Mesh
	Plane  *Mesh
	Sphere *Mesh
	Meshes []*Mesh // draw order

	Grid  *LineSet
	Axes  *LineSet
	Lines []*LineSet

	Ambient     *AmbientLight
	Directional *DirectionalLight // basic variant
	Spot        *SpotLight        // extended variant
	SpotHelper  *SpotLightHelper  // extended variant
}

// Extended reports whether the graph was built with the spotlight.
func (g *Graph) Extended() bool {
	return g.Spot != nil
}

// Handles are the nodes the frame loop mutates. Spot and SpotHelper are
// nil in the basic variant.
type Handles struct {
	Box            *Mesh
	Sphere         *Mesh
	SphereMaterial *Material
	Spot           *SpotLight
	SpotHelper     *SpotLightHelper
	Camera         *camera.OrbitCamera
}

// Build constructs the demo scene from the current options. opts must not
// be nil.
func Build(opts *Options, cfg BuildConfig) (*Graph, *Handles) {
	o := opts.Snapshot()

	aspect := float32(1)
	if cfg.Height > 0 {
		aspect = float32(cfg.Width) / float32(cfg.Height)
	}
	cam := camera.NewOrbitCamera(cfg.FOV, aspect, cfg.Near, cfg.Far)
	cam.LookAt(cfg.Eye, cfg.Target)

	g := &Graph{Camera: cam}

	g.Axes = &LineSet{Name: "axes", Lines: geometry.Axes(5), Transform: identityTransform()}

	g.Box = &Mesh{
		Name:      "box",
		Geometry:  geometry.Box(1, 1, 1),
		Material:  &Material{Color: 0x00FF00},
		Transform: identityTransform(),
	}

	g.Plane = &Mesh{
		Name:          "plane",
		Geometry:      geometry.Plane(30, 30),
		Material:      &Material{Color: 0xFFFFFF, DoubleSided: true},
		Transform:     identityTransform(),
		ReceiveShadow: true,
	}
	g.Plane.Rotation.X = -0.5 * math32.Pi

	g.Grid = &LineSet{
		Name:      "grid",
		Lines:     geometry.Grid(30, 10, Color(0x444444).RGB(), Color(0x888888).RGB()),
		Transform: identityTransform(),
	}
	g.Grid.Rotation.X = 2 * math32.Pi

	g.Sphere = &Mesh{
		Name:     "sphere",
		Geometry: geometry.Sphere(4, 20, 20),
		Material: &Material{
			Color:     o.SphereColor & 0xFFFFFF,
			Wireframe: o.Wireframe,
		},
		Transform:  identityTransform(),
		CastShadow: true,
	}
	g.Sphere.Position = math.V3(-10, 10, 0)

	g.Ambient = &AmbientLight{Color: 0x333333, Intensity: 1}

	if cfg.ExtendedLighting {
		g.Spot = &SpotLight{
			Color:      0xFFFFFF,
			Intensity:  o.SpotIntensity,
			Position:   math.V3(-100, 100, 0),
			Angle:      o.SpotAngle,
			Penumbra:   o.SpotPenumbra,
			CastShadow: true,
		}
		g.SpotHelper = NewSpotLightHelper(g.Spot)
	} else {
		g.Directional = &DirectionalLight{
			Color:     0xFFFFFF,
			Intensity: 0.8,
			Position:  math.V3(-30, 50, 0),
		}
	}

	g.Meshes = []*Mesh{g.Box, g.Plane, g.Sphere}
	g.Lines = []*LineSet{g.Axes, g.Grid}

	h := &Handles{
		Box:            g.Box,
		Sphere:         g.Sphere,
		SphereMaterial: g.Sphere.Material,
		Spot:           g.Spot,
		SpotHelper:     g.SpotHelper,
		Camera:         cam,
	}
	return g, h
}
