package lighting

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenedemo/internal/engine/scene"
)

func TestSpotCone(t *testing.T) {
	outer, inner := SpotCone(0.2, 0)
	if outer != inner {
		t.Errorf("zero penumbra: outer %f != inner %f", outer, inner)
	}

	outer, inner = SpotCone(0.5, 1)
	if inner != 1 {
		t.Errorf("full penumbra inner = %f, want cos(0) = 1", inner)
	}
	if math32.Abs(outer-math32.Cos(0.5)) > 1e-6 {
		t.Errorf("outer = %f, want cos(0.5)", outer)
	}
}

func TestSpotFactor(t *testing.T) {
	outer, inner := SpotCone(0.4, 0.5)

	tests := []struct {
		name     string
		angle    float32
		min, max float32
	}{
		{"on axis", 0, 1, 1},
		{"inside inner cone", 0.1, 1, 1},
		{"in penumbra", 0.3, 0.01, 0.99},
		{"outside", 0.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := SpotFactor(math32.Cos(tt.angle), outer, inner)
			if f < tt.min || f > tt.max {
				t.Errorf("SpotFactor at %f rad = %f, want [%f, %f]", tt.angle, f, tt.min, tt.max)
			}
		})
	}

	// Hard edge
	outer, inner = SpotCone(0.4, 0)
	if f := SpotFactor(math32.Cos(0.39), outer, inner); f != 1 {
		t.Errorf("hard edge inside = %f, want 1", f)
	}
	if f := SpotFactor(math32.Cos(0.41), outer, inner); f != 0 {
		t.Errorf("hard edge outside = %f, want 0", f)
	}
}

func TestFromGraph(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.SpotIntensity = 0.5

	g, _ := scene.Build(&opts, scene.DefaultBuildConfig(800, 600))
	u := FromGraph(g)

	if u.DirEnabled {
		t.Error("extended graph has a directional light")
	}
	if !u.SpotEnabled {
		t.Fatal("spot not enabled")
	}
	if u.SpotColor != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("spot color = %v, want half white", u.SpotColor)
	}
	want := float32(0x33) / 255
	if u.Ambient != [3]float32{want, want, want} {
		t.Errorf("ambient = %v", u.Ambient)
	}
	// Spot sits up and to the -X side, aiming at the origin
	if u.SpotDirection[0] <= 0 || u.SpotDirection[1] >= 0 {
		t.Errorf("spot direction = %v", u.SpotDirection)
	}

	cfg := scene.DefaultBuildConfig(800, 600)
	cfg.ExtendedLighting = false
	g, _ = scene.Build(&opts, cfg)
	u = FromGraph(g)
	if !u.DirEnabled || u.SpotEnabled {
		t.Errorf("basic graph: dir %v spot %v", u.DirEnabled, u.SpotEnabled)
	}
	if u.DirColor[0] != 0.8 {
		t.Errorf("dir color = %v, want 0.8 white", u.DirColor)
	}
}
