package scene

// Widget ranges for the live options.
const (
	MinBobSpeed = 0
	MaxBobSpeed = 0.01

	MinSpotValue = 0
	MaxSpotValue = 1
)

// Options is the set of live-tunable values shared by the bindings and the
// frame loop. One instance exists per scene and is passed around by pointer.
type Options struct {
	Wireframe   bool
	SphereColor Color
	BobSpeed    float32 // phase added per frame

	// Extended lighting only.
	SpotAngle     float32 // cone half-angle, radians
	SpotPenumbra  float32
	SpotIntensity float32
}

// DefaultOptions returns the values the demo starts with.
func DefaultOptions() Options {
	return Options{
		Wireframe:     false,
		SphereColor:   0x0000FF,
		BobSpeed:      0.01,
		SpotAngle:     0.2,
		SpotPenumbra:  0,
		SpotIntensity: 1,
	}
}

// Snapshot returns a copy of the current values.
func (o *Options) Snapshot() Options {
	return *o
}

// Clamp forces every field into the range its widget allows.
func (o *Options) Clamp() {
	o.SphereColor &= 0xFFFFFF
	o.BobSpeed = clampf(o.BobSpeed, MinBobSpeed, MaxBobSpeed)
	o.SpotAngle = clampf(o.SpotAngle, MinSpotValue, MaxSpotValue)
	o.SpotPenumbra = clampf(o.SpotPenumbra, MinSpotValue, MaxSpotValue)
	o.SpotIntensity = clampf(o.SpotIntensity, MinSpotValue, MaxSpotValue)
}

func clampf(v, lo, hi float32) float32 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
