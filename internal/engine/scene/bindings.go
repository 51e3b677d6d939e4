package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a binding is addressed by a name that
// has no field.
var ErrUnknownField = errors.New("unknown option field")

// FieldKind selects the widget a field is edited with.
type FieldKind int

const (
	FieldToggle FieldKind = iota
	FieldColor
	FieldSlider
)

func (k FieldKind) String() string {
	switch k {
	case FieldToggle:
		return "toggle"
	case FieldColor:
		return "color"
	case FieldSlider:
		return "slider"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field names, as used by SetBool, SetColor and SetFloat.
const (
	FieldWireframe   = "wireframe"
	FieldSphereColor = "sphereColor"
	FieldSpeed       = "speed"
	FieldAngle       = "angle"
	FieldPenumbra    = "penumbra"
	FieldIntensity   = "intensity"
)

// Field describes one editable option.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Min, Max float32 // sliders only
}

// Fields returns the option descriptors in panel order. The spot sliders
// are included only for the extended variant.
func Fields(extended bool) []Field {
	fields := []Field{
		{Name: FieldWireframe, Label: "Wireframe", Kind: FieldToggle},
		{Name: FieldSphereColor, Label: "Sphere color", Kind: FieldColor},
		{Name: FieldSpeed, Label: "Speed", Kind: FieldSlider, Min: MinBobSpeed, Max: MaxBobSpeed},
	}
	if extended {
		fields = append(fields,
			Field{Name: FieldAngle, Label: "Angle", Kind: FieldSlider, Min: MinSpotValue, Max: MaxSpotValue},
			Field{Name: FieldPenumbra, Label: "Penumbra", Kind: FieldSlider, Min: MinSpotValue, Max: MaxSpotValue},
			Field{Name: FieldIntensity, Label: "Intensity", Kind: FieldSlider, Min: MinSpotValue, Max: MaxSpotValue},
		)
	}
	return fields
}

// Bindings is the single writer of the options record. Appearance changes
// (wireframe, color) are pushed onto the sphere material at once; the
// animated values are only stored and picked up by the next frame.
type Bindings struct {
	opts    *Options
	handles *Handles
}

// NewBindings binds opts to the sphere material in h.
func NewBindings(opts *Options, h *Handles) *Bindings {
	return &Bindings{opts: opts, handles: h}
}

// Options returns the bound record.
func (b *Bindings) Options() *Options {
	return b.opts
}

// Extended reports whether the spot fields apply.
func (b *Bindings) Extended() bool {
	return b.handles.Spot != nil
}

// Value returns a field's current value as a float: 0/1 for toggles and
// the packed color for the color field.
func (b *Bindings) Value(name string) (float32, error) {
	switch name {
	case FieldWireframe:
		if b.opts.Wireframe {
			return 1, nil
		}
		return 0, nil
	case FieldSphereColor:
		return float32(b.opts.SphereColor), nil
	case FieldSpeed:
		return b.opts.BobSpeed, nil
	case FieldAngle:
		return b.opts.SpotAngle, nil
	case FieldPenumbra:
		return b.opts.SpotPenumbra, nil
	case FieldIntensity:
		return b.opts.SpotIntensity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// SetWireframe stores the toggle and applies it to the sphere material.
func (b *Bindings) SetWireframe(v bool) {
	b.opts.Wireframe = v
	b.handles.SphereMaterial.Wireframe = v
}

// SetSphereColor stores the color and applies it to the sphere material.
func (b *Bindings) SetSphereColor(c Color) {
	c &= 0xFFFFFF
	b.opts.SphereColor = c
	b.handles.SphereMaterial.Color = c
}

// SetBobSpeed stores the bob speed, clamped to its slider range.
func (b *Bindings) SetBobSpeed(v float32) {
	b.opts.BobSpeed = clampf(v, MinBobSpeed, MaxBobSpeed)
}

// SetSpotAngle stores the cone angle, clamped to its slider range.
func (b *Bindings) SetSpotAngle(v float32) {
	b.opts.SpotAngle = clampf(v, MinSpotValue, MaxSpotValue)
}

// SetSpotPenumbra stores the penumbra, clamped to its slider range.
func (b *Bindings) SetSpotPenumbra(v float32) {
	b.opts.SpotPenumbra = clampf(v, MinSpotValue, MaxSpotValue)
}

// SetSpotIntensity stores the intensity, clamped to its slider range.
func (b *Bindings) SetSpotIntensity(v float32) {
	b.opts.SpotIntensity = clampf(v, MinSpotValue, MaxSpotValue)
}

// SetBool sets a toggle field by name.
func (b *Bindings) SetBool(name string, v bool) error {
	if name != FieldWireframe {
		return fmt.Errorf("%w: %q is not a toggle", ErrUnknownField, name)
	}
	b.SetWireframe(v)
	return nil
}

// SetColor sets a color field by name.
func (b *Bindings) SetColor(name string, c Color) error {
	if name != FieldSphereColor {
		return fmt.Errorf("%w: %q is not a color", ErrUnknownField, name)
	}
	b.SetSphereColor(c)
	return nil
}

// SetFloat sets a slider field by name.
func (b *Bindings) SetFloat(name string, v float32) error {
	switch name {
	case FieldSpeed:
		b.SetBobSpeed(v)
	case FieldAngle:
		b.SetSpotAngle(v)
	case FieldPenumbra:
		b.SetSpotPenumbra(v)
	case FieldIntensity:
		b.SetSpotIntensity(v)
	default:
		return fmt.Errorf("%w: %q is not a slider", ErrUnknownField, name)
	}
	return nil
}

// Apply writes a whole record through the setters.
func (b *Bindings) Apply(o Options) {
	b.SetWireframe(o.Wireframe)
	b.SetSphereColor(o.SphereColor)
	b.SetBobSpeed(o.BobSpeed)
	b.SetSpotAngle(o.SpotAngle)
	b.SetSpotPenumbra(o.SpotPenumbra)
	b.SetSpotIntensity(o.SpotIntensity)
}
