package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/logger"
)

const panelWidth = 280

// Stats is the frame readout shown under the options.
type Stats struct {
	Frames uint64
	Phase  float64
	FPS    float32
}

// Panel is the "Options" window. Every edit goes through the bindings,
// so appearance changes land on the sphere material before the next
// frame is drawn.
type Panel struct {
	bindings  *scene.Bindings
	fields    []scene.Field
	showStats bool

	// Color picker scratch value, refreshed from the options every frame
	color [3]float32

	log *zap.Logger
}

// NewPanel creates the options panel for the bound scene variant.
func NewPanel(b *scene.Bindings, showStats bool) *Panel {
	return &Panel{
		bindings:  b,
		fields:    scene.Fields(b.Extended()),
		showStats: showStats,
		log:       logger.Named("ui"),
	}
}

// SetShowStats toggles the frame readout.
func (p *Panel) SetShowStats(v bool) {
	p.showStats = v
}

// Draw renders the panel at the top right of the given work area.
func (p *Panel) Draw(x, y, width float32, stats Stats) {
	imgui.SetNextWindowPos(imgui.NewVec2(x+width-panelWidth-10, y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, 0))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Options", nil, flags) {
		for _, f := range p.fields {
			p.drawField(f)
		}

		if p.showStats {
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
			imgui.Text(fmt.Sprintf("Phase:  %.3f", stats.Phase))
			imgui.Text(fmt.Sprintf("FPS:    %.0f", stats.FPS))
		}
	}
	imgui.End()
}

func (p *Panel) drawField(f scene.Field) {
	opts := p.bindings.Options()

	switch f.Kind {
	case scene.FieldToggle:
		on := opts.Wireframe
		if imgui.Checkbox(f.Label, &on) {
			p.report(f, p.bindings.SetBool(f.Name, on))
		}

	case scene.FieldColor:
		p.color = opts.SphereColor.RGB()
		if imgui.ColorEdit3(f.Label, &p.color) {
			p.report(f, p.bindings.SetColor(f.Name, scene.ColorFromRGB(p.color)))
		}

	case scene.FieldSlider:
		v, err := p.bindings.Value(f.Name)
		if err != nil {
			p.report(f, err)
			return
		}
		if imgui.SliderFloatV(f.Label, &v, f.Min, f.Max, SliderFormat(f), imgui.SliderFlagsNone) {
			p.report(f, p.bindings.SetFloat(f.Name, v))
		}
	}
}

func (p *Panel) report(f scene.Field, err error) {
	if err != nil {
		p.log.Warn("option not applied", zap.String("field", f.Name), zap.Error(err))
	}
}

// SliderFormat picks a display precision fine enough to show one slider
// step of the field's range.
func SliderFormat(f scene.Field) string {
	switch span := f.Max - f.Min; {
	case span <= 0.01:
		return "%.4f"
	case span <= 1:
		return "%.2f"
	default:
		return "%.1f"
	}
}
