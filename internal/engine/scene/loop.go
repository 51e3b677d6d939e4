package scene

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/engine/camera"
	"github.com/Faultbox/scenedemo/internal/logger"
)

// ErrStopped is returned by Frame after Stop.
var ErrStopped = errors.New("frame loop stopped")

// RenderSink draws a graph through a camera. A sink that also implements
// io.Closer is closed when the loop stops.
type RenderSink interface {
	Render(g *Graph, cam *camera.OrbitCamera) error
}

// Loop runs Step once per host frame and then issues one render.
type Loop struct {
	graph   *Graph
	handles *Handles
	opts    *Options
	sink    RenderSink

	phase   float64
	frames  uint64
	stopped bool

	log *zap.Logger
}

// NewLoop creates a loop over an already built graph. The options pointer
// is shared with whatever writes the options.
func NewLoop(g *Graph, h *Handles, opts *Options, sink RenderSink) *Loop {
	if sink == nil {
		sink = NopSink{}
	}
	return &Loop{
		graph:   g,
		handles: h,
		opts:    opts,
		sink:    sink,
		log:     logger.Named("scene"),
	}
}

// Frame advances the scene one step and renders it.
func (l *Loop) Frame() error {
	if l.stopped {
		return ErrStopped
	}

	l.phase = Step(l.phase, l.opts.Snapshot(), l.handles)
	l.frames++

	if err := l.sink.Render(l.graph, l.handles.Camera); err != nil {
		return fmt.Errorf("rendering frame %d: %w", l.frames, err)
	}
	return nil
}

// Stop ends the loop and releases the sink. Further calls do nothing.
func (l *Loop) Stop() error {
	if l.stopped {
		return nil
	}
	l.stopped = true
	l.log.Debug("frame loop stopped",
		zap.Uint64("frames", l.frames),
		zap.Float64("phase", l.phase),
	)
	if c, ok := l.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing render sink: %w", err)
		}
	}
	return nil
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stopped
}

// Phase returns the accumulated animation phase.
func (l *Loop) Phase() float64 {
	return l.phase
}

// Frames returns the number of completed steps.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// NopSink discards renders.
type NopSink struct{}

// Render implements RenderSink.
func (NopSink) Render(*Graph, *camera.OrbitCamera) error {
	return nil
}

// FrameRecord is the mutable state a RecordingSink saw on one render.
type FrameRecord struct {
	BoxRotation   [2]float32
	SphereY       float32
	Wireframe     bool
	SphereColor   Color
	Spot          *SpotSource // light state at render time
	Helper        *SpotSource // what the helper was computed from
	HelperRadius  float32
	HelperVersion uint64
}

// RecordingSink keeps a record of every render. Used by tests and the
// headless runner.
type RecordingSink struct {
	Frames []FrameRecord
	Err    error // returned from every Render when set
	Closed bool
}

// Render implements RenderSink.
func (s *RecordingSink) Render(g *Graph, _ *camera.OrbitCamera) error {
	if s.Err != nil {
		return s.Err
	}
	rec := FrameRecord{
		BoxRotation: [2]float32{g.Box.Rotation.X, g.Box.Rotation.Y},
		SphereY:     g.Sphere.Position.Y,
		Wireframe:   g.Sphere.Material.Wireframe,
		SphereColor: g.Sphere.Material.Color,
	}
	if g.Spot != nil {
		rec.Spot = &SpotSource{
			Position:  g.Spot.Position,
			Target:    g.Spot.Target,
			Color:     g.Spot.Color,
			Angle:     g.Spot.Angle,
			Penumbra:  g.Spot.Penumbra,
			Intensity: g.Spot.Intensity,
		}
	}
	if g.SpotHelper != nil {
		src := g.SpotHelper.Source()
		rec.Helper = &src
		rec.HelperRadius = g.SpotHelper.ConeRadius()
		rec.HelperVersion = g.SpotHelper.Version()
	}
	s.Frames = append(s.Frames, rec)
	return nil
}

// Close implements io.Closer.
func (s *RecordingSink) Close() error {
	s.Closed = true
	return nil
}
