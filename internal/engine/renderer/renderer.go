// Package renderer draws the scene graph with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/engine/camera"
	"github.com/Faultbox/scenedemo/internal/engine/framebuffer"
	"github.com/Faultbox/scenedemo/internal/engine/geometry"
	"github.com/Faultbox/scenedemo/internal/engine/lighting"
	"github.com/Faultbox/scenedemo/internal/engine/renderer/shaders"
	"github.com/Faultbox/scenedemo/internal/engine/scene"
	"github.com/Faultbox/scenedemo/internal/engine/shader"
	"github.com/Faultbox/scenedemo/internal/engine/shadow"
	"github.com/Faultbox/scenedemo/internal/logger"
	"github.com/Faultbox/scenedemo/pkg/math"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("renderer closed")

// Config holds renderer configuration.
type Config struct {
	Shadows          bool
	ShadowResolution int32
	ClearColor       [3]float32
}

// gpuMesh is an uploaded triangle mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// gpuLines is an uploaded line list.
type gpuLines struct {
	vao, vbo    uint32
	vertexCount int32
}

// Renderer draws a scene.Graph into a render target. Geometry is uploaded
// the first time a node is seen; the graph's topology never changes.
type Renderer struct {
	config Config
	target framebuffer.Target

	meshProgram  *shader.Program
	lineProgram  *shader.Program
	depthProgram *shader.Program

	meshes map[*geometry.Mesh]*gpuMesh
	lines  map[*geometry.Lines]*gpuLines

	helper        *gpuLines
	helperVersion uint64

	shadowMap *shadow.Map

	closed bool
	log    *zap.Logger
}

// New creates a renderer drawing into target.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, target framebuffer.Target) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		target: target,
		meshes: make(map[*geometry.Mesh]*gpuMesh),
		lines:  make(map[*geometry.Lines]*gpuLines),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.meshProgram, err = shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.lineProgram, err = shader.New("line", shaders.LineVertexShader, shaders.LineFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.depthProgram, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	if cfg.Shadows {
		r.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			// The scene is still usable without shadows
			r.log.Warn("shadows disabled", zap.Error(err))
			r.shadowMap = nil
		}
	}

	r.log.Debug("renderer created",
		zap.Bool("shadows", r.shadowMap != nil),
		zap.Int32("shadow_resolution", cfg.ShadowResolution),
	)
	return r, nil
}

// Render draws g through cam: a depth pass from the spotlight when it casts
// shadows, then the lit meshes, then the helper lines.
func (r *Renderer) Render(g *scene.Graph, cam *camera.OrbitCamera) error {
	if r.closed {
		return ErrClosed
	}

	lightViewProj := math.Identity()
	castShadows := r.shadowMap.IsValid() && g.Spot != nil && g.Spot.CastShadow
	if castShadows {
		lightViewProj = shadow.SpotLightMatrix(g.Spot.Position, g.Spot.Target, g.Spot.Angle, 0)
		r.shadowPass(g, lightViewProj)
	}

	r.target.Bind()
	gl.ClearColor(r.config.ClearColor[0], r.config.ClearColor[1], r.config.ClearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	viewProj := cam.ViewProjection()
	r.meshPass(g, viewProj, lightViewProj, castShadows)
	r.linePass(g, viewProj)

	// Leave a neutral state for whatever draws next (the UI)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) shadowPass(g *scene.Graph, lightViewProj math.Mat4) {
	r.shadowMap.Bind()

	r.depthProgram.Use()
	r.depthProgram.SetMat4("uLightViewProj", lightViewProj)
	for _, m := range g.Meshes {
		if !m.CastShadow {
			continue
		}
		gm := r.mesh(m.Geometry)
		r.depthProgram.SetMat4("uModel", m.Matrix())
		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	}

	r.shadowMap.Unbind()
}

func (r *Renderer) meshPass(g *scene.Graph, viewProj, lightViewProj math.Mat4, castShadows bool) {
	p := r.meshProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetMat4("uLightViewProj", lightViewProj)

	lights := lighting.FromGraph(g)
	p.SetVec3("uAmbient", lights.Ambient)
	p.SetBool("uDirEnabled", lights.DirEnabled)
	p.SetVec3("uDirColor", lights.DirColor)
	p.SetVec3("uDirDirection", lights.DirDirection)
	p.SetBool("uSpotEnabled", lights.SpotEnabled)
	p.SetVec3("uSpotPosition", lights.SpotPosition)
	p.SetVec3("uSpotDirection", lights.SpotDirection)
	p.SetVec3("uSpotColor", lights.SpotColor)
	p.SetFloat("uSpotCosOuter", lights.SpotCosOuter)
	p.SetFloat("uSpotCosInner", lights.SpotCosInner)
	p.SetFloat("uSpotDistance", lights.SpotDistance)

	p.SetBool("uShadowsEnabled", castShadows)
	p.SetInt("uShadowMap", 0)
	if castShadows {
		r.shadowMap.BindTexture(gl.TEXTURE0)
	}

	for _, m := range g.Meshes {
		model := m.Matrix()
		p.SetMat4("uModel", model)
		p.SetMat3("uNormalMatrix", model.NormalMatrix())
		p.SetVec3("uColor", m.Material.Color.RGB())
		p.SetBool("uDoubleSided", m.Material.DoubleSided)
		p.SetBool("uReceiveShadow", m.ReceiveShadow)

		if m.Material.DoubleSided || m.Material.Wireframe {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
		}
		// Wireframe is lit like the filled surface, only rasterized as lines
		if m.Material.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}

		gm := r.mesh(m.Geometry)
		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.CULL_FACE)
}

func (r *Renderer) linePass(g *scene.Graph, viewProj math.Mat4) {
	p := r.lineProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)

	for _, ls := range g.Lines {
		r.drawLines(r.lineSet(ls.Lines), ls.Matrix())
	}

	if g.SpotHelper != nil {
		r.drawLines(r.spotHelper(g.SpotHelper), math.Identity())
	}
}

func (r *Renderer) drawLines(l *gpuLines, model math.Mat4) {
	r.lineProgram.SetMat4("uModel", model)
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.vertexCount)
}

// mesh returns the uploaded copy of m, uploading it on first use.
func (r *Renderer) mesh(m *geometry.Mesh) *gpuMesh {
	if gm, ok := r.meshes[m]; ok {
		return gm
	}

	gm := &gpuMesh{indexCount: int32(len(m.Indices))}
	stride := int32(unsafe.Sizeof(geometry.Vertex{}))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[m] = gm
	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", gm.indexCount),
	)
	return gm
}

// lineSet returns the uploaded copy of l, uploading it on first use.
func (r *Renderer) lineSet(l *geometry.Lines) *gpuLines {
	if cached, ok := r.lines[l]; ok {
		return cached
	}
	uploaded := newGPULines()
	uploaded.upload(l.Vertices, gl.STATIC_DRAW)
	r.lines[l] = uploaded
	return uploaded
}

// spotHelper re-uploads the helper's lines when it was updated since the
// last frame.
func (r *Renderer) spotHelper(h *scene.SpotLightHelper) *gpuLines {
	if r.helper == nil {
		r.helper = newGPULines()
		r.helperVersion = 0
	}
	if v := h.Version(); v != r.helperVersion {
		lines := geometry.FromSegments(h.Lines(), h.Light().Color.RGB())
		r.helper.upload(lines.Vertices, gl.DYNAMIC_DRAW)
		r.helperVersion = v
	}
	return r.helper
}

func newGPULines() *gpuLines {
	l := &gpuLines{}
	stride := int32(unsafe.Sizeof(geometry.LineVertex{}))

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Color (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.LineVertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return l
}

func (l *gpuLines) upload(vertices []geometry.LineVertex, usage uint32) {
	l.vertexCount = int32(len(vertices))
	if len(vertices) == 0 {
		return
	}
	size := len(vertices) * int(unsafe.Sizeof(geometry.LineVertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), usage)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (l *gpuLines) delete() {
	gl.DeleteVertexArrays(1, &l.vao)
	gl.DeleteBuffers(1, &l.vbo)
}

// Close releases every GPU resource the renderer owns. The target belongs
// to the caller and is left alone.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.log.Info("closing renderer")

	for _, gm := range r.meshes {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
	}
	r.meshes = nil
	for _, l := range r.lines {
		l.delete()
	}
	r.lines = nil
	if r.helper != nil {
		r.helper.delete()
		r.helper = nil
	}

	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	for _, p := range []*shader.Program{r.meshProgram, r.lineProgram, r.depthProgram} {
		if p != nil {
			p.Delete()
		}
	}
	return nil
}
