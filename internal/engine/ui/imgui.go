// Package ui provides the Dear ImGui host window and the options panel.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenedemo/internal/logger"
)

// HostConfig holds the window settings for NewHost.
type HostConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Clear      [3]float32
}

// windowFlags returns the flags to set on top of the backend defaults.
func (c HostConfig) windowFlags() sdlbackend.SDLWindowFlags {
	if c.Fullscreen {
		return sdlbackend.SDLWindowFlagsFullscreenDesktop
	}
	return sdlbackend.SDLWindowFlagsNone
}

func (c HostConfig) swapInterval() sdlbackend.SDLWindowFlags {
	if c.VSync {
		return 1
	}
	return 0
}

// Host owns the cimgui SDL backend: the window, the GL context and the
// frame loop that calls back into the demo.
type Host struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	closers closers
	log     *zap.Logger
}

// NewHost creates the backend window. GL function pointers are loaded
// before returning, so GL resources can be created right away.
func NewHost(cfg HostConfig) (*Host, error) {
	h := &Host{log: logger.Named("ui")}

	var err error
	h.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	h.backend.SetAfterCreateContextHook(func() {
		// No ini file; the panel places itself every frame
		imgui.CurrentIO().SetIniFilename("")
	})
	h.backend.SetBeforeDestroyContextHook(h.closers.run)

	if f := cfg.windowFlags(); f != sdlbackend.SDLWindowFlagsNone {
		h.backend.SetWindowFlags(f, 1)
	}
	h.backend.SetBgColor(imgui.NewVec4(cfg.Clear[0], cfg.Clear[1], cfg.Clear[2], 1.0))
	h.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	// The backend turns vsync on when it creates the context
	if err := h.backend.SetSwapInterval(cfg.swapInterval()); err != nil {
		h.log.Warn("failed to set swap interval", zap.Bool("vsync", cfg.VSync), zap.Error(err))
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	h.log.Info("imgui host created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return h, nil
}

// OnClose registers fn to run while the GL context is still current, after
// the last frame. Functions run once, in reverse order of registration.
func (h *Host) OnClose(fn func()) {
	h.closers.add(fn)
}

// Run drives frame once per display refresh until the window closes.
func (h *Host) Run(frame func()) {
	h.backend.Run(frame)
}

// Stop asks the backend to leave Run after the current frame.
func (h *Host) Stop() {
	h.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (h *Host) SetWindowTitle(title string) {
	h.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area in screen points.
func Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// PixelSize converts a size in screen points to drawable pixels.
func PixelSize(width, height float32) (int32, int32) {
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	if scale.X <= 0 || scale.Y <= 0 {
		return int32(width), int32(height)
	}
	return int32(width * scale.X), int32(height * scale.Y)
}

// DrawSceneTexture draws an offscreen render as a borderless window behind
// everything else. The texture is flipped since GL rows are bottom-up.
func DrawSceneTexture(x, y, w, h float32, textureID uint32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// MouseInput is the pointer state the orbit camera consumes.
type MouseInput struct {
	DragX, DragY float32 // left button, rotate
	PanX, PanY   float32 // right button, pan
	Wheel        float32
}

// ReadMouse returns this frame's camera input. It is empty while ImGui
// wants the mouse, such as when the pointer is over the panel.
func ReadMouse() MouseInput {
	io := imgui.CurrentIO()
	if io.WantCaptureMouse() {
		return MouseInput{}
	}

	var in MouseInput
	delta := io.MouseDelta()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		in.DragX, in.DragY = delta.X, delta.Y
	}
	if imgui.IsMouseDragging(imgui.MouseButtonRight) {
		in.PanX, in.PanY = delta.X, delta.Y
	}
	in.Wheel = io.MouseWheel()
	return in
}
