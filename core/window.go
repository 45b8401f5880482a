package core

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"scenegl/gfx"
)

func init() {
	runtime.LockOSThread()
}

// Window is a GLFW window with an OpenGL 4.1 core context. It is also the
// default-framebuffer render target.
type Window struct {
	Handle *glfw.Window
	Title  string

	viewport gfx.Viewport
	// logicalW/H override DrawableSize when set.
	logicalW, logicalH int

	keys     map[int]*KeyState
	buttons  map[int]*KeyState
	mouseX   float64
	mouseY   float64
	onResize func(width, height int)
}

// NewWindow creates the window and makes its context current on the calling
// thread. Failures are reported to the error channel.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, Report(Wrap(ErrGLFWInit, err, "failed to initialize GLFW"))
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.Samples, config.Samples)

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, Report(Wrap(ErrWindowCreation, err, "failed to create window"))
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Handle:  handle,
		Title:   config.Title,
		keys:    make(map[int]*KeyState),
		buttons: make(map[int]*KeyState),
	}
	fw, fh := handle.GetFramebufferSize()
	w.viewport = gfx.Viewport{Width: fw, Height: fh}

	// The viewport always follows the framebuffer.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.viewport.Width, w.viewport.Height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	Logger().Info("window created", "title", config.Title, "width", config.Width, "height", config.Height,
		"framebuffer_width", fw, "framebuffer_height", fh)
	return w, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

// PollEvents processes pending events and refreshes tracked key, button and
// cursor state.
func (w *Window) PollEvents() {
	glfw.PollEvents()

	for code, k := range w.keys {
		k.update(w.Handle.GetKey(glfw.Key(code)) == glfw.Press)
	}
	for code, b := range w.buttons {
		b.update(w.Handle.GetMouseButton(glfw.MouseButton(code)) == glfw.Press)
	}
	w.mouseX, w.mouseY = w.toDrawable(w.Handle.GetCursorPos())
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) SetSize(width, height int) {
	w.Handle.SetSize(width, height)
}

// ── Render target ────────────────────────────────────────────────────────────

// DrawableSize is the logical size if one was set, else the framebuffer size.
func (w *Window) DrawableSize() (int, int) {
	if w.logicalW > 0 && w.logicalH > 0 {
		return w.logicalW, w.logicalH
	}
	return w.Handle.GetFramebufferSize()
}

// ActualSize is the framebuffer size in pixels.
func (w *Window) ActualSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// WindowSize is the size in screen coordinates.
func (w *Window) WindowSize() (int, int) {
	return w.Handle.GetSize()
}

// SetLogicalSize sets the size reported by DrawableSize. Zero restores the
// framebuffer size.
func (w *Window) SetLogicalSize(width, height int) {
	w.logicalW, w.logicalH = width, height
}

func (w *Window) Viewport() gfx.Viewport { return w.viewport }

func (w *Window) SetViewport(vp gfx.Viewport) { w.viewport = vp }

// SetLogicalViewport resets the viewport to cover the framebuffer.
func (w *Window) SetLogicalViewport() {
	fw, fh := w.ActualSize()
	w.viewport = gfx.Viewport{Width: fw, Height: fh}
}

func (w *Window) Framebuffer() gfx.Framebuffer { return nil }

// ── Input ────────────────────────────────────────────────────────────────────

// Key returns the tracked state of a key. Tracking starts on first request.
func (w *Window) Key(code int) *KeyState {
	k, ok := w.keys[code]
	if !ok {
		k = &KeyState{pressed: w.Handle.GetKey(glfw.Key(code)) == glfw.Press}
		w.keys[code] = k
	}
	return k
}

// MouseButton returns the tracked state of a mouse button.
func (w *Window) MouseButton(code int) *KeyState {
	b, ok := w.buttons[code]
	if !ok {
		b = &KeyState{pressed: w.Handle.GetMouseButton(glfw.MouseButton(code)) == glfw.Press}
		w.buttons[code] = b
	}
	return b
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

// MousePos is the cursor position at the last PollEvents, in drawable
// coordinates with the origin at the bottom left.
func (w *Window) MousePos() (float64, float64) {
	return w.mouseX, w.mouseY
}

func (w *Window) SetCursorMode(mode CursorMode) {
	w.Handle.SetInputMode(glfw.CursorMode, int(mode))
}

func (w *Window) toDrawable(x, y float64) (float64, float64) {
	ww, wh := w.WindowSize()
	dw, dh := w.DrawableSize()
	return WindowToDrawable(x, y, ww, wh, dw, dh)
}

// WindowToDrawable maps a cursor position in window coordinates (origin top
// left) to drawable coordinates (origin bottom left).
func WindowToDrawable(x, y float64, windowW, windowH, drawableW, drawableH int) (float64, float64) {
	if windowW == 0 || windowH == 0 {
		return 0, 0
	}
	sx := float64(drawableW) / float64(windowW)
	sy := float64(drawableH) / float64(windowH)
	return x * sx, (float64(windowH) - y) * sy
}

// ── Callbacks ────────────────────────────────────────────────────────────────

func (w *Window) SetCloseCallback(cb func()) {
	w.Handle.SetCloseCallback(func(*glfw.Window) { cb() })
}

// SetResizeCallback is called with the new framebuffer size after the
// viewport has been updated.
func (w *Window) SetResizeCallback(cb func(width, height int)) {
	w.onResize = cb
}

func (w *Window) SetKeyCallback(cb func(key int, action Action, mods int)) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		cb(int(key), Action(action), int(mods))
	})
}

func (w *Window) SetCharCallback(cb func(r rune)) {
	w.Handle.SetCharCallback(func(_ *glfw.Window, r rune) { cb(r) })
}

// SetCursorCallback receives positions in drawable coordinates.
func (w *Window) SetCursorCallback(cb func(x, y float64)) {
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		cb(w.toDrawable(x, y))
	})
}

func (w *Window) SetMouseButtonCallback(cb func(button int, action Action, mods int)) {
	w.Handle.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		cb(int(b), Action(action), int(mods))
	})
}

func (w *Window) SetScrollCallback(cb func(xoff, yoff float64)) {
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
