package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
}

var _ platform = &glfwWindow{}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the native window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{window: win}
	w.native = gw

	// Raw motion avoids pointer acceleration while the cursor is disabled.
	if w.rawMotion && glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		w.handleKey(uint32(key), action != glfw.Release, action == glfw.Repeat)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.handleScroll(float32(yoff))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := gw.framebufferCursorPos()
		w.handleMouseButton(int(button), action == glfw.Press, x, y)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.handleCursorPos(float32(xpos), float32(ypos))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.handleFocus(focused)
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.handleResize(width, height)
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	w.width, w.height = win.GetFramebufferSize()

	return nil
}

// framebufferCursorPos returns the cursor position scaled from screen to framebuffer pixels.
func (gw *glfwWindow) framebufferCursorPos() (float32, float32) {
	x, y := gw.window.GetCursorPos()
	ww, wh := gw.window.GetSize()
	fw, fh := gw.window.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return float32(x), float32(y)
}

// pollEvents polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (gw *glfwWindow) pollEvents() {
	glfw.PollEvents()
}

func (gw *glfwWindow) shouldClose() bool {
	return gw.window.ShouldClose()
}

func (gw *glfwWindow) setShouldClose() {
	gw.window.SetShouldClose(true)
}

// destroy destroys the GLFW window and terminates the GLFW library.
func (gw *glfwWindow) destroy() {
	gw.window.Destroy()
	glfw.Terminate()
}

func (gw *glfwWindow) setTitle(title string) {
	gw.window.SetTitle(title)
}

// setCursorDisabled hides and captures the cursor; GLFW then reports unbounded virtual positions.
//
// Reference: https://www.glfw.org/docs/latest/input_guide.html#cursor_mode
func (gw *glfwWindow) setCursorDisabled(disabled bool) {
	mode := glfw.CursorNormal
	if disabled {
		mode = glfw.CursorDisabled
	}
	gw.window.SetInputMode(glfw.CursorMode, mode)
}

func (gw *glfwWindow) focused() bool {
	return gw.window.GetAttrib(glfw.Focused) == glfw.True
}

// gamepadAxes reads the left stick of the first joystick with a gamepad mapping.
//
// Reference: https://www.glfw.org/docs/latest/input_guide.html#gamepad
func (gw *glfwWindow) gamepadAxes() (float32, float32, bool) {
	joy := glfw.Joystick1
	if !joy.Present() || !joy.IsGamepad() {
		return 0, 0, false
	}
	state := joy.GetGamepadState()
	if state == nil {
		return 0, 0, false
	}
	return state.Axes[glfw.AxisLeftX], state.Axes[glfw.AxisLeftY], true
}

// surfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (gw *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}
