package window

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// It is the render surface for the camera controls: it delivers clicks, captures the
// pointer and shows hints in its title bar.
type Window interface {
	camera.Surface
	camera.HintDisplay

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events. Key repeats are not reported.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseButtonCallback sets the callback for mouse button presses and releases.
	//
	// Parameters:
	//   - callback: function receiving the button code, the press state and the pointer position in pixels
	SetMouseButtonCallback(callback func(button int, pressed bool, x, y float32))

	// SetMouseDeltaCallback sets the callback for relative pointer motion. While the pointer
	// is locked the deltas are unbounded.
	//
	// Parameters:
	//   - callback: function receiving the motion in pixels since the previous event
	SetMouseDeltaCallback(callback func(dx, dy float32))

	// SetFocusCallback sets the callback for focus changes. Losing focus releases a locked pointer.
	//
	// Parameters:
	//   - callback: function receiving the new focus state
	SetFocusCallback(callback func(focused bool))

	// SetGamepadCallback sets the callback for left-stick motion of the first gamepad.
	//
	// Parameters:
	//   - callback: function receiving the stick axes, -y is up
	SetGamepadCallback(callback func(x, y float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PointerLocked reports whether the pointer is captured.
	//
	// Returns:
	//   - bool: true while captured
	PointerLocked() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close asks the message loop to stop. Safe to call from callbacks.
	Close()

	// Destroy releases platform resources. Call after ProcessMessages returns.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Destroy() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// platform is the native window backing an engineWindow.
type platform interface {
	pollEvents()
	shouldClose() bool
	setShouldClose()
	destroy()
	setTitle(title string)
	setCursorDisabled(disabled bool)
	focused() bool
	gamepadAxes() (x, y float32, ok bool)
	surfaceDescriptor() *wgpu.SurfaceDescriptor
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, native window state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar, without any hint.
	title string

	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the framebuffer size in pixels.
	width, height int

	native platform

	running bool
	locked  bool
	hint    string

	clickListeners map[int]func()
	nextClickID    int

	// lastX and lastY are the previous cursor position used to derive deltas.
	lastX, lastY float32
	hasLast      bool
	pressX       float32
	pressY       float32

	lastStickX, lastStickY float32

	// clickSlop is the maximum press-to-release travel in pixels for a click.
	clickSlop float64
	rawMotion bool

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onMouseButton func(button int, pressed bool, x, y float32)
	onMouseDelta  func(dx, dy float32)
	onFocus       func(focused bool)
	onGamepad     func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the native window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:             &sync.Mutex{},
		title:          "Astronaut",
		maxWidth:       3840,
		maxHeight:      2160,
		minWidth:       600,
		minHeight:      200,
		width:          1280,
		height:         720,
		running:        true,
		clickListeners: make(map[int]func()),
		clickSlop:      4,
		rawMotion:      true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, pressed bool, x, y float32)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseDeltaCallback(callback func(dx, dy float32)) {
	w.onMouseDelta = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) SetGamepadCallback(callback func(x, y float32)) {
	w.onGamepad = callback
}

func (w *engineWindow) AddClickListener(listener func()) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextClickID++
	w.clickListeners[w.nextClickID] = listener
	return w.nextClickID
}

func (w *engineWindow) RemoveClickListener(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clickListeners, id)
}

func (w *engineWindow) RequestPointerLock() error {
	if w.native == nil {
		return fmt.Errorf("%w: window is not initialized", camera.ErrPointerLockDenied)
	}
	if !w.native.focused() {
		return fmt.Errorf("%w: window is not focused", camera.ErrPointerLockDenied)
	}
	w.mu.Lock()
	w.locked = true
	w.hasLast = false
	w.mu.Unlock()
	w.native.setCursorDisabled(true)
	return nil
}

func (w *engineWindow) ReleasePointerLock() {
	w.mu.Lock()
	was := w.locked
	w.locked = false
	w.hasLast = false
	w.mu.Unlock()
	if was && w.native != nil {
		w.native.setCursorDisabled(false)
	}
}

func (w *engineWindow) PointerLocked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locked
}

func (w *engineWindow) ShowHint(text string) {
	w.mu.Lock()
	w.hint = text
	title := w.fullTitle()
	w.mu.Unlock()
	if w.native != nil {
		w.native.setTitle(title)
	}
}

func (w *engineWindow) HideHint() {
	w.mu.Lock()
	w.hint = ""
	title := w.fullTitle()
	w.mu.Unlock()
	if w.native != nil {
		w.native.setTitle(title)
	}
}

// fullTitle joins the title and the current hint. Caller must hold the mutex.
func (w *engineWindow) fullTitle() string {
	if w.hint == "" {
		return w.title
	}
	return w.title + " - " + w.hint
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.native == nil {
		return nil
	}
	return w.native.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running || w.native == nil {
		return false
	}
	return !w.native.shouldClose()
}

func (w *engineWindow) Close() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	if w.native != nil {
		w.native.setShouldClose()
	}
}

func (w *engineWindow) Destroy() error {
	if w.native == nil {
		return fmt.Errorf("window is not initialized")
	}
	w.Close()
	w.native.destroy()
	w.native = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.native.pollEvents()
		if !w.IsRunning() {
			break
		}
		w.pollGamepad()

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// handleKey dispatches a key action. Repeats are dropped.
func (w *engineWindow) handleKey(code uint32, pressed, repeat bool) {
	switch {
	case repeat:
	case pressed:
		if w.onKeyDown != nil {
			w.onKeyDown(code)
		}
	default:
		if w.onKeyUp != nil {
			w.onKeyUp(code)
		}
	}
}

// handleMouseButton forwards a button event and fires click listeners on a primary-button
// release that did not travel far from its press.
func (w *engineWindow) handleMouseButton(button int, pressed bool, x, y float32) {
	if w.onMouseButton != nil {
		w.onMouseButton(button, pressed, x, y)
	}
	if button != common.MouseButtonLeft {
		return
	}

	w.mu.Lock()
	if pressed {
		w.pressX, w.pressY = x, y
		w.mu.Unlock()
		return
	}
	travel := math.Hypot(float64(x-w.pressX), float64(y-w.pressY))
	var listeners []func()
	if travel <= w.clickSlop || w.locked {
		listeners = make([]func(), 0, len(w.clickListeners))
		for id := 1; id <= w.nextClickID; id++ {
			if l, ok := w.clickListeners[id]; ok {
				listeners = append(listeners, l)
			}
		}
	}
	w.mu.Unlock()

	// Listeners may add or remove listeners or request the pointer lock.
	for _, l := range listeners {
		l()
	}
}

func (w *engineWindow) handleCursorPos(x, y float32) {
	w.mu.Lock()
	dx, dy := x-w.lastX, y-w.lastY
	first := !w.hasLast
	w.lastX, w.lastY, w.hasLast = x, y, true
	w.mu.Unlock()

	if first || (dx == 0 && dy == 0) {
		return
	}
	if w.onMouseDelta != nil {
		w.onMouseDelta(dx, dy)
	}
}

func (w *engineWindow) handleScroll(yoff float32) {
	if w.onScroll != nil {
		w.onScroll(yoff)
	}
}

func (w *engineWindow) handleFocus(focused bool) {
	if !focused {
		w.ReleasePointerLock()
	}
	if w.onFocus != nil {
		w.onFocus(focused)
	}
}

func (w *engineWindow) handleResize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// pollGamepad reports left-stick changes of the first gamepad.
func (w *engineWindow) pollGamepad() {
	if w.onGamepad == nil || w.native == nil {
		return
	}
	x, y, ok := w.native.gamepadAxes()
	if !ok {
		x, y = 0, 0
	}
	if x == w.lastStickX && y == w.lastStickY {
		return
	}
	w.lastStickX, w.lastStickY = x, y
	w.onGamepad(x, y)
}
