package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	closing   bool
	destroyed bool
	title     string
	disabled  bool
	hasFocus  bool
	stickX    float32
	stickY    float32
	hasStick  bool
	polls     int
	onPoll    func()
}

func (p *fakePlatform) pollEvents() {
	p.polls++
	if p.onPoll != nil {
		p.onPoll()
	}
}
func (p *fakePlatform) shouldClose() bool { return p.closing }
func (p *fakePlatform) setShouldClose() { p.closing = true }
func (p *fakePlatform) destroy() { p.destroyed = true }
func (p *fakePlatform) setTitle(title string) { p.title = title }
func (p *fakePlatform) setCursorDisabled(disabled bool) { p.disabled = disabled }
func (p *fakePlatform) focused() bool { return p.hasFocus }
func (p *fakePlatform) gamepadAxes() (float32, float32, bool) {
	return p.stickX, p.stickY, p.hasStick
}
func (p *fakePlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func newTestWindow(options ...WindowBuilderOption) (*engineWindow, *fakePlatform) {
	w := newEngineWindow(options...)
	p := &fakePlatform{hasFocus: true}
	w.native = p
	return w, p
}

func TestPointerLockRequiresFocus(t *testing.T) {
	w, p := newTestWindow()

	p.hasFocus = false
	err := w.RequestPointerLock()
	require.ErrorIs(t, err, camera.ErrPointerLockDenied)
	assert.False(t, w.PointerLocked())
	assert.False(t, p.disabled)

	p.hasFocus = true
	require.NoError(t, w.RequestPointerLock())
	assert.True(t, w.PointerLocked())
	assert.True(t, p.disabled)

	w.ReleasePointerLock()
	assert.False(t, w.PointerLocked())
	assert.False(t, p.disabled)
}

func TestFocusLossReleasesPointer(t *testing.T) {
	w, p := newTestWindow()
	var focus []bool
	w.SetFocusCallback(func(f bool) { focus = append(focus, f) })

	require.NoError(t, w.RequestPointerLock())
	w.handleFocus(false)

	assert.False(t, w.PointerLocked())
	assert.False(t, p.disabled)
	assert.Equal(t, []bool{false}, focus)
}

func TestHintInTitle(t *testing.T) {
	w, p := newTestWindow(WithTitle("Astronaut"))

	w.ShowHint("Click to look around")
	assert.Equal(t, "Astronaut - Click to look around", p.title)
	w.HideHint()
	assert.Equal(t, "Astronaut", p.title)
}

func TestClickListeners(t *testing.T) {
	w, _ := newTestWindow()
	var calls []int
	first := w.AddClickListener(func() { calls = append(calls, 1) })
	w.AddClickListener(func() { calls = append(calls, 2) })

	w.handleMouseButton(common.MouseButtonLeft, true, 100, 100)
	w.handleMouseButton(common.MouseButtonLeft, false, 101, 100)
	assert.Equal(t, []int{1, 2}, calls)

	// a drag is not a click
	w.handleMouseButton(common.MouseButtonLeft, true, 100, 100)
	w.handleMouseButton(common.MouseButtonLeft, false, 160, 100)
	assert.Len(t, calls, 2)

	w.RemoveClickListener(first)
	w.RemoveClickListener(99)
	w.handleMouseButton(common.MouseButtonRight, true, 0, 0)
	w.handleMouseButton(common.MouseButtonRight, false, 0, 0)
	w.handleMouseButton(common.MouseButtonLeft, true, 0, 0)
	w.handleMouseButton(common.MouseButtonLeft, false, 0, 0)
	assert.Equal(t, []int{1, 2, 2}, calls)
}

func TestClickListenerMayRemoveItself(t *testing.T) {
	w, _ := newTestWindow()
	var id int
	calls := 0
	id = w.AddClickListener(func() {
		calls++
		w.RemoveClickListener(id)
		require.NoError(t, w.RequestPointerLock())
	})

	w.handleMouseButton(common.MouseButtonLeft, true, 0, 0)
	w.handleMouseButton(common.MouseButtonLeft, false, 0, 0)
	w.handleMouseButton(common.MouseButtonLeft, true, 0, 0)
	w.handleMouseButton(common.MouseButtonLeft, false, 0, 0)
	assert.Equal(t, 1, calls)
	assert.True(t, w.PointerLocked())
}

func TestMouseButtonForwarded(t *testing.T) {
	w, _ := newTestWindow()
	type event struct {
		button  int
		pressed bool
		x, y    float32
	}
	var got []event
	w.SetMouseButtonCallback(func(b int, p bool, x, y float32) { got = append(got, event{b, p, x, y}) })

	w.handleMouseButton(common.MouseButtonMiddle, true, 3, 4)
	assert.Equal(t, []event{{common.MouseButtonMiddle, true, 3, 4}}, got)
}

func TestCursorDeltas(t *testing.T) {
	w, _ := newTestWindow()
	var deltas [][2]float32
	w.SetMouseDeltaCallback(func(dx, dy float32) { deltas = append(deltas, [2]float32{dx, dy}) })

	w.handleCursorPos(10, 10)
	w.handleCursorPos(15, 8)
	w.handleCursorPos(15, 8)
	assert.Equal(t, [][2]float32{{5, -2}}, deltas)

	// locking resets the baseline so the cursor warp is not reported
	require.NoError(t, w.RequestPointerLock())
	w.handleCursorPos(500, 500)
	w.handleCursorPos(501, 500)
	assert.Equal(t, [][2]float32{{5, -2}, {1, 0}}, deltas)
}

func TestKeyRepeatDropped(t *testing.T) {
	w, _ := newTestWindow()
	var downs, ups []uint32
	w.SetKeyDownCallback(func(c uint32) { downs = append(downs, c) })
	w.SetKeyUpCallback(func(c uint32) { ups = append(ups, c) })

	w.handleKey(common.KeyW, true, false)
	w.handleKey(common.KeyW, true, true)
	w.handleKey(common.KeyW, false, false)
	w.handleKey(common.KeyEsc, true, false)

	assert.Equal(t, []uint32{common.KeyW, common.KeyEsc}, downs)
	assert.Equal(t, []uint32{common.KeyW}, ups)
	assert.True(t, w.IsRunning(), "escape is left to the application")
}

func TestProcessMessagesRunsUntilClose(t *testing.T) {
	w, p := newTestWindow()
	updates := 0
	w.SetUpdateCallback(func() {
		updates++
		if updates == 3 {
			w.Close()
		}
	})

	w.ProcessMessages()
	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, p.polls)
	assert.False(t, w.IsRunning())

	require.NoError(t, w.Destroy())
	assert.True(t, p.destroyed)
	assert.Error(t, w.Destroy())
}

func TestPlatformCloseStopsLoop(t *testing.T) {
	w, p := newTestWindow()
	p.onPoll = func() {
		if p.polls == 2 {
			p.closing = true
		}
	}
	updates := 0
	w.SetUpdateCallback(func() { updates++ })

	w.ProcessMessages()
	assert.Equal(t, 1, updates)
}

func TestGamepadChangesReported(t *testing.T) {
	w, p := newTestWindow()
	var sticks [][2]float32
	w.SetGamepadCallback(func(x, y float32) { sticks = append(sticks, [2]float32{x, y}) })

	w.pollGamepad()
	p.stickX, p.stickY, p.hasStick = 0.5, -1, true
	w.pollGamepad()
	w.pollGamepad()
	p.hasStick = false
	w.pollGamepad()

	assert.Equal(t, [][2]float32{{0.5, -1}, {0, 0}}, sticks)
}

func TestClickSlopOption(t *testing.T) {
	w, _ := newTestWindow(WithClickSlop(50), WithSize(0, 0))
	calls := 0
	w.AddClickListener(func() { calls++ })

	w.handleMouseButton(common.MouseButtonLeft, true, 100, 100)
	w.handleMouseButton(common.MouseButtonLeft, false, 130, 100)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1280, w.Width(), "zero size keeps the default")
}

func TestResize(t *testing.T) {
	w, _ := newTestWindow()
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })

	w.handleResize(800, 600)
	assert.Equal(t, [2]int{800, 600}, got)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
}
