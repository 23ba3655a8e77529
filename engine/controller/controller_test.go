package controller

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/avatar"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = float32(1.0 / 60.0)

type fakeSurface struct {
	deny      bool
	captured  bool
	listeners map[int]func()
	nextID    int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{listeners: map[int]func(){}}
}

func (s *fakeSurface) AddClickListener(listener func()) int {
	s.nextID++
	s.listeners[s.nextID] = listener
	return s.nextID
}

func (s *fakeSurface) RemoveClickListener(id int) {
	delete(s.listeners, id)
}

func (s *fakeSurface) RequestPointerLock() error {
	if s.deny {
		return camera.ErrPointerLockDenied
	}
	s.captured = true
	return nil
}

func (s *fakeSurface) ReleasePointerLock() {
	s.captured = false
}

func (s *fakeSurface) click() {
	for _, l := range s.listeners {
		l()
	}
}

type fakeHint struct {
	visible bool
	text    string
}

func (h *fakeHint) ShowHint(text string) {
	h.visible = true
	h.text = text
}

func (h *fakeHint) HideHint() {
	h.visible = false
}

func newTestController(t *testing.T, options ...ControllerBuilderOption) (Controller, *fakeSurface, *fakeHint) {
	t.Helper()
	s := newFakeSurface()
	h := &fakeHint{}
	options = append([]ControllerBuilderOption{WithSurface(s), WithHintDisplay(h)}, options...)
	return NewController(options...), s, h
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDeltaf(t, expected[i], actual[i], 1e-3, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func TestControllerStartsInThirdPerson(t *testing.T) {
	c, _, h := newTestController(t)
	assert.Equal(t, ModeThirdPerson, c.Mode())
	assert.False(t, c.Strafing())
	assert.False(t, h.visible)
	assert.True(t, c.Orbit().Enabled())
}

func TestUpdateAvatarTurnLeft(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar()

	cmd := input.Command{Turn: -1}
	for range 10 {
		c.UpdateAvatar(av, cmd, tick)
	}

	assert.InDelta(t, 0.2, av.Yaw(), 1e-4)
	assertVec(t, mgl32.Vec3{}, av.Position())
}

func TestUpdateAvatarWalkForward(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar()

	for range 60 {
		c.UpdateAvatar(av, input.Command{Forward: 1}, tick)
	}
	assertVec(t, mgl32.Vec3{0, 0, 6}, av.Position())

	for range 30 {
		c.UpdateAvatar(av, input.Command{Forward: -1}, tick)
	}
	assertVec(t, mgl32.Vec3{0, 0, 3}, av.Position())
}

func TestUpdateAvatarNilAndNegativeDt(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.NotPanics(t, func() {
		c.UpdateAvatar(nil, input.Command{Forward: 1}, tick)
	})

	av := avatar.NewAvatar()
	c.UpdateAvatar(av, input.Command{Forward: 1, Turn: 1}, -1)
	assertVec(t, mgl32.Vec3{}, av.Position())
	assert.Zero(t, av.Yaw())
}

func TestUpdateAvatarStaysInBounds(t *testing.T) {
	tuning := DefaultTuning()
	tuning.FreeFlight = true
	c, _, _ := newTestController(t, WithTuning(tuning))
	av := avatar.NewAvatar()

	rng := rand.New(rand.NewSource(7))
	axis := func() float32 { return float32(rng.Intn(3) - 1) }
	for i := range 2000 {
		if i%250 == 0 {
			c.ToggleMode(av)
		}
		cmd := input.Command{Forward: axis(), Turn: axis(), Strafe: axis(), Vertical: axis()}
		c.UpdateAvatar(av, cmd, tick*float32(1+rng.Intn(20)))

		p := av.Position()
		require.LessOrEqual(t, p.X(), tuning.Bounds.X)
		require.GreaterOrEqual(t, p.X(), -tuning.Bounds.X)
		require.LessOrEqual(t, p.Z(), tuning.Bounds.Z)
		require.GreaterOrEqual(t, p.Z(), -tuning.Bounds.Z)
	}
}

func TestUpdateAvatarClampsAtEdge(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar(avatar.WithPosition(mgl32.Vec3{0, 0, 49.95}))

	c.UpdateAvatar(av, input.Command{Forward: 1}, tick)
	assert.Equal(t, float32(50), av.Position().Z())
	c.UpdateAvatar(av, input.Command{Forward: 1}, tick)
	assert.Equal(t, float32(50), av.Position().Z())
}

func TestFreeFlightVertical(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar()

	c.UpdateAvatar(av, input.Command{Vertical: 1}, tick)
	assert.Zero(t, av.Position().Y(), "vertical input ignored without free flight")

	tuning := c.Tuning()
	tuning.FreeFlight = true
	c.SetTuning(tuning)
	for range 60 {
		c.UpdateAvatar(av, input.Command{Vertical: 1}, tick)
	}
	assert.InDelta(t, 6, av.Position().Y(), 1e-3)
}

func TestToggleTwicePreservesAvatar(t *testing.T) {
	c, s, h := newTestController(t)
	av := avatar.NewAvatar(avatar.WithPosition(mgl32.Vec3{3, 0, -4}), avatar.WithYaw(1.1))
	before, yaw := av.Position(), av.Yaw()

	assert.Equal(t, ModeFirstPerson, c.ToggleMode(av))
	assert.Len(t, s.listeners, 1)
	assert.True(t, h.visible)
	assert.False(t, c.Orbit().Enabled())

	assert.Equal(t, ModeThirdPerson, c.ToggleMode(av))
	assert.Empty(t, s.listeners)
	assert.False(t, h.visible)
	assert.True(t, c.Orbit().Enabled())

	assert.Equal(t, before, av.Position())
	assert.Equal(t, yaw, av.Yaw())
}

func TestEnterFirstPersonPlacesEye(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar(avatar.WithPosition(mgl32.Vec3{2, 0, 2}))

	c.SetMode(ModeFirstPerson, av)
	cam := c.Camera()
	assertVec(t, mgl32.Vec3{2, 1.6, 2.5}, cam.Position())
	assertVec(t, mgl32.Vec3{2, 1.6, 3.5}, cam.Target())
	assert.True(t, c.Strafing())
}

func TestLeaveFirstPersonPlacesOrbit(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar(avatar.WithPosition(mgl32.Vec3{4, 0, 1}))

	c.SetMode(ModeFirstPerson, av)
	c.SetMode(ModeThirdPerson, av)
	assertVec(t, mgl32.Vec3{-4, 5, -7}, c.Camera().Position())
	assertVec(t, mgl32.Vec3{4, 1, 1}, c.Camera().Target())
}

func TestDefaultPosesWithoutAvatar(t *testing.T) {
	c, _, _ := newTestController(t)

	c.UpdateCamera(nil, tick)
	assertVec(t, mgl32.Vec3{-8, 5, -8}, c.Camera().Position())
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.Camera().Target())

	c.SetMode(ModeFirstPerson, nil)
	for range 5 {
		c.UpdateCamera(nil, tick)
	}
	assertVec(t, mgl32.Vec3{0, 1.6, 0.5}, c.Camera().Position())
	assertVec(t, mgl32.Vec3{0, 1.6, 1.5}, c.Camera().Target())

	c.SetMode(ModeThirdPerson, nil)
	c.UpdateCamera(nil, tick)
	assertVec(t, mgl32.Vec3{-8, 5, -8}, c.Camera().Position())
}

func TestThirdPersonFollowConverges(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar(avatar.WithPosition(mgl32.Vec3{10, 0, 10}))

	c.UpdateCamera(av, tick)
	first := c.Orbit().Target()
	assert.InDelta(t, 1, first.X(), 1e-3, "one tick moves a tenth of the way")

	for range 300 {
		c.UpdateCamera(av, tick)
	}
	assertVec(t, mgl32.Vec3{10, 1, 10}, c.Orbit().Target())
	assertVec(t, c.Orbit().Position(), c.Camera().Position())
}

func TestFirstPersonSmoothingOff(t *testing.T) {
	tuning := DefaultTuning()
	tuning.FirstPersonSmoothing = false
	c, _, _ := newTestController(t, WithTuning(tuning))
	av := avatar.NewAvatar()

	c.SetMode(ModeFirstPerson, av)
	av.SetPosition(mgl32.Vec3{5, 0, 0})
	c.UpdateCamera(av, tick)
	assertVec(t, mgl32.Vec3{5, 1.6, 0.5}, c.Camera().Position())
}

func TestPointerLockClickAndDenied(t *testing.T) {
	c, s, h := newTestController(t)
	av := avatar.NewAvatar()

	assert.NoError(t, c.RequestPointerLock(), "ignored in third person")
	assert.False(t, s.captured)

	c.SetMode(ModeFirstPerson, av)
	s.deny = true
	s.click()
	assert.Equal(t, ModeFirstPerson, c.Mode())
	assert.False(t, c.PointerLock().IsLocked())
	assert.True(t, h.visible, "hint stays when the lock is denied")
	assert.ErrorIs(t, c.RequestPointerLock(), camera.ErrPointerLockDenied)

	s.deny = false
	s.click()
	assert.True(t, c.PointerLock().IsLocked())
	assert.True(t, s.captured)
	assert.False(t, h.visible)

	assert.True(t, c.ReleasePointerLock())
	assert.False(t, s.captured)
	assert.True(t, h.visible)
	assert.False(t, c.ReleasePointerLock())
}

func TestPointerLockChangeFromPlatform(t *testing.T) {
	c, _, h := newTestController(t)
	c.SetMode(ModeFirstPerson, nil)
	require.NoError(t, c.RequestPointerLock())
	require.False(t, h.visible)

	c.HandlePointerLockChange(false)
	assert.False(t, c.PointerLock().IsLocked())
	assert.True(t, h.visible)
}

func TestLeavingFirstPersonUnlocks(t *testing.T) {
	c, s, _ := newTestController(t)
	c.SetMode(ModeFirstPerson, nil)
	require.NoError(t, c.RequestPointerLock())

	c.SetMode(ModeThirdPerson, nil)
	assert.False(t, s.captured)
	assert.False(t, c.PointerLock().IsLocked())
	assert.False(t, c.PointerLock().Connected())
}

func TestMouseLookPitchClamp(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar()
	c.SetMode(ModeFirstPerson, av)

	c.HandleMouseDelta(0, -100, false)
	assert.Zero(t, c.PointerLock().Pitch(), "no look without a lock")

	require.NoError(t, c.RequestPointerLock())
	limit := mgl32.DegToRad(85)
	for _, dy := range []float32{-5000, 300, 9000, -20, -40000} {
		c.HandleMouseDelta(1, dy, false)
		c.UpdateCamera(av, tick)
		assert.LessOrEqual(t, c.PointerLock().Pitch(), limit)
		assert.GreaterOrEqual(t, c.PointerLock().Pitch(), -limit)
	}
	assert.InDelta(t, limit, c.PointerLock().Pitch(), 1e-5, "moving up looks up")
}

func TestSteerWithCameraFollowsLook(t *testing.T) {
	c, _, _ := newTestController(t)
	av := avatar.NewAvatar()
	c.SetMode(ModeFirstPerson, av)
	require.NoError(t, c.RequestPointerLock())

	c.PointerLock().SetOrientation(mgl32.DegToRad(90), 0)
	c.UpdateAvatar(av, input.Command{Forward: 1, Strafe: 1}, 1)

	assert.InDelta(t, mgl32.DegToRad(90), av.Yaw(), 1e-5)
	// forward is +X at yaw 90 and right is +Z; the diagonal is normalized
	step := float32(6 / math.Sqrt2)
	assertVec(t, mgl32.Vec3{step, 0, step}, av.Position())
}

func TestSteerWithAvatarConfinesLook(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Steering = SteerWithAvatar
	c, _, _ := newTestController(t, WithTuning(tuning))
	av := avatar.NewAvatar(avatar.WithYaw(0.5))
	c.SetMode(ModeFirstPerson, av)
	require.NoError(t, c.RequestPointerLock())
	assert.False(t, c.Strafing())

	c.HandleMouseDelta(-100000, 0, false)
	assert.InDelta(t, tuning.YawWindow, common.AngleDelta(c.PointerLock().Yaw(), 0.5), 1e-4)

	c.UpdateAvatar(av, input.Command{Turn: -1}, 0.5)
	assert.InDelta(t, 1.1, av.Yaw(), 1e-5, "lateral input still turns the avatar")
}

func TestOrbitDragAndScroll(t *testing.T) {
	c, _, _ := newTestController(t)
	az := c.Orbit().Azimuth()
	r := c.Orbit().Radius()

	c.HandleMouseDelta(100, 0, false)
	c.UpdateCamera(nil, tick)
	assert.Equal(t, az, c.Orbit().Azimuth(), "no drag no orbit")

	c.HandleScroll(2)
	assert.InDelta(t, r-2, c.Orbit().Radius(), 1e-4)

	c.SetMode(ModeFirstPerson, nil)
	c.HandleScroll(2)
	assert.InDelta(t, r-2, c.Orbit().Radius(), 1e-4, "scroll ignored in first person")
}

func TestSetTuningAppliesPitchLimit(t *testing.T) {
	c, _, _ := newTestController(t)
	tuning := c.Tuning()
	tuning.PitchLimit = 0.5
	c.SetTuning(tuning)
	assert.Equal(t, float32(0.5), c.PointerLock().PitchLimit())
}

func TestParseSteering(t *testing.T) {
	s, err := ParseSteering("Avatar")
	require.NoError(t, err)
	assert.Equal(t, SteerWithAvatar, s)

	s, err = ParseSteering("")
	require.NoError(t, err)
	assert.Equal(t, SteerWithCamera, s)

	_, err = ParseSteering("tank")
	assert.Error(t, err)
	assert.Equal(t, "first-person", ModeFirstPerson.String())
}
