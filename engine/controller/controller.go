package controller

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/avatar"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type controllerImpl struct {
	mu *sync.Mutex

	mode   Mode
	tuning Tuning

	cam     camera.Camera
	orbit   camera.OrbitControl
	pointer camera.PointerLockControl

	surface camera.Surface
	hint    camera.HintDisplay

	clickID  int
	hasClick bool

	// eye is the smoothed first-person eye position.
	eye mgl32.Vec3
	// yawCenter is the look yaw recorded when first-person mode was entered.
	yawCenter float32

	logger *slog.Logger
}

// Controller advances the avatar and the camera once per tick and owns the
// third-person / first-person camera state machine. The avatar may be nil at any
// time; camera updates then fall back to fixed default poses.
type Controller interface {
	// Mode returns the active camera mode.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// SetMode switches to a mode, running the transition if it differs from the current one.
	// The avatar is read, never modified.
	//
	// Parameters:
	//   - mode: the target mode
	//   - av: the avatar, or nil if not loaded yet
	SetMode(mode Mode, av avatar.Avatar)

	// ToggleMode flips between third-person and first-person.
	//
	// Parameters:
	//   - av: the avatar, or nil if not loaded yet
	//
	// Returns:
	//   - Mode: the new mode
	ToggleMode(av avatar.Avatar) Mode

	// Strafing reports whether lateral input should be sampled as strafe rather than turn.
	//
	// Returns:
	//   - bool: true in first-person mode when steering with the camera
	Strafing() bool

	// UpdateAvatar moves and turns the avatar for one tick, then clamps it to the bounds.
	// A nil avatar is ignored.
	//
	// Parameters:
	//   - av: the avatar, or nil
	//   - cmd: the sampled input command
	//   - dt: tick duration in seconds
	UpdateAvatar(av avatar.Avatar, cmd input.Command, dt float32)

	// UpdateCamera advances the active rig and writes the camera pose.
	//
	// Parameters:
	//   - av: the avatar, or nil to use the default pose
	//   - dt: tick duration in seconds
	UpdateCamera(av avatar.Avatar, dt float32)

	// RequestPointerLock asks for pointer capture in first-person mode. On denial the mode is
	// kept, the pointer stays free and the hint remains visible.
	//
	// Returns:
	//   - error: nil on success or outside first-person mode, otherwise the lock error
	RequestPointerLock() error

	// ReleasePointerLock frees a captured pointer and shows the hint again.
	//
	// Returns:
	//   - bool: true if the pointer was locked
	ReleasePointerLock() bool

	// HandlePointerLockChange syncs a lock state reported by the platform.
	//
	// Parameters:
	//   - locked: whether the pointer is now captured
	HandlePointerLockChange(locked bool)

	// HandleMouseDelta feeds relative pointer motion: mouse look while locked in first person,
	// orbiting while dragging in third person.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - dragging: whether the orbit drag button is held
	HandleMouseDelta(dx, dy float32, dragging bool)

	// HandleScroll zooms the orbit camera in third-person mode.
	//
	// Parameters:
	//   - delta: scroll amount, positive zooms in
	HandleScroll(delta float32)

	// Tuning returns a copy of the current parameters.
	//
	// Returns:
	//   - Tuning: the parameters
	Tuning() Tuning

	// SetTuning replaces the parameters, re-applying look clamps immediately.
	//
	// Parameters:
	//   - t: the new parameters
	SetTuning(t Tuning)

	// Camera returns the camera the controller writes to.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Orbit returns the third-person rig.
	//
	// Returns:
	//   - camera.OrbitControl: the orbit control
	Orbit() camera.OrbitControl

	// PointerLock returns the first-person rig.
	//
	// Returns:
	//   - camera.PointerLockControl: the pointer-lock control
	PointerLock() camera.PointerLockControl
}

var _ Controller = &controllerImpl{}

// NewController creates a controller in third-person mode with DefaultTuning.
// Missing rigs and camera are created with their defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:     &sync.Mutex{},
		mode:   ModeThirdPerson,
		tuning: DefaultTuning(),
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.cam == nil {
		c.cam = camera.NewCamera()
	}
	if c.orbit == nil {
		c.orbit = camera.NewOrbitControl(camera.WithPlacement(c.tuning.DefaultThirdPersonPosition, c.tuning.DefaultThirdPersonTarget))
	}
	if c.pointer == nil {
		c.pointer = camera.NewPointerLockControl()
	}
	c.pointer.SetPitchLimit(c.tuning.PitchLimit)
	c.eye = c.tuning.DefaultEyePosition
	c.cam.SetPose(c.orbit.Position(), c.orbit.Target())
	return c
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) SetMode(mode Mode, av avatar.Avatar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode == c.mode {
		return
	}
	switch mode {
	case ModeFirstPerson:
		c.enterFirstPerson(av)
	case ModeThirdPerson:
		c.enterThirdPerson(av)
	default:
		return
	}
	c.mode = mode
	c.logger.Info("camera mode changed", "mode", mode.String(), "avatar", av != nil)
}

func (c *controllerImpl) ToggleMode(av avatar.Avatar) Mode {
	next := ModeFirstPerson
	if c.Mode() == ModeFirstPerson {
		next = ModeThirdPerson
	}
	c.SetMode(next, av)
	return next
}

// enterFirstPerson disables orbiting, connects the pointer-lock rig, snaps the eye to the
// avatar and arms the click-to-lock listener. Caller must hold the mutex.
func (c *controllerImpl) enterFirstPerson(av avatar.Avatar) {
	t := c.tuning
	c.orbit.SetEnabled(false)

	c.pointer.Disconnect()
	if c.surface != nil {
		c.pointer.Connect(c.surface)
	}

	var yaw float32
	eye := t.DefaultEyePosition
	if av != nil {
		yaw = av.Yaw()
		eye = t.eyePosition(av.Position(), yaw)
	}
	c.yawCenter = yaw
	c.pointer.SetYawWindow(0, 0)
	c.pointer.SetOrientation(yaw, 0)
	c.applyYawWindow()

	c.eye = eye
	c.cam.SetPose(eye, eye.Add(c.pointer.Direction()))

	if c.surface != nil && !c.hasClick {
		c.clickID = c.surface.AddClickListener(c.onSurfaceClick)
		c.hasClick = true
	}
	c.showHint()
}

// enterThirdPerson releases the pointer, removes the click listener and places the orbit
// camera behind and above the avatar. Caller must hold the mutex.
func (c *controllerImpl) enterThirdPerson(av avatar.Avatar) {
	t := c.tuning
	c.pointer.Unlock()
	c.pointer.Disconnect()
	if c.hasClick && c.surface != nil {
		c.surface.RemoveClickListener(c.clickID)
	}
	c.hasClick = false
	c.hideHint()

	position, target := t.DefaultThirdPersonPosition, t.DefaultThirdPersonTarget
	if av != nil {
		p := av.Position()
		position = p.Add(t.ThirdPersonOffset)
		target = t.headPosition(p)
	}
	c.orbit.PlaceAt(position, target)
	c.orbit.SetEnabled(true)
	c.cam.SetPose(c.orbit.Position(), c.orbit.Target())
}

// applyYawWindow confines the look yaw when steering with the avatar. Caller must hold the mutex.
func (c *controllerImpl) applyYawWindow() {
	if c.tuning.Steering == SteerWithAvatar && c.tuning.YawWindow > 0 {
		c.pointer.SetYawWindow(c.yawCenter, c.tuning.YawWindow)
		return
	}
	c.pointer.SetYawWindow(0, 0)
}

func (c *controllerImpl) onSurfaceClick() {
	_ = c.RequestPointerLock()
}

func (c *controllerImpl) showHint() {
	if c.hint != nil {
		c.hint.ShowHint(c.tuning.Hint)
	}
}

func (c *controllerImpl) hideHint() {
	if c.hint != nil {
		c.hint.HideHint()
	}
}

func (c *controllerImpl) Strafing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode == ModeFirstPerson && c.tuning.Steering == SteerWithCamera
}

func (c *controllerImpl) UpdateAvatar(av avatar.Avatar, cmd input.Command, dt float32) {
	if av == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	c.mu.Lock()
	t, mode := c.tuning, c.mode
	c.mu.Unlock()

	position := av.Position()
	yaw := av.Yaw()

	if mode == ModeFirstPerson && t.Steering == SteerWithCamera {
		yaw = c.pointer.Yaw()
		move := common.Forward(yaw).Mul(cmd.Forward).Add(common.Right(yaw).Mul(cmd.Strafe))
		if l := move.Len(); l > 1 {
			move = move.Mul(1 / l)
		}
		position = position.Add(move.Mul(t.MoveSpeed * dt))
	} else {
		yaw -= cmd.Turn * t.TurnRate * dt
		position = position.Add(common.Forward(yaw).Mul(cmd.Forward * t.MoveSpeed * dt))
	}

	if t.FreeFlight {
		position[1] += cmd.Vertical * t.VerticalSpeed * dt
	}

	av.SetPosition(t.Bounds.ClampPosition(position))
	av.SetYaw(common.WrapAngle(yaw))
}

func (c *controllerImpl) UpdateCamera(av avatar.Avatar, dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tuning
	alpha := common.SmoothingAlpha(t.Smoothing, dt)

	switch c.mode {
	case ModeThirdPerson:
		if av == nil {
			c.orbit.PlaceAt(t.DefaultThirdPersonPosition, t.DefaultThirdPersonTarget)
		} else {
			c.orbit.SetTarget(common.LerpVec3(c.orbit.Target(), t.headPosition(av.Position()), alpha))
		}
		c.orbit.Update()
		c.cam.SetPose(c.orbit.Position(), c.orbit.Target())

	case ModeFirstPerson:
		eye := t.DefaultEyePosition
		if av != nil {
			desired := t.eyePosition(av.Position(), av.Yaw())
			if t.FirstPersonSmoothing {
				eye = common.LerpVec3(c.eye, desired, alpha)
			} else {
				eye = desired
			}
		}
		c.eye = eye
		c.pointer.SetOrientation(c.pointer.Yaw(), c.pointer.Pitch())
		c.cam.SetPose(eye, eye.Add(c.pointer.Direction()))
	}
}

func (c *controllerImpl) RequestPointerLock() error {
	if c.Mode() != ModeFirstPerson {
		return nil
	}
	if err := c.pointer.Lock(); err != nil {
		c.logger.Warn("pointer lock request failed", "error", err)
		c.mu.Lock()
		c.showHint()
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.hideHint()
	c.mu.Unlock()
	return nil
}

func (c *controllerImpl) ReleasePointerLock() bool {
	if !c.pointer.IsLocked() {
		return false
	}
	c.pointer.Unlock()
	c.mu.Lock()
	if c.mode == ModeFirstPerson {
		c.showHint()
	}
	c.mu.Unlock()
	return true
}

func (c *controllerImpl) HandlePointerLockChange(locked bool) {
	c.pointer.SetLocked(locked)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeFirstPerson {
		return
	}
	if c.pointer.IsLocked() {
		c.hideHint()
	} else {
		c.showHint()
	}
}

func (c *controllerImpl) HandleMouseDelta(dx, dy float32, dragging bool) {
	switch c.Mode() {
	case ModeFirstPerson:
		c.pointer.Rotate(dx, dy)
	case ModeThirdPerson:
		if dragging {
			c.orbit.Rotate(dx, dy)
		}
	}
}

func (c *controllerImpl) HandleScroll(delta float32) {
	if c.Mode() == ModeThirdPerson {
		c.orbit.Zoom(delta)
	}
}

func (c *controllerImpl) Tuning() Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tuning
}

func (c *controllerImpl) SetTuning(t Tuning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tuning = t
	c.pointer.SetPitchLimit(t.PitchLimit)
	if c.mode == ModeFirstPerson {
		c.applyYawWindow()
	}
}

func (c *controllerImpl) Camera() camera.Camera {
	return c.cam
}

func (c *controllerImpl) Orbit() camera.OrbitControl {
	return c.orbit
}

func (c *controllerImpl) PointerLock() camera.PointerLockControl {
	return c.pointer
}
