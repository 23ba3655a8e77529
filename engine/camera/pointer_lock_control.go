package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/go-gl/mathgl/mgl32"
)

type pointerLockControlImpl struct {
	mu *sync.Mutex

	surface Surface
	locked  bool

	yaw   float32
	pitch float32

	sensitivity float32
	pitchLimit  float32

	// yawCenter and yawWindow bound yaw to [center-window, center+window]; window 0 disables it.
	yawCenter float32
	yawWindow float32
}

// PointerLockControl is the first-person look rig. While the pointer is locked, raw mouse
// deltas rotate a yaw/pitch pair; pitch is always clamped and yaw can optionally be
// confined to a window around a center heading.
type PointerLockControl interface {
	// Connect attaches the control to a surface. A previous surface is disconnected first.
	//
	// Parameters:
	//   - surface: the surface to capture the pointer on
	Connect(surface Surface)

	// Disconnect detaches from the surface, releasing the pointer if locked.
	Disconnect()

	// Connected reports whether a surface is attached.
	//
	// Returns:
	//   - bool: true if connected
	Connected() bool

	// Lock asks the surface to capture the pointer.
	//
	// Returns:
	//   - error: ErrNoSurface if not connected, or a wrapped ErrPointerLockDenied
	Lock() error

	// Unlock releases the pointer if locked.
	Unlock()

	// IsLocked reports whether the pointer is captured.
	//
	// Returns:
	//   - bool: true if locked
	IsLocked() bool

	// SetLocked records a lock state change reported by the platform, such as losing focus.
	//
	// Parameters:
	//   - locked: the platform lock state
	SetLocked(locked bool)

	// Rotate applies a mouse delta while locked. Moving right turns right, moving down looks down.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Rotate(dx, dy float32)

	// Yaw returns the look heading in radians (0 faces +Z).
	//
	// Returns:
	//   - float32: heading about +Y
	Yaw() float32

	// Pitch returns the look elevation in radians, positive up.
	//
	// Returns:
	//   - float32: elevation
	Pitch() float32

	// SetOrientation sets yaw and pitch, applying the configured clamps.
	//
	// Parameters:
	//   - yaw: heading in radians
	//   - pitch: elevation in radians
	SetOrientation(yaw, pitch float32)

	// SetYawWindow confines yaw to center +/- halfWidth. A halfWidth of 0 removes the window.
	//
	// Parameters:
	//   - center: the heading the window is centered on
	//   - halfWidth: half the window size in radians
	SetYawWindow(center, halfWidth float32)

	// SetPitchLimit sets the maximum absolute pitch.
	//
	// Parameters:
	//   - limit: pitch limit in radians
	SetPitchLimit(limit float32)

	// PitchLimit returns the maximum absolute pitch.
	//
	// Returns:
	//   - float32: pitch limit in radians
	PitchLimit() float32

	// Direction returns the unit look vector.
	//
	// Returns:
	//   - mgl32.Vec3: look direction
	Direction() mgl32.Vec3
}

var _ PointerLockControl = &pointerLockControlImpl{}

// NewPointerLockControl creates an unconnected control looking along +Z with pitch limited to 85 degrees.
//
// Parameters:
//   - options: functional options to configure the control
//
// Returns:
//   - PointerLockControl: the newly created control
func NewPointerLockControl(options ...PointerLockControlOption) PointerLockControl {
	pc := &pointerLockControlImpl{
		mu:          &sync.Mutex{},
		sensitivity: 0.002,
		pitchLimit:  mgl32.DegToRad(85),
	}
	for _, option := range options {
		option(pc)
	}
	return pc
}

// clamp applies the pitch limit and the yaw window. Caller must hold the mutex.
func (pc *pointerLockControlImpl) clamp() {
	pc.pitch = common.Clamp(pc.pitch, -pc.pitchLimit, pc.pitchLimit)
	if pc.yawWindow > 0 {
		d := common.Clamp(common.AngleDelta(pc.yaw, pc.yawCenter), -pc.yawWindow, pc.yawWindow)
		pc.yaw = pc.yawCenter + d
	}
	pc.yaw = common.WrapAngle(pc.yaw)
}

func (pc *pointerLockControlImpl) Connect(surface Surface) {
	pc.Disconnect()
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.surface = surface
}

// Surface calls happen outside the mutex.
func (pc *pointerLockControlImpl) Disconnect() {
	pc.mu.Lock()
	surface, locked := pc.surface, pc.locked
	pc.locked = false
	pc.surface = nil
	pc.mu.Unlock()

	if surface != nil && locked {
		surface.ReleasePointerLock()
	}
}

func (pc *pointerLockControlImpl) Connected() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.surface != nil
}

func (pc *pointerLockControlImpl) Lock() error {
	pc.mu.Lock()
	surface, locked := pc.surface, pc.locked
	pc.mu.Unlock()

	if surface == nil {
		return ErrNoSurface
	}
	if locked {
		return nil
	}
	if err := surface.RequestPointerLock(); err != nil {
		return fmt.Errorf("lock pointer: %w", err)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.surface == surface {
		pc.locked = true
	}
	return nil
}

func (pc *pointerLockControlImpl) Unlock() {
	pc.mu.Lock()
	surface, locked := pc.surface, pc.locked
	pc.locked = false
	pc.mu.Unlock()

	if locked && surface != nil {
		surface.ReleasePointerLock()
	}
}

func (pc *pointerLockControlImpl) IsLocked() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.locked
}

func (pc *pointerLockControlImpl) SetLocked(locked bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.locked = locked && pc.surface != nil
}

func (pc *pointerLockControlImpl) Rotate(dx, dy float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.locked {
		return
	}
	pc.pitch -= dy * pc.sensitivity
	if pc.yawWindow > 0 {
		// accumulate relative to the center so large deltas cannot wrap past the window
		d := common.AngleDelta(pc.yaw, pc.yawCenter) - dx*pc.sensitivity
		pc.yaw = pc.yawCenter + common.Clamp(d, -pc.yawWindow, pc.yawWindow)
	} else {
		pc.yaw -= dx * pc.sensitivity
	}
	pc.clamp()
}

func (pc *pointerLockControlImpl) Yaw() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.yaw
}

func (pc *pointerLockControlImpl) Pitch() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pitch
}

func (pc *pointerLockControlImpl) SetOrientation(yaw, pitch float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.yaw = yaw
	pc.pitch = pitch
	pc.clamp()
}

func (pc *pointerLockControlImpl) SetYawWindow(center, halfWidth float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.yawCenter = common.WrapAngle(center)
	pc.yawWindow = halfWidth
	pc.clamp()
}

func (pc *pointerLockControlImpl) SetPitchLimit(limit float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.pitchLimit = limit
	pc.clamp()
}

func (pc *pointerLockControlImpl) PitchLimit() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pitchLimit
}

func (pc *pointerLockControlImpl) Direction() mgl32.Vec3 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return common.Direction(pc.yaw, pc.pitch)
}
