package input

import (
	"sync"

	"github.com/chewxy/math32"
)

type joystickImpl struct {
	mu *sync.Mutex

	radius   float32
	deadZone float32

	active bool
	origin [2]float32

	// x, y are the normalized knob offsets, screen-space (y grows downward).
	x, y float32
}

// Joystick is a virtual thumbstick driven either by touch-style gestures in client
// coordinates or by normalized gamepad axes. Displacement is clamped to the radius
// with its angle preserved, divided by the radius, and zeroed inside the dead zone.
type Joystick interface {
	// Start begins a gesture at the given client coordinates.
	//
	// Parameters:
	//   - x, y: client coordinates of the touch point
	Start(x, y float32)

	// Move updates the knob from the current client coordinates. Ignored if no gesture is active.
	//
	// Parameters:
	//   - x, y: client coordinates of the touch point
	Move(x, y float32)

	// End finishes the gesture and recenters the knob.
	End()

	// SetAxes sets the knob from already normalized axes, as reported by gamepads.
	// Values are clamped to the unit circle and filtered by the dead zone.
	//
	// Parameters:
	//   - x: horizontal axis, positive right
	//   - y: vertical axis, positive down
	SetAxes(x, y float32)

	// Active reports whether a touch gesture is in progress.
	//
	// Returns:
	//   - bool: true while between Start and End
	Active() bool

	// Axes returns the normalized knob offset in screen space.
	//
	// Returns:
	//   - x, y: offsets in [-1, 1], y positive down
	Axes() (x, y float32)

	// Intent converts the knob offset into movement intent.
	//
	// Returns:
	//   - forward: positive when the knob is pushed up
	//   - lateral: positive when the knob is pushed right
	Intent() (forward, lateral float32)

	// Radius returns the maximum knob displacement in client units.
	//
	// Returns:
	//   - float32: the radius
	Radius() float32

	// DeadZone returns the normalized magnitude below which input is ignored.
	//
	// Returns:
	//   - float32: the dead zone in [0, 1)
	DeadZone() float32
}

var _ Joystick = &joystickImpl{}

// NewJoystick creates a joystick with a radius of 50 client units and a 10% dead zone.
//
// Parameters:
//   - options: functional options to configure the joystick
//
// Returns:
//   - Joystick: the newly created joystick
func NewJoystick(options ...JoystickBuilderOption) Joystick {
	j := &joystickImpl{
		mu:       &sync.Mutex{},
		radius:   50,
		deadZone: 0.1,
	}
	for _, option := range options {
		option(j)
	}
	if j.radius <= 0 {
		j.radius = 50
	}
	return j
}

func (j *joystickImpl) Start(x, y float32) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.active = true
	j.origin = [2]float32{x, y}
	j.x, j.y = 0, 0
}

func (j *joystickImpl) Move(x, y float32) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.active {
		return
	}
	j.set((x-j.origin[0])/j.radius, (y-j.origin[1])/j.radius)
}

func (j *joystickImpl) End() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.active = false
	j.x, j.y = 0, 0
}

func (j *joystickImpl) SetAxes(x, y float32) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.set(x, y)
}

// set stores a normalized displacement after capping it to the unit circle and
// applying the dead zone. Caller must hold the mutex.
func (j *joystickImpl) set(nx, ny float32) {
	mag := math32.Hypot(nx, ny)
	if mag < j.deadZone || mag == 0 {
		j.x, j.y = 0, 0
		return
	}
	if mag > 1 {
		nx /= mag
		ny /= mag
	}
	j.x, j.y = nx, ny
}

func (j *joystickImpl) Active() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.active
}

func (j *joystickImpl) Axes() (x, y float32) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.x, j.y
}

func (j *joystickImpl) Intent() (forward, lateral float32) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return -j.y, j.x
}

func (j *joystickImpl) Radius() float32 {
	return j.radius
}

func (j *joystickImpl) DeadZone() float32 {
	return j.deadZone
}
