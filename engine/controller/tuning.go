package controller

import (
	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultHint is the text shown while first-person mode waits for a pointer lock.
const DefaultHint = "Click to look around (Esc releases the mouse, C switches view)"

// Tuning holds the movement and camera parameters of the controller.
// Rates are per second; Smoothing is a per-frame factor at 60Hz.
type Tuning struct {
	// MoveSpeed is the walking speed in units per second.
	MoveSpeed float32
	// TurnRate is the avatar turn rate in radians per second.
	TurnRate float32
	// VerticalSpeed is the free-flight climb rate in units per second.
	VerticalSpeed float32
	// FreeFlight enables vertical thrust.
	FreeFlight bool
	// Bounds is the walkable area.
	Bounds common.Bounds

	// HeadHeight lifts the third-person orbit target above the avatar origin.
	HeadHeight float32
	// EyeHeight lifts the first-person eye above the avatar origin.
	EyeHeight float32
	// EyeForward pushes the first-person eye ahead of the avatar along its facing.
	EyeForward float32
	// Smoothing is the per-frame lerp factor for camera follow.
	Smoothing float32
	// FirstPersonSmoothing lerps the first-person eye; when false it is set directly.
	FirstPersonSmoothing bool

	// Steering selects first-person lateral input handling.
	Steering Steering
	// YawWindow is the half-width of the first-person look window in radians when steering
	// with the avatar. 0 leaves yaw unclamped.
	YawWindow float32
	// PitchLimit is the maximum absolute first-person pitch in radians.
	PitchLimit float32

	// ThirdPersonOffset places the orbit camera relative to the avatar when leaving first person.
	ThirdPersonOffset mgl32.Vec3
	// DefaultThirdPersonPosition and DefaultThirdPersonTarget are the orbit pose used without an avatar.
	DefaultThirdPersonPosition mgl32.Vec3
	DefaultThirdPersonTarget   mgl32.Vec3
	// DefaultEyePosition is the first-person eye used without an avatar.
	DefaultEyePosition mgl32.Vec3

	// Hint is the pointer-lock activation hint.
	Hint string
}

// DefaultTuning returns the stock tuning: at a 60Hz tick the avatar turns 0.02 rad and
// walks 0.1 units per tick inside a +-50 area, and the camera follows with a 0.1 lerp.
//
// Returns:
//   - Tuning: the default parameters
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:     6,
		TurnRate:      1.2,
		VerticalSpeed: 6,
		Bounds:        common.Bounds{X: 50, Z: 50},

		HeadHeight:           1,
		EyeHeight:            1.6,
		EyeForward:           0.5,
		Smoothing:            0.1,
		FirstPersonSmoothing: true,

		Steering:   SteerWithCamera,
		YawWindow:  mgl32.DegToRad(90),
		PitchLimit: mgl32.DegToRad(85),

		ThirdPersonOffset:          mgl32.Vec3{-8, 5, -8},
		DefaultThirdPersonPosition: mgl32.Vec3{-8, 5, -8},
		DefaultThirdPersonTarget:   mgl32.Vec3{0, 1, 0},
		DefaultEyePosition:         mgl32.Vec3{0, 1.6, 0.5},

		Hint: DefaultHint,
	}
}

// eyePosition computes the first-person eye for an avatar transform.
func (t Tuning) eyePosition(position mgl32.Vec3, yaw float32) mgl32.Vec3 {
	return position.Add(mgl32.Vec3{0, t.EyeHeight, 0}).Add(common.Forward(yaw).Mul(t.EyeForward))
}

// headPosition computes the third-person orbit target for an avatar position.
func (t Tuning) headPosition(position mgl32.Vec3) mgl32.Vec3 {
	return position.Add(mgl32.Vec3{0, t.HeadHeight, 0})
}
