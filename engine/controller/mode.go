package controller

import (
	"fmt"
	"strings"
)

// Mode is the active camera mode.
type Mode int

const (
	// ModeThirdPerson orbits the camera around the avatar. This is the initial mode.
	ModeThirdPerson Mode = iota
	// ModeFirstPerson places the camera at the avatar's eyes with pointer-lock mouse look.
	ModeFirstPerson
)

func (m Mode) String() string {
	switch m {
	case ModeThirdPerson:
		return "third-person"
	case ModeFirstPerson:
		return "first-person"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Steering selects how lateral input is interpreted in first-person mode.
type Steering int

const (
	// SteerWithCamera slaves the avatar yaw to the look yaw, moves relative to the camera
	// and turns lateral input into strafing. Yaw is unclamped.
	SteerWithCamera Steering = iota
	// SteerWithAvatar keeps turning the avatar with lateral input as in third person,
	// while the look yaw is confined to a window around the heading at mode entry.
	SteerWithAvatar
)

func (s Steering) String() string {
	switch s {
	case SteerWithCamera:
		return "camera"
	case SteerWithAvatar:
		return "avatar"
	default:
		return fmt.Sprintf("Steering(%d)", int(s))
	}
}

// ParseSteering parses "camera" or "avatar" (case-insensitive). An empty string yields SteerWithCamera.
//
// Parameters:
//   - s: the steering name
//
// Returns:
//   - Steering: the parsed value
//   - error: error if the name is unknown
func ParseSteering(s string) (Steering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "camera":
		return SteerWithCamera, nil
	case "avatar":
		return SteerWithAvatar, nil
	default:
		return SteerWithCamera, fmt.Errorf("unknown steering mode %q", s)
	}
}
