package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControlOption is a functional option for configuring an OrbitControl.
type OrbitControlOption func(*orbitControlImpl)

// WithPlacement sets the initial camera position and pivot, deriving the spherical coordinates.
//
// Parameters:
//   - position: camera position
//   - target: pivot point
//
// Returns:
//   - OrbitControlOption: functional option to set the placement
func WithPlacement(position, target mgl32.Vec3) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.placeAt(position, target)
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControlOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians (0 keeps the camera above the target's horizon)
//   - max: maximum vertical angle in radians (prevents flipping over)
//
// Returns:
//   - OrbitControlOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithMouseSensitivity sets the drag sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of drag
//
// Returns:
//   - OrbitControlOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: world units per scroll step
//
// Returns:
//   - OrbitControlOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.zoomSpeed = speed
	}
}

// WithDamping sets the share of pending rotation applied per Update.
// 0 disables inertia so drags apply immediately.
//
// Parameters:
//   - damping: factor in [0, 1]
//
// Returns:
//   - OrbitControlOption: functional option to set damping
func WithDamping(damping float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.damping = damping
	}
}

// WithEnabled sets whether the control starts enabled.
//
// Parameters:
//   - enabled: true to accept user input
//
// Returns:
//   - OrbitControlOption: functional option to set the enabled state
func WithEnabled(enabled bool) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.enabled = enabled
	}
}
