package camera

// PointerLockControlOption is a functional option for configuring a PointerLockControl.
type PointerLockControlOption func(*pointerLockControlImpl)

// WithLookSensitivity sets the mouse look sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of pointer movement
//
// Returns:
//   - PointerLockControlOption: functional option to set the sensitivity
func WithLookSensitivity(sensitivity float32) PointerLockControlOption {
	return func(pc *pointerLockControlImpl) {
		pc.sensitivity = sensitivity
	}
}

// WithPitchLimit sets the maximum absolute pitch.
//
// Parameters:
//   - limit: pitch limit in radians
//
// Returns:
//   - PointerLockControlOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) PointerLockControlOption {
	return func(pc *pointerLockControlImpl) {
		pc.pitchLimit = limit
	}
}
