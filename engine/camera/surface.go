package camera

import "errors"

var (
	// ErrPointerLockDenied is returned when the platform refuses to capture the pointer,
	// for example because the window does not have focus.
	ErrPointerLockDenied = errors.New("pointer lock denied")

	// ErrNoSurface is returned when a pointer lock is requested before a surface is connected.
	ErrNoSurface = errors.New("pointer lock control is not connected to a surface")
)

// Surface is the render surface the camera controls attach to.
// It delivers clicks and can capture or release the pointer.
type Surface interface {
	// AddClickListener registers a function called on every primary-button click.
	//
	// Parameters:
	//   - listener: the function to call
	//
	// Returns:
	//   - int: an id for RemoveClickListener
	AddClickListener(listener func()) int

	// RemoveClickListener unregisters a click listener. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the id returned by AddClickListener
	RemoveClickListener(id int)

	// RequestPointerLock captures and hides the pointer so mouse motion is reported as raw deltas.
	//
	// Returns:
	//   - error: ErrPointerLockDenied (possibly wrapped) if the platform refuses
	RequestPointerLock() error

	// ReleasePointerLock releases a captured pointer. No-op if not captured.
	ReleasePointerLock()
}

// HintDisplay shows a short on-screen instruction, such as "click to look around".
type HintDisplay interface {
	// ShowHint displays the hint text, replacing any previous hint.
	//
	// Parameters:
	//   - text: the hint to show
	ShowHint(text string)

	// HideHint removes the hint.
	HideHint()
}
