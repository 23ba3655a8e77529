package controller

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
)

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controllerImpl)

// WithTuning sets the movement and camera parameters.
//
// Parameters:
//   - t: the tuning to use
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTuning(t Tuning) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.tuning = t
	}
}

// WithCamera sets the camera the controller writes its pose to.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithCamera(cam camera.Camera) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.cam = cam
	}
}

// WithOrbitControl sets the third-person rig.
//
// Parameters:
//   - oc: the orbit control
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithOrbitControl(oc camera.OrbitControl) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.orbit = oc
	}
}

// WithPointerLockControl sets the first-person rig.
//
// Parameters:
//   - pc: the pointer-lock control
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPointerLockControl(pc camera.PointerLockControl) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pointer = pc
	}
}

// WithSurface sets the render surface used for clicks and pointer capture.
//
// Parameters:
//   - s: the surface
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSurface(s camera.Surface) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.surface = s
	}
}

// WithHintDisplay sets where the pointer-lock hint is shown.
//
// Parameters:
//   - h: the hint display
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithHintDisplay(h camera.HintDisplay) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.hint = h
	}
}

// WithLogger sets the logger for mode changes and pointer-lock failures.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.logger = logger
	}
}
