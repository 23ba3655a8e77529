package sim

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/celestial"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/config"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/controller"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/input"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/loader"
)

// SimulationBuilderOption is a functional option for configuring a SimulationContext.
type SimulationBuilderOption func(*simImpl)

// WithInputState sets the input state sampled each tick.
//
// Parameters:
//   - state: the input state
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithInputState(state input.State) SimulationBuilderOption {
	return func(s *simImpl) {
		s.input = state
	}
}

// WithController sets the locomotion and camera controller.
//
// Parameters:
//   - c: the controller
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithController(c controller.Controller) SimulationBuilderOption {
	return func(s *simImpl) {
		s.controller = c
	}
}

// WithSystem sets the celestial system.
//
// Parameters:
//   - system: the celestial system
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithSystem(system celestial.System) SimulationBuilderOption {
	return func(s *simImpl) {
		s.system = system
	}
}

// WithLoader sets the asset loader used by LoadAvatar.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithLoader(l loader.Loader) SimulationBuilderOption {
	return func(s *simImpl) {
		s.loader = l
	}
}

// WithPublisher sets the per-tick snapshot sink.
//
// Parameters:
//   - p: the publisher
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithPublisher(p Publisher) SimulationBuilderOption {
	return func(s *simImpl) {
		s.publisher = p
	}
}

// WithInfoDisplay sets where picked body info is shown.
//
// Parameters:
//   - d: the display
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithInfoDisplay(d camera.HintDisplay) SimulationBuilderOption {
	return func(s *simImpl) {
		s.info = d
	}
}

// WithConfigUpdates sets a channel of reloaded configs applied at the start of a tick.
//
// Parameters:
//   - updates: the channel, typically config.Watcher.Updates()
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithConfigUpdates(updates <-chan config.Config) SimulationBuilderOption {
	return func(s *simImpl) {
		s.configs = updates
	}
}

// WithQuit sets the function called when Escape is pressed with a free pointer.
//
// Parameters:
//   - quit: the quit function
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithQuit(quit func()) SimulationBuilderOption {
	return func(s *simImpl) {
		if quit != nil {
			s.quit = quit
		}
	}
}

// WithViewport sets the initial viewport size used for picking.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithViewport(width, height int) SimulationBuilderOption {
	return func(s *simImpl) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithStartYaw sets the yaw given to avatars installed by LoadAvatar. The default is Pi,
// which faces the avatar down -Z.
//
// Parameters:
//   - yaw: the initial yaw in radians
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithStartYaw(yaw float32) SimulationBuilderOption {
	return func(s *simImpl) {
		s.startYaw = yaw
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SimulationBuilderOption {
	return func(s *simImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
