package input

// StateBuilderOption is a functional option for configuring a State via NewState.
type StateBuilderOption func(*stateImpl)

// JoystickBuilderOption is a functional option for configuring a Joystick via NewJoystick.
type JoystickBuilderOption func(*joystickImpl)

// WithBindings replaces the whole key binding table.
//
// Parameters:
//   - bindings: the binding table keyed by virtual key code
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithBindings(bindings map[uint32]Binding) StateBuilderOption {
	return func(s *stateImpl) {
		s.bindings = make(map[uint32]Binding, len(bindings))
		for k, v := range bindings {
			s.bindings[k] = v
		}
	}
}

// WithBinding adds or replaces a single key binding.
//
// Parameters:
//   - code: the virtual key code
//   - axis: the axis the key drives
//   - direction: +1 or -1
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithBinding(code uint32, axis Axis, direction int8) StateBuilderOption {
	return func(s *stateImpl) {
		s.bindings[code] = Binding{Axis: axis, Direction: direction}
	}
}

// WithJoystick sets the joystick merged into sampled commands.
//
// Parameters:
//   - j: the joystick instance
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithJoystick(j Joystick) StateBuilderOption {
	return func(s *stateImpl) {
		s.joystick = j
	}
}

// WithRadius sets the maximum knob displacement in client units.
//
// Parameters:
//   - radius: displacement that maps to full deflection
//
// Returns:
//   - JoystickBuilderOption: option function to apply
func WithRadius(radius float32) JoystickBuilderOption {
	return func(j *joystickImpl) {
		j.radius = radius
	}
}

// WithDeadZone sets the normalized magnitude below which input is ignored.
//
// Parameters:
//   - deadZone: threshold in [0, 1)
//
// Returns:
//   - JoystickBuilderOption: option function to apply
func WithDeadZone(deadZone float32) JoystickBuilderOption {
	return func(j *joystickImpl) {
		j.deadZone = deadZone
	}
}
