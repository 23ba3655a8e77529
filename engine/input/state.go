package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
)

// Axis identifies one signed intent axis tracked by the input state.
type Axis int

const (
	// AxisForward is forward (+1) / backward (-1) intent.
	AxisForward Axis = iota
	// AxisLateral is right (+1) / left (-1) intent. The controller routes it to turn or strafe.
	AxisLateral
	// AxisVertical is up (+1) / down (-1) thrust, used only in free flight.
	AxisVertical

	axisCount
)

// Binding maps a key to a direction on an axis.
type Binding struct {
	// Axis is the axis the key drives.
	Axis Axis
	// Direction is +1 or -1.
	Direction int8
}

// DefaultBindings returns the stock key bindings: WASD and arrows for movement,
// Space and X for vertical thrust.
//
// Returns:
//   - map[uint32]Binding: a fresh binding table keyed by key code
func DefaultBindings() map[uint32]Binding {
	return map[uint32]Binding{
		common.KeyW:     {AxisForward, 1},
		common.KeyUp:    {AxisForward, 1},
		common.KeyS:     {AxisForward, -1},
		common.KeyDown:  {AxisForward, -1},
		common.KeyA:     {AxisLateral, -1},
		common.KeyLeft:  {AxisLateral, -1},
		common.KeyD:     {AxisLateral, 1},
		common.KeyRight: {AxisLateral, 1},
		common.KeySpace: {AxisVertical, 1},
		common.KeyX:     {AxisVertical, -1},
	}
}

type stateImpl struct {
	mu *sync.Mutex

	bindings map[uint32]Binding

	// held keeps the currently pressed keys of each axis in press order.
	held [axisCount][]uint32

	joystick Joystick
}

// State aggregates keyboard and joystick intent into a normalized Command.
// Each axis tracks signed intent from the most recently pressed key that is still held,
// so overlapping opposite keys never leave the axis stuck. The state is sampled by the
// simulation once per tick; events only mutate internal flags.
type State interface {
	// OnKeyDown records a key press. Repeats of an already held key are ignored.
	//
	// Parameters:
	//   - code: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound to an axis
	OnKeyDown(code uint32) bool

	// OnKeyUp records a key release. Releasing a key that is not the active one on its axis
	// leaves the axis unchanged.
	//
	// Parameters:
	//   - code: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound to an axis
	OnKeyUp(code uint32) bool

	// Axis returns the active keyboard direction of an axis.
	//
	// Parameters:
	//   - axis: the axis to query
	//
	// Returns:
	//   - float32: -1, 0 or +1
	Axis(axis Axis) float32

	// Reset releases every held key and ends any joystick gesture.
	Reset()

	// Joystick returns the virtual joystick feeding this state.
	//
	// Returns:
	//   - Joystick: the joystick
	Joystick() Joystick

	// Command samples the combined keyboard and joystick intent.
	//
	// Parameters:
	//   - strafe: if true lateral intent is reported as Strafe, otherwise as Turn
	//
	// Returns:
	//   - Command: the sampled command with every axis in [-1, 1]
	Command(strafe bool) Command
}

var _ State = &stateImpl{}

// NewState creates an input state with the default bindings and a default joystick.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - State: the newly created input state
func NewState(options ...StateBuilderOption) State {
	s := &stateImpl{
		mu:       &sync.Mutex{},
		bindings: DefaultBindings(),
	}
	for _, option := range options {
		option(s)
	}
	if s.joystick == nil {
		s.joystick = NewJoystick()
	}
	return s
}

func (s *stateImpl) OnKeyDown(code uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[code]
	if !ok {
		return false
	}
	for _, k := range s.held[b.Axis] {
		if k == code {
			return true
		}
	}
	s.held[b.Axis] = append(s.held[b.Axis], code)
	return true
}

func (s *stateImpl) OnKeyUp(code uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[code]
	if !ok {
		return false
	}
	s.held[b.Axis], _ = common.RemoveFirst(s.held[b.Axis], code)
	return true
}

func (s *stateImpl) Axis(axis Axis) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axis(axis)
}

// axis returns the direction of the newest held key on the axis.
// Caller must hold the mutex.
func (s *stateImpl) axis(axis Axis) float32 {
	if axis < 0 || axis >= axisCount {
		return 0
	}
	held := s.held[axis]
	if len(held) == 0 {
		return 0
	}
	return float32(s.bindings[held[len(held)-1]].Direction)
}

func (s *stateImpl) Reset() {
	s.mu.Lock()
	for i := range s.held {
		s.held[i] = s.held[i][:0]
	}
	s.mu.Unlock()
	s.joystick.End()
}

func (s *stateImpl) Joystick() Joystick {
	return s.joystick
}

func (s *stateImpl) Command(strafe bool) Command {
	s.mu.Lock()
	forward := s.axis(AxisForward)
	lateral := s.axis(AxisLateral)
	vertical := s.axis(AxisVertical)
	s.mu.Unlock()

	jf, jl := s.joystick.Intent()
	forward = common.ClampUnit(forward + jf)
	lateral = common.ClampUnit(lateral + jl)

	cmd := Command{Forward: forward, Vertical: vertical}
	if strafe {
		cmd.Strafe = lateral
	} else {
		cmd.Turn = lateral
	}
	return cmd
}
