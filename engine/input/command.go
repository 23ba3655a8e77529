package input

// Command is the per-tick movement intent consumed by the locomotion controller.
// Every field lies in [-1, 1].
type Command struct {
	// Forward moves along the facing direction; negative moves backward.
	Forward float32
	// Turn rotates the avatar; positive turns right (yaw decreases).
	Turn float32
	// Strafe moves sideways; positive moves right.
	Strafe float32
	// Vertical is up/down thrust for free flight.
	Vertical float32
}

// IsZero reports whether the command carries no intent at all.
func (c Command) IsZero() bool {
	return c == Command{}
}
