package celestial

import "slices"

type systemConfig struct {
	bodies []Body
	speed  float32
}

// SystemBuilderOption is a functional option for configuring a System via NewSystem.
type SystemBuilderOption func(*systemConfig)

// WithBodies replaces the default bodies. Parents must be listed before their children.
//
// Parameters:
//   - bodies: the bodies to simulate
//
// Returns:
//   - SystemBuilderOption: option function to apply
func WithBodies(bodies ...Body) SystemBuilderOption {
	return func(c *systemConfig) {
		c.bodies = slices.Clone(bodies)
		if c.bodies == nil {
			c.bodies = []Body{}
		}
	}
}

// WithSpeed sets the initial time scale.
//
// Parameters:
//   - speed: the time scale, 1 is real time
//
// Returns:
//   - SystemBuilderOption: option function to apply
func WithSpeed(speed float32) SystemBuilderOption {
	return func(c *systemConfig) {
		c.speed = max(speed, 0)
	}
}
