package celestial

import "github.com/go-gl/mathgl/mgl32"

// InfoField is one labelled line of a body's description.
type InfoField struct {
	Key   string
	Value string
}

// Body describes one orbiting (or central) object.
type Body struct {
	// Name identifies the body; it must be unique within a System.
	Name string
	// Parent names the body this one orbits. Empty means the world origin.
	Parent string
	// OrbitRadius is the distance from the parent in world units.
	OrbitRadius float32
	// OrbitRate is the angular speed around the parent in rad/s.
	OrbitRate float32
	// SpinRate is the rotation about the body's own axis in rad/s; negative is retrograde.
	SpinRate float32
	// Tilt is the axial tilt in radians.
	Tilt float32
	// PickRadius is the radius of the sphere used for ray picking.
	PickRadius float32
	// Info holds the labelled description shown when the body is picked.
	Info []InfoField
}

// State is the simulated state of a body.
type State struct {
	Body
	// OrbitAngle is the accumulated orbit angle in radians.
	OrbitAngle float32
	// SpinAngle is the accumulated spin angle in radians.
	SpinAngle float32
	// Position is the world position after the last Advance.
	Position mgl32.Vec3
}

// InfoText renders the info fields as "Key: Value" joined by sep.
//
// Parameters:
//   - sep: the separator placed between fields
//
// Returns:
//   - string: the rendered description
func (b Body) InfoText(sep string) string {
	out := ""
	for i, f := range b.Info {
		if i > 0 {
			out += sep
		}
		out += f.Key + ": " + f.Value
	}
	return out
}
