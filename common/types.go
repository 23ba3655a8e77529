// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds holds the half-extents of the walkable area on the X and Z axes.
// The area is centered on the world origin.
type Bounds struct {
	// X is the maximum absolute X coordinate.
	X float32
	// Z is the maximum absolute Z coordinate.
	Z float32
}

// ClampPosition restricts the X and Z components of p to the bounds. Y is left untouched.
// The sign of a half-extent is ignored; a zero half-extent pins that axis to the origin.
//
// Parameters:
//   - p: the position to clamp
//
// Returns:
//   - mgl32.Vec3: the clamped position
func (b Bounds) ClampPosition(p mgl32.Vec3) mgl32.Vec3 {
	x, z := math32.Abs(b.X), math32.Abs(b.Z)
	p[0] = Clamp(p[0], -x, x)
	p[2] = Clamp(p[2], -z, z)
	return p
}

// Contains reports whether p lies within the bounds on X and Z.
func (b Bounds) Contains(p mgl32.Vec3) bool {
	x, z := math32.Abs(b.X), math32.Abs(b.Z)
	return p[0] >= -x && p[0] <= x && p[2] >= -z && p[2] <= z
}

// Asset describes the capabilities of a loaded avatar model that the simulation queries.
// Implementations come from the asset loader or from the procedural placeholder.
type Asset interface {
	// Name returns the asset identifier (usually its source path).
	//
	// Returns:
	//   - string: the asset name
	Name() string

	// HasAnimation reports whether the asset carries at least one animation clip.
	//
	// Returns:
	//   - bool: true if animated
	HasAnimation() bool

	// ListMeshes returns the names of the meshes that make up the asset, in document order.
	//
	// Returns:
	//   - []string: mesh names
	ListMeshes() []string
}
