package loader

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*modelImpl)

// WithName sets the model name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithName(name string) ModelBuilderOption {
	return func(m *modelImpl) {
		m.name = name
	}
}

// WithPath sets the source path of the model.
//
// Parameters:
//   - path: the file path or reader name
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithPath(path string) ModelBuilderOption {
	return func(m *modelImpl) {
		m.path = path
	}
}

// WithMeshes sets the mesh names.
//
// Parameters:
//   - names: the mesh names in document order
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithMeshes(names ...string) ModelBuilderOption {
	return func(m *modelImpl) {
		m.meshes = slices.Clone(names)
	}
}

// WithAnimations sets the animation clip names.
//
// Parameters:
//   - names: the animation names in document order
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithAnimations(names ...string) ModelBuilderOption {
	return func(m *modelImpl) {
		m.animations = slices.Clone(names)
	}
}

// WithBounds sets the model-space bounding box.
//
// Parameters:
//   - min: the minimum corner
//   - max: the maximum corner
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithBounds(min, max mgl32.Vec3) ModelBuilderOption {
	return func(m *modelImpl) {
		m.boundsMin = min
		m.boundsMax = max
	}
}
