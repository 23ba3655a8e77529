package loader

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/go-gl/mathgl/mgl32"
)

type modelImpl struct {
	name        string
	path        string
	generator   string
	meshes      []string
	animations  []string
	vertexCount int
	boundsMin   mgl32.Vec3
	boundsMax   mgl32.Vec3
}

// Model is a parsed glTF asset summary: names and sizes, no GPU resources.
type Model interface {
	common.Asset

	// Path returns the file the model was loaded from, or the reader name.
	//
	// Returns:
	//   - string: the source path
	Path() string

	// Generator returns the authoring tool recorded in the asset metadata.
	//
	// Returns:
	//   - string: the generator, possibly empty
	Generator() string

	// Animations returns the animation clip names in document order.
	//
	// Returns:
	//   - []string: a copy of the animation names
	Animations() []string

	// VertexCount returns the total POSITION count across all primitives.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// Bounds returns the model-space bounding box from the POSITION accessors.
	// Both corners are zero when no accessor declares min/max.
	//
	// Returns:
	//   - mgl32.Vec3: the minimum corner
	//   - mgl32.Vec3: the maximum corner
	Bounds() (mgl32.Vec3, mgl32.Vec3)
}

var _ Model = &modelImpl{}

// NewModel creates a Model from explicit parts. The loader builds models from parsed
// documents; this constructor serves procedural assets and tests.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &modelImpl{}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *modelImpl) Name() string {
	return m.name
}

func (m *modelImpl) Path() string {
	return m.path
}

func (m *modelImpl) Generator() string {
	return m.generator
}

func (m *modelImpl) HasAnimation() bool {
	return len(m.animations) > 0
}

func (m *modelImpl) ListMeshes() []string {
	return slices.Clone(m.meshes)
}

func (m *modelImpl) Animations() []string {
	return slices.Clone(m.animations)
}

func (m *modelImpl) VertexCount() int {
	return m.vertexCount
}

func (m *modelImpl) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundsMin, m.boundsMax
}
