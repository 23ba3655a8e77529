package avatar

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDeltaf(t, expected[i], actual[i], delta, "component %d: expected %v, got %v", i, expected, actual)
	}
}

type stubAsset struct{}

func (stubAsset) Name() string         { return "scene.gltf" }
func (stubAsset) HasAnimation() bool   { return true }
func (stubAsset) ListMeshes() []string { return []string{"Object_4"} }

func TestNewAvatarDefaults(t *testing.T) {
	a := NewAvatar()
	assert.True(t, a.Placeholder())
	assert.Equal(t, PlaceholderName, a.Asset().Name())
	assert.Equal(t, mgl32.Vec3{}, a.Position())
	assert.Zero(t, a.Yaw())
	assert.Equal(t, float32(1), a.Scale())
}

func TestNewAvatarWithAsset(t *testing.T) {
	a := NewAvatar(
		WithAsset(stubAsset{}),
		WithPosition(mgl32.Vec3{1, 0, 2}),
		WithYaw(3*math32.Pi),
		WithScale(0.5),
		WithScale(-1),
	)
	assert.False(t, a.Placeholder())
	assert.True(t, a.Asset().HasAnimation())
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, a.Position())
	assert.InDelta(t, math32.Pi, a.Yaw(), 1e-4)
	assert.Equal(t, float32(0.5), a.Scale())
}

func TestAvatarModelMatrix(t *testing.T) {
	a := NewAvatar(WithPosition(mgl32.Vec3{3, 0, -4}), WithYaw(math32.Pi/2))

	// the local +Z facing axis maps onto world +X
	tip := a.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 1}).Vec3()
	assertVecInDelta(t, mgl32.Vec3{4, 0, -4}, tip, 1e-5)
	assertVecInDelta(t, mgl32.Vec3{1, 0, 0}, a.Forward(), 1e-5)
}

func TestPlaceholderAsset(t *testing.T) {
	p := NewPlaceholder(WithPosition(mgl32.Vec3{0, 0, 5}))
	require.True(t, p.Placeholder())
	assert.False(t, p.Asset().HasAnimation())

	meshes := p.Asset().ListMeshes()
	assert.Contains(t, meshes, "helmet")
	assert.Contains(t, meshes, "visor")

	// callers get a copy
	meshes[0] = "mutated"
	assert.Equal(t, "body", p.Asset().ListMeshes()[0])
}
