package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrustumContainsSphere(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"ahead", mgl32.Vec3{0, 0, 10}, 1, true},
		{"behind", mgl32.Vec3{0, 0, -10}, 1, false},
		{"beyond far plane", mgl32.Vec3{0, 0, 150}, 1, false},
		{"far off to the side", mgl32.Vec3{100, 0, 10}, 1, false},
		{"straddling the far plane", mgl32.Vec3{0, 0, 100.5}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ContainsSphere(tt.center, tt.radius))
		})
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(75), 1, 0.5, 50)
	f := ExtractFrustum(proj)
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-4, "plane %d", i)
	}
	// the near plane faces down -Z in view space
	assert.InDelta(t, 0.5, f.Planes[FrustumNear].SignedDistance(mgl32.Vec3{0, 0, -1}), 1e-3)
}
