package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDeltaf(t, expected[i], actual[i], delta, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"pi stays pi", math32.Pi, math32.Pi},
		{"minus pi maps to pi", -math32.Pi, math32.Pi},
		{"just over pi", math32.Pi + 0.5, -math32.Pi + 0.5},
		{"several turns", 6*math32.Pi + 0.25, 0.25},
		{"negative turns", -4*math32.Pi - 0.25, -0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-4)
		})
	}
}

func TestForwardAndRight(t *testing.T) {
	assertVecInDelta(t, mgl32.Vec3{0, 0, 1}, Forward(0), 1e-6)
	assertVecInDelta(t, mgl32.Vec3{-1, 0, 0}, Right(0), 1e-6)
	assertVecInDelta(t, mgl32.Vec3{1, 0, 0}, Forward(math32.Pi/2), 1e-6)

	for _, yaw := range []float32{-2.5, -1, 0, 0.3, 1.7, 3} {
		f, r := Forward(yaw), Right(yaw)
		assert.InDelta(t, 0, f.Dot(r), 1e-6)
		assertVecInDelta(t, r, f.Cross(mgl32.Vec3{0, 1, 0}), 1e-5)
	}
}

func TestYawPitchRoundTrip(t *testing.T) {
	for _, c := range [][2]float32{{0, 0}, {1.2, 0.3}, {-2.8, -1.1}, {3.0, 1.4}} {
		yaw, pitch := YawPitch(Direction(c[0], c[1]))
		assert.InDelta(t, c[0], yaw, 1e-4)
		assert.InDelta(t, c[1], pitch, 1e-4)
	}

	yaw, pitch := YawPitch(mgl32.Vec3{})
	assert.Zero(t, yaw)
	assert.Zero(t, pitch)
}

func TestSmoothingAlpha(t *testing.T) {
	assert.InDelta(t, 0.1, SmoothingAlpha(0.1, 1.0/60), 1e-5)
	// two half-steps compose to one full step
	half := SmoothingAlpha(0.1, 1.0/120)
	assert.InDelta(t, 0.1, 1-(1-half)*(1-half), 1e-5)
	assert.Zero(t, SmoothingAlpha(0.1, 0))
	assert.Equal(t, float32(1), SmoothingAlpha(1, 0.016))
}

func TestBoundsClampPosition(t *testing.T) {
	b := Bounds{X: 50, Z: 50}
	got := b.ClampPosition(mgl32.Vec3{70, 3, -90})
	assert.Equal(t, mgl32.Vec3{50, 3, -50}, got)
	assert.True(t, b.Contains(got))
	assert.False(t, b.Contains(mgl32.Vec3{50.5, 0, 0}))

	// a zero extent still clamps, pinning the axis to the origin
	flat := Bounds{X: 0, Z: 10}
	assert.Equal(t, mgl32.Vec3{0, 0, -10}, flat.ClampPosition(mgl32.Vec3{900, 0, -900}))
	assert.False(t, flat.Contains(mgl32.Vec3{0.1, 0, 0}))
}

func TestRemoveFirst(t *testing.T) {
	s, ok := RemoveFirst([]int{1, 2, 3, 2}, 2)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 3, 2}, s)

	s, ok = RemoveFirst(s, 9)
	assert.False(t, ok)
	assert.Equal(t, []int{1, 3, 2}, s)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, float32(2), Coalesce[float32](0, 2, 3))
	assert.Equal(t, "", Coalesce("", ""))
}
