package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ReferenceFrameRate is the frame rate that per-frame tuning values are expressed against.
const ReferenceFrameRate = 60

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}

// Lerp linearly interpolates from a toward b by t.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor, 0 = a and 1 = b
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b by t.
//
// Parameters:
//   - a: start vector
//   - b: end vector
//   - t: interpolation factor, 0 = a and 1 = b
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SmoothingAlpha converts a per-frame smoothing factor, tuned at ReferenceFrameRate,
// into the equivalent factor for a step of dt seconds. At 60Hz the factor is returned unchanged.
//
// Parameters:
//   - factor: per-frame interpolation factor in [0, 1]
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: interpolation factor in [0, 1] for this step
func SmoothingAlpha(factor, dt float32) float32 {
	if factor <= 0 || dt <= 0 {
		return 0
	}
	if factor >= 1 {
		return 1
	}
	return 1 - math32.Pow(1-factor, dt*ReferenceFrameRate)
}

// WrapAngle maps an angle in radians into the range (-Pi, Pi].
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float32: the equivalent angle in (-Pi, Pi]
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

// AngleDelta returns the shortest signed difference a - b in radians.
func AngleDelta(a, b float32) float32 {
	return WrapAngle(a - b)
}

// Forward returns the horizontal unit vector for a yaw angle.
// Yaw 0 faces +Z; positive yaw rotates counter-clockwise seen from above (toward +X).
//
// Parameters:
//   - yaw: heading in radians about +Y
//
// Returns:
//   - mgl32.Vec3: unit forward vector with Y = 0
func Forward(yaw float32) mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(yaw), 0, math32.Cos(yaw)}
}

// Right returns the horizontal unit vector to the right of a yaw heading,
// equal to Forward(yaw) x (0, 1, 0).
//
// Parameters:
//   - yaw: heading in radians about +Y
//
// Returns:
//   - mgl32.Vec3: unit right vector with Y = 0
func Right(yaw float32) mgl32.Vec3 {
	return mgl32.Vec3{-math32.Cos(yaw), 0, math32.Sin(yaw)}
}

// Direction returns the unit look vector for a yaw/pitch pair.
// Pitch is positive looking up.
//
// Parameters:
//   - yaw: heading in radians about +Y
//   - pitch: elevation in radians
//
// Returns:
//   - mgl32.Vec3: unit look direction
func Direction(yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{math32.Sin(yaw) * cp, math32.Sin(pitch), math32.Cos(yaw) * cp}
}

// YawPitch recovers the yaw and pitch of a direction vector. Zero vectors yield (0, 0).
//
// Parameters:
//   - dir: direction vector (need not be normalized)
//
// Returns:
//   - yaw, pitch: angles in radians matching Direction
func YawPitch(dir mgl32.Vec3) (yaw, pitch float32) {
	horiz := math32.Hypot(dir[0], dir[2])
	if horiz < 1e-8 && math32.Abs(dir[1]) < 1e-8 {
		return 0, 0
	}
	return math32.Atan2(dir[0], dir[2]), math32.Atan2(dir[1], horiz)
}
