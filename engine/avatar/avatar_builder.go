package avatar

import (
	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/go-gl/mathgl/mgl32"
)

// AvatarBuilderOption is a functional option for configuring an Avatar during construction.
type AvatarBuilderOption func(*avatarImpl)

// WithAsset sets the asset the avatar is built from.
//
// Parameters:
//   - asset: the loaded asset
//
// Returns:
//   - AvatarBuilderOption: functional option to set the asset
func WithAsset(asset common.Asset) AvatarBuilderOption {
	return func(a *avatarImpl) {
		a.asset = asset
		a.placeholder = false
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - p: initial position
//
// Returns:
//   - AvatarBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) AvatarBuilderOption {
	return func(a *avatarImpl) {
		a.position = p
	}
}

// WithYaw sets the initial heading.
//
// Parameters:
//   - yaw: heading in radians about +Y (0 faces +Z)
//
// Returns:
//   - AvatarBuilderOption: functional option to set the yaw
func WithYaw(yaw float32) AvatarBuilderOption {
	return func(a *avatarImpl) {
		a.yaw = common.WrapAngle(yaw)
	}
}

// WithScale sets the uniform asset scale. Non-positive values are ignored.
//
// Parameters:
//   - scale: scale factor
//
// Returns:
//   - AvatarBuilderOption: functional option to set the scale
func WithScale(scale float32) AvatarBuilderOption {
	return func(a *avatarImpl) {
		if scale > 0 {
			a.scale = scale
		}
	}
}
