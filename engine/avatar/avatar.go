package avatar

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/go-gl/mathgl/mgl32"
)

type avatarImpl struct {
	mu sync.RWMutex

	asset       common.Asset
	placeholder bool

	position mgl32.Vec3
	yaw      float32
	scale    float32
}

// Avatar is the controllable astronaut: a world transform (position, yaw about +Y, uniform scale)
// bound to the asset it was built from. Yaw 0 faces +Z. The transform is mutated only by the
// locomotion controller.
type Avatar interface {
	// Asset returns the asset the avatar was built from.
	//
	// Returns:
	//   - common.Asset: the loaded or placeholder asset, never nil
	Asset() common.Asset

	// Placeholder reports whether the avatar uses the procedural stand-in asset.
	//
	// Returns:
	//   - bool: true if no candidate asset could be loaded
	Placeholder() bool

	// Position returns the avatar's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world position
	Position() mgl32.Vec3

	// SetPosition moves the avatar.
	//
	// Parameters:
	//   - p: new world position
	SetPosition(p mgl32.Vec3)

	// Yaw returns the avatar heading in radians.
	//
	// Returns:
	//   - float32: heading about +Y
	Yaw() float32

	// SetYaw sets the avatar heading.
	//
	// Parameters:
	//   - yaw: heading in radians about +Y
	SetYaw(yaw float32)

	// Scale returns the uniform scale applied to the asset.
	//
	// Returns:
	//   - float32: scale factor
	Scale() float32

	// Forward returns the horizontal unit facing vector derived from yaw.
	//
	// Returns:
	//   - mgl32.Vec3: facing direction with Y = 0
	Forward() mgl32.Vec3

	// ModelMatrix returns the world transform (translate * rotateY * scale).
	//
	// Returns:
	//   - mgl32.Mat4: column-major model matrix
	ModelMatrix() mgl32.Mat4
}

var _ Avatar = &avatarImpl{}

// NewAvatar creates an avatar at the origin facing +Z with unit scale.
// Without WithAsset the procedural placeholder asset is used.
//
// Parameters:
//   - options: functional options to configure the avatar
//
// Returns:
//   - Avatar: the newly created avatar
func NewAvatar(options ...AvatarBuilderOption) Avatar {
	a := &avatarImpl{
		scale: 1,
	}
	for _, option := range options {
		option(a)
	}
	if a.asset == nil {
		a.asset = PlaceholderAsset()
		a.placeholder = true
	}
	return a
}

func (a *avatarImpl) Asset() common.Asset {
	return a.asset
}

func (a *avatarImpl) Placeholder() bool {
	return a.placeholder
}

func (a *avatarImpl) Position() mgl32.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

func (a *avatarImpl) SetPosition(p mgl32.Vec3) {
	a.mu.Lock()
	a.position = p
	a.mu.Unlock()
}

func (a *avatarImpl) Yaw() float32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.yaw
}

func (a *avatarImpl) SetYaw(yaw float32) {
	a.mu.Lock()
	a.yaw = yaw
	a.mu.Unlock()
}

func (a *avatarImpl) Scale() float32 {
	return a.scale
}

func (a *avatarImpl) Forward() mgl32.Vec3 {
	return common.Forward(a.Yaw())
}

func (a *avatarImpl) ModelMatrix() mgl32.Mat4 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return mgl32.Translate3D(a.position[0], a.position[1], a.position[2]).
		Mul4(mgl32.HomogRotate3DY(a.yaw)).
		Mul4(mgl32.Scale3D(a.scale, a.scale, a.scale))
}
