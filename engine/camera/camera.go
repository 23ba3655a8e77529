package camera

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the camera system.
// The camera holds a pose (position and look target) written by the active rig each tick,
// plus perspective settings, and derives view/projection matrices from them.
type Camera interface {
	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: up vector
	Up() mgl32.Vec3

	// SetPose sets position and look target and recomputes matrices.
	//
	// Parameters:
	//   - position: eye position
	//   - target: look-at point
	SetPose(position, target mgl32.Vec3)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix (column-major)
	ViewProjectionMatrix() mgl32.Mat4

	// Ray casts a ray from the eye through a point on the viewport.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin at the top-left
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - origin: ray start on the near plane
	//   - dir: unit ray direction
	//   - error: error if the viewport is empty or the matrices are singular
	Ray(x, y float32, width, height int) (origin, dir mgl32.Vec3, err error)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a 75 degree field of view, 16:9 aspect,
// clip planes at 0.1 and 2000, placed at (-8, 5, -8) looking at (0, 1, 0).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{-8, 5, -8},
		target:   mgl32.Vec3{0, 1, 0},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      mgl32.DegToRad(75),
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      2000,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

// updateMatrices recomputes view, projection and view-projection matrices.
// Caller must hold the mutex (or be the constructor).
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetPose(position, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Ray(x, y float32, width, height int) (origin, dir mgl32.Vec3, err error) {
	if width <= 0 || height <= 0 {
		return origin, dir, errors.New("ray: empty viewport")
	}
	c.mu.Lock()
	view, proj := c.viewMatrix, c.projectionMatrix
	c.mu.Unlock()

	// window coordinates have their origin at the bottom-left
	wy := float32(height) - y
	near, err := mgl32.UnProject(mgl32.Vec3{x, wy, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return origin, dir, fmt.Errorf("ray: unproject near: %w", err)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, wy, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return origin, dir, fmt.Errorf("ray: unproject far: %w", err)
	}
	return near, far.Sub(near).Normalize(), nil
}
