package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitControlImpl is the implementation of OrbitControl.
// Position is always derived from target plus spherical coordinates.
type orbitControlImpl struct {
	mu *sync.Mutex

	enabled bool

	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis, 0 = +Z
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32

	// damping is the share of pending rotation applied per Update; 0 applies it immediately.
	damping          float32
	pendingAzimuth   float32
	pendingElevation float32
}

// OrbitControl is the third-person camera rig: the user orbits a target point by dragging and
// zooms with the scroll wheel, while the locomotion controller moves the target to follow the
// avatar. Spherical coordinates (radius, azimuth, elevation) are user-owned.
type OrbitControl interface {
	// Enabled reports whether user input is applied.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables user input. Disabling drops any pending rotation.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the orbit pivot / look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget moves the pivot and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space pivot
	SetTarget(target mgl32.Vec3)

	// PlaceAt puts the camera at a position looking at a target, re-deriving the spherical
	// coordinates from the offset. Radius and elevation are clamped to their bounds.
	//
	// Parameters:
	//   - position: desired camera position
	//   - target: desired pivot
	PlaceAt(position, target mgl32.Vec3)

	// Rotate queues an orbit from a mouse drag delta in pixels. Ignored while disabled.
	// Dragging right orbits the camera left around the target, dragging down raises it.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Rotate(dx, dy float32)

	// Zoom adjusts the orbit radius. Positive delta zooms in. Ignored while disabled.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Update applies pending (damped) rotation and recomputes the camera position.
	// Call once per tick.
	Update()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// RadiusBounds returns the allowed radius range.
	//
	// Returns:
	//   - min, max: zoom distance limits
	RadiusBounds() (min, max float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// ElevationBounds returns the allowed elevation range.
	//
	// Returns:
	//   - min, max: elevation limits in radians
	ElevationBounds() (min, max float32)
}

var _ OrbitControl = &orbitControlImpl{}

// NewOrbitControl creates an enabled orbit control placed at (-8, 5, -8) around the origin
// looking at (0, 1, 0), with zoom limited to [3, 50] and the camera kept above the horizon.
//
// Parameters:
//   - options: functional options to configure the control
//
// Returns:
//   - OrbitControl: the newly created control
func NewOrbitControl(options ...OrbitControlOption) OrbitControl {
	oc := &orbitControlImpl{
		mu:      &sync.Mutex{},
		enabled: true,

		minRadius:    3,
		maxRadius:    50,
		minElevation: 0,
		maxElevation: math32.Pi/2 - 0.05,

		mouseSensitivity: 0.005,
		zoomSpeed:        1,
		damping:          0.05,
	}
	oc.placeAt(mgl32.Vec3{-8, 5, -8}, mgl32.Vec3{0, 1, 0})

	for _, option := range options {
		option(oc)
	}

	oc.clamp()
	oc.updatePosition()
	return oc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitControlImpl) updatePosition() {
	cosElev := math32.Cos(oc.elevation)
	oc.position = oc.target.Add(mgl32.Vec3{
		oc.radius * cosElev * math32.Sin(oc.azimuth),
		oc.radius * math32.Sin(oc.elevation),
		oc.radius * cosElev * math32.Cos(oc.azimuth),
	})
}

// placeAt derives spherical coordinates from a position/target pair.
// Caller must hold the mutex.
func (oc *orbitControlImpl) placeAt(position, target mgl32.Vec3) {
	oc.target = target
	offset := position.Sub(target)
	if r := offset.Len(); r > 1e-6 {
		oc.radius = r
		oc.azimuth, oc.elevation = common.YawPitch(offset)
	}
}

// clamp restricts radius and elevation to their bounds. Caller must hold the mutex.
func (oc *orbitControlImpl) clamp() {
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = common.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
}

func (oc *orbitControlImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControlImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.pendingAzimuth, oc.pendingElevation = 0, 0
	}
}

func (oc *orbitControlImpl) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitControlImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
	oc.updatePosition()
}

func (oc *orbitControlImpl) PlaceAt(position, target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.pendingAzimuth, oc.pendingElevation = 0, 0
	oc.placeAt(position, target)
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControlImpl) Rotate(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.pendingAzimuth -= dx * oc.mouseSensitivity
	oc.pendingElevation += dy * oc.mouseSensitivity
	if oc.damping <= 0 {
		oc.applyPending(1)
		oc.updatePosition()
	}
}

// applyPending moves a share of the pending rotation into the spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitControlImpl) applyPending(share float32) {
	oc.azimuth = common.WrapAngle(oc.azimuth + oc.pendingAzimuth*share)
	oc.elevation = common.Clamp(oc.elevation+oc.pendingElevation*share, oc.minElevation, oc.maxElevation)
	oc.pendingAzimuth *= 1 - share
	oc.pendingElevation *= 1 - share
	if math32.Abs(oc.pendingAzimuth) < 1e-6 {
		oc.pendingAzimuth = 0
	}
	if math32.Abs(oc.pendingElevation) < 1e-6 {
		oc.pendingElevation = 0
	}
}

func (oc *orbitControlImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.radius = common.Clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitControlImpl) Update() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.enabled && (oc.pendingAzimuth != 0 || oc.pendingElevation != 0) {
		share := oc.damping
		if share <= 0 {
			share = 1
		}
		oc.applyPending(share)
	}
	oc.updatePosition()
}

func (oc *orbitControlImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControlImpl) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = common.Clamp(radius, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitControlImpl) RadiusBounds() (min, max float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minRadius, oc.maxRadius
}

func (oc *orbitControlImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControlImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitControlImpl) ElevationBounds() (min, max float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minElevation, oc.maxElevation
}
