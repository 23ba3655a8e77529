package sim

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/avatar"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/camera"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/celestial"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/config"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/controller"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/input"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/loader"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/telemetry"
	"github.com/chewxy/math32"
)

// dragThreshold is the pointer travel in pixels after which a press counts as a drag, not a click.
const dragThreshold = 3

// Publisher receives one snapshot per tick.
type Publisher interface {
	Publish(snap telemetry.Snapshot)
}

// SimulationContext owns every piece of mutable demo state and advances it once per tick.
// Event handlers only record input; all movement happens in Tick.
type SimulationContext interface {
	// Tick applies pending config, installs a finished avatar load, samples input, moves the
	// avatar, updates the camera, advances the celestial bodies and publishes a snapshot.
	//
	// Parameters:
	//   - dt: tick duration in seconds
	Tick(dt float32)

	// Mode returns the active camera mode.
	Mode() controller.Mode

	// Avatar returns the installed avatar, or nil while loading.
	Avatar() avatar.Avatar

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Controller returns the locomotion and camera controller.
	Controller() controller.Controller

	// System returns the celestial system.
	System() celestial.System

	// Selected returns the last picked celestial body.
	//
	// Returns:
	//   - celestial.State: the body state at pick time
	//   - bool: false if nothing is selected
	Selected() (celestial.State, bool)

	// HandleKeyDown records a key press. C toggles the camera mode; Escape releases the
	// pointer or, when it is free, requests quit.
	//
	// Parameters:
	//   - code: the virtual key code
	HandleKeyDown(code uint32)

	// HandleKeyUp records a key release.
	//
	// Parameters:
	//   - code: the virtual key code
	HandleKeyUp(code uint32)

	// HandleMouseButton tracks left-button drags for orbiting. A left click without drag in
	// third-person mode picks a celestial body.
	//
	// Parameters:
	//   - button: the mouse button code
	//   - pressed: true on press, false on release
	//   - x, y: pointer position in pixels
	HandleMouseButton(button int, pressed bool, x, y float32)

	// HandleMouseDelta forwards relative pointer motion to the controller.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	HandleMouseDelta(dx, dy float32)

	// HandleScroll forwards wheel input to the orbit zoom.
	//
	// Parameters:
	//   - delta: scroll amount, positive zooms in
	HandleScroll(delta float32)

	// HandleFocus resets held input and reports pointer lock loss when focus is lost.
	//
	// Parameters:
	//   - focused: the new focus state
	HandleFocus(focused bool)

	// HandlePointerLockChange syncs a lock state reported by the platform.
	//
	// Parameters:
	//   - locked: whether the pointer is captured
	HandlePointerLockChange(locked bool)

	// HandleJoystick sets the virtual joystick axes, e.g. from a gamepad stick.
	//
	// Parameters:
	//   - x, y: normalized axes in screen orientation, -y is forward
	HandleJoystick(x, y float32)

	// HandleResize updates the viewport used for picking and the camera aspect.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	HandleResize(width, height int)

	// LoadAvatar starts an asynchronous search over the candidate asset paths. The result is
	// installed by a later Tick; the placeholder is used when every candidate fails.
	//
	// Parameters:
	//   - ctx: cancels the search
	//   - candidates: asset paths in priority order
	LoadAvatar(ctx context.Context, candidates []string)

	// InstallAvatar installs an avatar immediately, replacing any previous one.
	//
	// Parameters:
	//   - av: the avatar
	InstallAvatar(av avatar.Avatar)
}

type simImpl struct {
	mu *sync.Mutex

	input      input.State
	controller controller.Controller
	system     celestial.System
	loader     loader.Loader
	publisher  Publisher
	info       camera.HintDisplay
	quit       func()
	logger     *slog.Logger

	av      avatar.Avatar
	pending <-chan loader.Result
	configs <-chan config.Config

	toggleHeld bool

	leftDown bool
	dragged  bool
	travel   float32

	width, height int

	selected    celestial.State
	hasSelected bool

	tick    uint64
	elapsed float64

	// startYaw orients avatars installed by a finished load.
	startYaw float32
}

var _ SimulationContext = &simImpl{}

// NewSimulationContext creates a simulation with default input, controller and celestial system.
//
// Parameters:
//   - options: functional options to configure the simulation
//
// Returns:
//   - SimulationContext: the simulation
//   - error: error if the default celestial system cannot be built
func NewSimulationContext(options ...SimulationBuilderOption) (SimulationContext, error) {
	s := &simImpl{
		mu:       &sync.Mutex{},
		quit:     func() {},
		logger:   slog.Default(),
		width:    1280,
		height:   720,
		startYaw: math32.Pi,
	}
	for _, option := range options {
		option(s)
	}

	if s.input == nil {
		s.input = input.NewState()
	}
	if s.controller == nil {
		s.controller = controller.NewController(controller.WithLogger(s.logger))
	}
	if s.system == nil {
		system, err := celestial.NewSystem()
		if err != nil {
			return nil, err
		}
		s.system = system
	}
	return s, nil
}

func (s *simImpl) Tick(dt float32) {
	if dt < 0 {
		dt = 0
	}
	s.applyConfig()
	s.pollAvatar()

	av := s.Avatar()
	cmd := s.input.Command(s.controller.Strafing())
	s.controller.UpdateAvatar(av, cmd, dt)
	s.controller.UpdateCamera(av, dt)
	s.system.Advance(dt)

	s.mu.Lock()
	s.tick++
	s.elapsed += float64(dt)
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.Publish(s.snapshot())
	}
}

func (s *simImpl) applyConfig() {
	if s.configs == nil {
		return
	}
	select {
	case cfg, ok := <-s.configs:
		if !ok {
			s.configs = nil
			return
		}
		s.controller.SetTuning(cfg.ToTuning())
		s.system.SetSpeed(cfg.Celestial.Speed)
		s.logger.Info("tuning applied", "steering", cfg.Camera.Steering, "move_speed", cfg.Movement.MoveSpeed)
	default:
	}
}

func (s *simImpl) pollAvatar() {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()
	if pending == nil {
		return
	}

	select {
	case res, ok := <-pending:
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
		if ok && res.Status == loader.StatusLoaded {
			s.logger.Info("avatar loaded", "path", res.Path, "meshes", len(res.Asset.ListMeshes()), "animated", res.Asset.HasAnimation())
			s.InstallAvatar(avatar.NewAvatar(avatar.WithAsset(res.Asset), avatar.WithYaw(s.startYaw)))
			return
		}
		s.logger.Warn("avatar candidates exhausted, using placeholder", "error", res.Err())
		s.InstallAvatar(avatar.NewPlaceholder(avatar.WithYaw(s.startYaw)))
	default:
	}
}

func (s *simImpl) snapshot() telemetry.Snapshot {
	cam := s.controller.Camera()
	s.mu.Lock()
	snap := telemetry.Snapshot{
		Tick:   s.tick,
		Time:   s.elapsed,
		Mode:   s.controller.Mode().String(),
		Locked: s.controller.PointerLock().IsLocked(),
		Camera: telemetry.CameraPose{Position: cam.Position(), Target: cam.Target()},
	}
	if s.hasSelected {
		snap.Selected = s.selected.Name
	}
	av := s.av
	s.mu.Unlock()

	frustum := common.ExtractFrustum(cam.ViewProjectionMatrix())
	for _, b := range s.system.Bodies() {
		if frustum.ContainsSphere(b.Position, b.PickRadius) {
			snap.Visible = append(snap.Visible, b.Name)
		}
	}

	if av != nil {
		snap.Avatar = &telemetry.AvatarPose{
			Asset:       av.Asset().Name(),
			Placeholder: av.Placeholder(),
			Position:    av.Position(),
			Yaw:         av.Yaw(),
		}
	}
	return snap
}

func (s *simImpl) Mode() controller.Mode {
	return s.controller.Mode()
}

func (s *simImpl) Avatar() avatar.Avatar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.av
}

func (s *simImpl) Camera() camera.Camera {
	return s.controller.Camera()
}

func (s *simImpl) Controller() controller.Controller {
	return s.controller
}

func (s *simImpl) System() celestial.System {
	return s.system
}

func (s *simImpl) Selected() (celestial.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasSelected
}

func (s *simImpl) HandleKeyDown(code uint32) {
	switch code {
	case common.KeyC:
		s.mu.Lock()
		repeat := s.toggleHeld
		s.toggleHeld = true
		s.mu.Unlock()
		if !repeat {
			mode := s.controller.ToggleMode(s.Avatar())
			s.logger.Info("camera mode changed", "mode", mode.String())
		}
		return
	case common.KeyEsc:
		if !s.controller.ReleasePointerLock() {
			s.logger.Info("quit requested")
			s.quit()
		}
		return
	}
	s.input.OnKeyDown(code)
}

func (s *simImpl) HandleKeyUp(code uint32) {
	if code == common.KeyC {
		s.mu.Lock()
		s.toggleHeld = false
		s.mu.Unlock()
		return
	}
	s.input.OnKeyUp(code)
}

func (s *simImpl) HandleMouseButton(button int, pressed bool, x, y float32) {
	if button != common.MouseButtonLeft {
		return
	}

	s.mu.Lock()
	if pressed {
		s.leftDown = true
		s.dragged = false
		s.travel = 0
		s.mu.Unlock()
		return
	}
	click := s.leftDown && !s.dragged
	s.leftDown = false
	s.dragged = false
	width, height := s.width, s.height
	s.mu.Unlock()

	if click && s.controller.Mode() == controller.ModeThirdPerson {
		s.pick(x, y, width, height)
	}
}

func (s *simImpl) pick(x, y float32, width, height int) {
	origin, dir, err := s.controller.Camera().Ray(x, y, width, height)
	if err != nil {
		s.logger.Debug("pick skipped", "error", err)
		return
	}
	hit, ok := s.system.Pick(origin, dir)

	s.mu.Lock()
	s.selected, s.hasSelected = hit, ok
	s.mu.Unlock()

	if !ok {
		if s.info != nil {
			s.info.HideHint()
		}
		return
	}
	s.logger.Info("body selected", "name", hit.Name, "info", hit.InfoText("; "))
	if s.info != nil {
		s.info.ShowHint(hit.Name + " | " + hit.InfoText(" | "))
	}
}

func (s *simImpl) HandleMouseDelta(dx, dy float32) {
	s.mu.Lock()
	dragging := s.leftDown
	if dragging {
		s.travel += math32.Abs(dx) + math32.Abs(dy)
		if s.travel > dragThreshold {
			s.dragged = true
		}
	}
	s.mu.Unlock()

	s.controller.HandleMouseDelta(dx, dy, dragging)
}

func (s *simImpl) HandleScroll(delta float32) {
	s.controller.HandleScroll(delta)
}

func (s *simImpl) HandleFocus(focused bool) {
	if focused {
		return
	}
	s.input.Reset()
	s.mu.Lock()
	s.leftDown = false
	s.dragged = false
	s.toggleHeld = false
	s.mu.Unlock()
	s.controller.HandlePointerLockChange(false)
}

func (s *simImpl) HandlePointerLockChange(locked bool) {
	s.controller.HandlePointerLockChange(locked)
}

func (s *simImpl) HandleJoystick(x, y float32) {
	s.input.Joystick().SetAxes(x, y)
}

func (s *simImpl) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	s.controller.Camera().SetAspect(float32(width) / float32(height))
}

func (s *simImpl) LoadAvatar(ctx context.Context, candidates []string) {
	s.mu.Lock()
	if s.loader == nil {
		s.loader = loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(s.logger))
	}
	l := s.loader
	s.mu.Unlock()

	s.logger.Info("loading avatar", "candidates", len(candidates))
	ch := l.LoadAsync(ctx, candidates)

	s.mu.Lock()
	s.pending = ch
	s.mu.Unlock()
}

func (s *simImpl) InstallAvatar(av avatar.Avatar) {
	s.mu.Lock()
	s.av = av
	s.mu.Unlock()
	if av != nil {
		s.logger.Info("avatar installed", "asset", av.Asset().Name(), "placeholder", av.Placeholder())
	}
}
