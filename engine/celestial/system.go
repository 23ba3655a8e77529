package celestial

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type systemImpl struct {
	mu *sync.RWMutex

	order  []string
	bodies map[string]*State
	speed  float32
}

// System advances a set of bodies around their parents and answers pick queries.
type System interface {
	// Advance accumulates orbit and spin angles by rate x dt and recomputes positions.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; negative values are ignored
	Advance(dt float32)

	// Body returns the state of a named body.
	//
	// Parameters:
	//   - name: the body name
	//
	// Returns:
	//   - State: the body state
	//   - bool: false if no such body exists
	Body(name string) (State, bool)

	// Position returns the world position of a named body.
	//
	// Parameters:
	//   - name: the body name
	//
	// Returns:
	//   - mgl32.Vec3: the position, zero if the body is unknown
	Position(name string) mgl32.Vec3

	// Bodies returns every body state in insertion order.
	//
	// Returns:
	//   - []State: the body states
	Bodies() []State

	// Pick finds the nearest body whose pick sphere the ray hits in front of its origin.
	//
	// Parameters:
	//   - origin: the ray origin
	//   - dir: the ray direction, need not be normalized
	//
	// Returns:
	//   - State: the hit body
	//   - bool: false if nothing was hit
	Pick(origin, dir mgl32.Vec3) (State, bool)

	// SetSpeed scales simulated time. 1 is real time, 0 pauses.
	//
	// Parameters:
	//   - speed: the time scale, negative values are treated as 0
	SetSpeed(speed float32)
}

var _ System = &systemImpl{}

// NewSystem creates a System. Without WithBodies it holds DefaultBodies.
//
// Parameters:
//   - options: functional options to configure the system
//
// Returns:
//   - System: the newly created system
//   - error: error if a body name repeats or a parent is unknown
func NewSystem(options ...SystemBuilderOption) (System, error) {
	cfg := &systemConfig{speed: 1}
	for _, option := range options {
		option(cfg)
	}
	if cfg.bodies == nil {
		cfg.bodies = DefaultBodies()
	}

	s := &systemImpl{
		mu:     &sync.RWMutex{},
		bodies: make(map[string]*State, len(cfg.bodies)),
		speed:  cfg.speed,
	}
	for _, b := range cfg.bodies {
		if _, dup := s.bodies[b.Name]; dup {
			return nil, fmt.Errorf("duplicate body %q", b.Name)
		}
		if b.Parent != "" {
			if _, ok := s.bodies[b.Parent]; !ok {
				return nil, fmt.Errorf("body %q: parent %q must be declared first", b.Name, b.Parent)
			}
		}
		s.bodies[b.Name] = &State{Body: b}
		s.order = append(s.order, b.Name)
	}
	s.updatePositions()
	return s, nil
}

// updatePositions places each body relative to its parent. Parents precede children in
// s.order. Caller must hold the mutex.
func (s *systemImpl) updatePositions() {
	for _, name := range s.order {
		st := s.bodies[name]
		var center mgl32.Vec3
		if st.Parent != "" {
			center = s.bodies[st.Parent].Position
		}
		st.Position = center.Add(mgl32.Vec3{
			st.OrbitRadius * math32.Cos(st.OrbitAngle),
			0,
			-st.OrbitRadius * math32.Sin(st.OrbitAngle),
		})
	}
}

func (s *systemImpl) Advance(dt float32) {
	if dt <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dt *= s.speed
	for _, name := range s.order {
		st := s.bodies[name]
		st.OrbitAngle = common.WrapAngle(st.OrbitAngle + st.OrbitRate*dt)
		st.SpinAngle = common.WrapAngle(st.SpinAngle + st.SpinRate*dt)
	}
	s.updatePositions()
}

func (s *systemImpl) Body(name string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.bodies[name]
	if !ok {
		return State{}, false
	}
	return *st, true
}

func (s *systemImpl) Position(name string) mgl32.Vec3 {
	st, _ := s.Body(name)
	return st.Position
}

func (s *systemImpl) Bodies() []State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]State, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.bodies[name])
	}
	return out
}

func (s *systemImpl) Pick(origin, dir mgl32.Vec3) (State, bool) {
	if dir.Len() == 0 {
		return State{}, false
	}
	dir = dir.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *State
	var bestT float32 = math32.MaxFloat32
	for _, name := range s.order {
		st := s.bodies[name]
		if t, ok := raySphere(origin, dir, st.Position, st.PickRadius); ok && t < bestT {
			best, bestT = st, t
		}
	}
	if best == nil {
		return State{}, false
	}
	return *best, true
}

func (s *systemImpl) SetSpeed(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = max(speed, 0)
}

// raySphere returns the nearest non-negative hit distance along a unit ray.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	if radius <= 0 {
		return 0, false
	}
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	// origin inside the sphere
	if t := -b + sq; t >= 0 {
		return 0, true
	}
	return 0, false
}
