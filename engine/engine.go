package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-astronaut/engine/profiler"
)

// Host owns the platform message loop. The engine runs inside its update callback, so ticks
// and input events are dispatched on the same thread and never race.
type Host interface {
	// SetUpdateCallback registers the function called once per message-loop iteration.
	SetUpdateCallback(callback func())

	// ProcessMessages runs the message loop until the host closes.
	ProcessMessages()

	// IsRunning reports whether the message loop is still running.
	IsRunning() bool

	// Close asks the message loop to stop.
	Close()
}

// engine implements the Engine interface.
// Converts host frames into fixed-rate ticks.
type engine struct {
	mu *sync.Mutex

	host Host

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate   time.Duration
	maxStepsPerFrame int
	tickCallback     func(deltaTime float32)
	renderCallback   func(deltaTime float32)

	now         func() time.Time
	lastFrame   time.Time
	accumulator time.Duration
	ticks       uint64

	logger *slog.Logger
}

// Engine drives the simulation at a fixed tick rate from the host's message loop.
type Engine interface {
	// Host returns the message-loop host.
	//
	// Returns:
	//   - Host: the host, or nil if none was configured
	Host() Host

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate with a constant delta.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the duration of one tick.
	//
	// Returns:
	//   - time.Duration: the tick period
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick.
	// Use this for simulation, input sampling and camera updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per host frame after the ticks.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the frame duration in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Frame advances the engine by the wall time elapsed since the previous frame. It is the
	// host update callback and is exported for hosts that drive the engine themselves.
	Frame()

	// Ticks returns the number of ticks run so far.
	//
	// Returns:
	//   - uint64: the tick count
	Ticks() uint64

	// Run installs the frame callback and blocks in the host message loop until it closes.
	Run()

	// Quit stops the host loop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called or the host loop has ended.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		quitChannel:      make(chan struct{}),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		maxStepsPerFrame: 5,
		now:              time.Now,
		logger:           slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) Run() {
	if e.host == nil {
		e.logger.Error("engine has no host")
		return
	}
	e.host.SetUpdateCallback(e.Frame)
	e.host.ProcessMessages()
	e.signalQuit()
}

func (e *engine) Quit() {
	e.signalQuit()
	if e.host != nil {
		e.host.Close()
	}
}

// signalQuit closes the quit channel. Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

func (e *engine) Frame() {
	select {
	case <-e.quitChannel:
		return
	default:
	}

	e.mu.Lock()
	now := e.now()
	if e.lastFrame.IsZero() {
		e.lastFrame = now
	}
	frame := now.Sub(e.lastFrame)
	e.lastFrame = now
	if frame < 0 {
		frame = 0
	}
	e.accumulator += frame

	rate := e.engineTickRate
	steps := 0
	for e.accumulator >= rate && steps < e.maxStepsPerFrame {
		e.accumulator -= rate
		steps++
	}
	if steps == e.maxStepsPerFrame && e.accumulator >= rate {
		// Too far behind, e.g. after a stall; drop the backlog instead of spiraling.
		e.logger.Debug("dropping tick backlog", "behind", e.accumulator)
		e.accumulator = 0
	}
	e.ticks += uint64(steps)
	tick, render := e.tickCallback, e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	// Callbacks run without the mutex; they may call back into the engine.
	dt := float32(rate.Seconds())
	for range steps {
		if tick != nil {
			tick(dt)
		}
	}
	if render != nil {
		render(float32(frame.Seconds()))
	}
	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// The change takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = tickPeriod(fps)
}

func (e *engine) TickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// tickPeriod converts a rate to a period, treating values <= 0 as 60Hz.
func tickPeriod(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
