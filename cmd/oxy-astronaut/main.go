// Command oxy-astronaut runs the astronaut walking demo: a third-person / first-person avatar
// controller in a small solar system, rendered into a GLFW window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-astronaut/engine"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/celestial"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/config"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/controller"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/loader"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/logger"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/profiler"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/renderer"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/sim"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML config file")
	watch := flag.Bool("watch", true, "reload the config file when it changes")
	telemetryAddr := flag.String("telemetry", "", "serve pose telemetry on this address, overriding the config")
	flag.Parse()

	if err := run(*configPath, *watch, *telemetryAddr); err != nil {
		logger.L().Error("astronaut failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func run(configPath string, watch bool, telemetryAddr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if telemetryAddr != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Addr = telemetryAddr
	}

	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log.Info("starting", "config", configPath, "tick_rate", cfg.Engine.TickRate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Window + Renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer func() {
		if err := win.Destroy(); err != nil {
			log.Warn("destroy window", "error", err)
		}
	}()

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithLogger(log.With("component", "renderer")),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	// ── Simulation ──────────────────────────────────────────────────────
	system, err := celestial.NewSystem(celestial.WithSpeed(cfg.Celestial.Speed))
	if err != nil {
		return fmt.Errorf("create celestial system: %w", err)
	}

	ctrl := controller.NewController(
		controller.WithSurface(win),
		controller.WithHintDisplay(win),
		controller.WithTuning(cfg.ToTuning()),
		controller.WithLogger(log.With("component", "controller")),
	)

	assets := loader.NewLoader(loader.BackendTypeGLTF,
		loader.WithRetryDelay(cfg.RetryDelay()),
		loader.WithLogger(log.With("component", "loader")),
	)
	defer assets.Close()

	eng := engine.NewEngine(
		engine.WithHost(win),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(log.With("component", "profiler")))),
		engine.WithLogger(log),
	)

	simOptions := []sim.SimulationBuilderOption{
		sim.WithController(ctrl),
		sim.WithSystem(system),
		sim.WithLoader(assets),
		sim.WithInfoDisplay(win),
		sim.WithViewport(win.Width(), win.Height()),
		sim.WithQuit(eng.Quit),
		sim.WithLogger(log.With("component", "sim")),
	}

	if configPath != "" && watch {
		watcher, err := config.NewWatcher(configPath, config.WithLogger(log.With("component", "config")))
		if err != nil {
			log.Warn("config reload disabled", "error", err)
		} else {
			defer watcher.Close()
			simOptions = append(simOptions, sim.WithConfigUpdates(watcher.Updates()))
		}
	}

	if cfg.Telemetry.Enabled {
		server := telemetry.NewServer(
			telemetry.WithAddr(cfg.Telemetry.Addr),
			telemetry.WithLogger(log.With("component", "telemetry")),
		)
		if err := server.Start(); err != nil {
			server.Close()
			return fmt.Errorf("start telemetry: %w", err)
		}
		defer server.Close()
		log.Info("telemetry listening", "addr", server.Addr(), "path", telemetry.PosePath)
		simOptions = append(simOptions, sim.WithPublisher(server))
	}

	s, err := sim.NewSimulationContext(simOptions...)
	if err != nil {
		return fmt.Errorf("create simulation: %w", err)
	}

	// ── Input wiring ────────────────────────────────────────────────────
	win.SetKeyDownCallback(s.HandleKeyDown)
	win.SetKeyUpCallback(s.HandleKeyUp)
	win.SetMouseButtonCallback(s.HandleMouseButton)
	win.SetMouseDeltaCallback(s.HandleMouseDelta)
	win.SetScrollCallback(s.HandleScroll)
	win.SetFocusCallback(s.HandleFocus)
	win.SetGamepadCallback(s.HandleJoystick)
	win.SetResizeCallback(func(width, height int) {
		s.HandleResize(width, height)
		r.Resize(width, height)
	})

	// ── Loop ────────────────────────────────────────────────────────────
	eng.SetTickCallback(s.Tick)
	eng.SetRenderCallback(func(float32) {
		if err := r.Render(); err != nil && !errors.Is(err, renderer.ErrRendererReleased) {
			log.Debug("frame skipped", "error", err)
		}
	})

	s.LoadAvatar(ctx, cfg.Loader.Candidates)
	eng.Run()

	log.Info("stopped", "ticks", eng.Ticks(), "frames", r.Frames())
	return nil
}
