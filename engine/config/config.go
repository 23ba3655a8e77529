package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-astronaut/common"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/controller"
	"github.com/Carmen-Shannon/oxy-astronaut/engine/loader"
	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. OXY_MOVEMENT_MOVE_SPEED.
const EnvPrefix = "OXY_"

// ErrUnsupportedFormat is returned by Load for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the runtime configuration of the demo.
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window" envPrefix:"WINDOW_"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging" envPrefix:"LOG_"`
	Movement  MovementConfig  `yaml:"movement" toml:"movement" envPrefix:"MOVEMENT_"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera" envPrefix:"CAMERA_"`
	Loader    LoaderConfig    `yaml:"loader" toml:"loader" envPrefix:"LOADER_"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry" envPrefix:"TELEMETRY_"`
	Engine    EngineConfig    `yaml:"engine" toml:"engine" envPrefix:"ENGINE_"`
	Celestial CelestialConfig `yaml:"celestial" toml:"celestial" envPrefix:"CELESTIAL_"`
}

type WindowConfig struct {
	Title  string `yaml:"title" toml:"title" env:"TITLE"`
	Width  int    `yaml:"width" toml:"width" env:"WIDTH"`
	Height int    `yaml:"height" toml:"height" env:"HEIGHT"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`
	Format string `yaml:"format" toml:"format" env:"FORMAT"`
}

type MovementConfig struct {
	MoveSpeed     float32 `yaml:"move_speed" toml:"move_speed" env:"MOVE_SPEED"`
	TurnRate      float32 `yaml:"turn_rate" toml:"turn_rate" env:"TURN_RATE"`
	VerticalSpeed float32 `yaml:"vertical_speed" toml:"vertical_speed" env:"VERTICAL_SPEED"`
	FreeFlight    bool    `yaml:"free_flight" toml:"free_flight" env:"FREE_FLIGHT"`
	BoundsX       float32 `yaml:"bounds_x" toml:"bounds_x" env:"BOUNDS_X"`
	BoundsZ       float32 `yaml:"bounds_z" toml:"bounds_z" env:"BOUNDS_Z"`
}

type CameraConfig struct {
	// Steering is "camera" or "avatar".
	Steering             string  `yaml:"steering" toml:"steering" env:"STEERING"`
	Smoothing            float32 `yaml:"smoothing" toml:"smoothing" env:"SMOOTHING"`
	FirstPersonSmoothing bool    `yaml:"first_person_smoothing" toml:"first_person_smoothing" env:"FIRST_PERSON_SMOOTHING"`
	YawWindowDegrees     float32 `yaml:"yaw_window_degrees" toml:"yaw_window_degrees" env:"YAW_WINDOW_DEGREES"`
	PitchLimitDegrees    float32 `yaml:"pitch_limit_degrees" toml:"pitch_limit_degrees" env:"PITCH_LIMIT_DEGREES"`
	EyeHeight            float32 `yaml:"eye_height" toml:"eye_height" env:"EYE_HEIGHT"`
	HeadHeight           float32 `yaml:"head_height" toml:"head_height" env:"HEAD_HEIGHT"`
}

type LoaderConfig struct {
	Candidates        []string `yaml:"candidates" toml:"candidates" env:"CANDIDATES" envSeparator:","`
	RetryDelaySeconds float64  `yaml:"retry_delay_seconds" toml:"retry_delay_seconds" env:"RETRY_DELAY_SECONDS"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" toml:"addr" env:"ADDR"`
}

type EngineConfig struct {
	TickRate  int  `yaml:"tick_rate" toml:"tick_rate" env:"TICK_RATE"`
	Profiling bool `yaml:"profiling" toml:"profiling" env:"PROFILING"`
}

type CelestialConfig struct {
	Speed float32 `yaml:"speed" toml:"speed" env:"SPEED"`
}

// Default returns the stock configuration. It mirrors controller.DefaultTuning.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	t := controller.DefaultTuning()
	return Config{
		Window:  WindowConfig{Title: "Astronaut", Width: 1280, Height: 720},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Movement: MovementConfig{
			MoveSpeed:     t.MoveSpeed,
			TurnRate:      t.TurnRate,
			VerticalSpeed: t.VerticalSpeed,
			FreeFlight:    t.FreeFlight,
			BoundsX:       t.Bounds.X,
			BoundsZ:       t.Bounds.Z,
		},
		Camera: CameraConfig{
			Steering:             t.Steering.String(),
			Smoothing:            t.Smoothing,
			FirstPersonSmoothing: t.FirstPersonSmoothing,
			YawWindowDegrees:     mgl32.RadToDeg(t.YawWindow),
			PitchLimitDegrees:    mgl32.RadToDeg(t.PitchLimit),
			EyeHeight:            t.EyeHeight,
			HeadHeight:           t.HeadHeight,
		},
		Loader: LoaderConfig{
			Candidates:        loader.DefaultCandidates(),
			RetryDelaySeconds: loader.DefaultRetryDelay.Seconds(),
		},
		Telemetry: TelemetryConfig{Addr: "127.0.0.1:8787"},
		Engine:    EngineConfig{TickRate: 60},
		Celestial: CelestialConfig{Speed: 1},
	}
}

// Load reads a YAML or TOML file over the defaults, applies OXY_ environment overrides and
// validates the result. An empty path skips the file.
//
// Parameters:
//   - path: the config file, selected by its .yaml, .yml or .toml extension
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse toml config: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// ApplyEnv overlays OXY_ environment variables onto cfg. Unset variables leave fields untouched.
//
// Parameters:
//   - cfg: the configuration to update in place
//
// Returns:
//   - error: error if a variable cannot be parsed
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}

	check(c.Movement.MoveSpeed > 0, "movement.move_speed must be positive, got %v", c.Movement.MoveSpeed)
	check(c.Movement.TurnRate > 0, "movement.turn_rate must be positive, got %v", c.Movement.TurnRate)
	check(c.Movement.VerticalSpeed >= 0, "movement.vertical_speed must not be negative, got %v", c.Movement.VerticalSpeed)
	check(c.Movement.BoundsX > 0, "movement.bounds_x must be positive, got %v", c.Movement.BoundsX)
	check(c.Movement.BoundsZ > 0, "movement.bounds_z must be positive, got %v", c.Movement.BoundsZ)

	if _, err := controller.ParseSteering(c.Camera.Steering); err != nil {
		errs = append(errs, err)
	}
	check(c.Camera.Smoothing > 0 && c.Camera.Smoothing <= 1, "camera.smoothing must be in (0, 1], got %v", c.Camera.Smoothing)
	check(c.Camera.YawWindowDegrees >= 0 && c.Camera.YawWindowDegrees <= 180, "camera.yaw_window_degrees must be in [0, 180], got %v", c.Camera.YawWindowDegrees)
	check(c.Camera.PitchLimitDegrees > 0 && c.Camera.PitchLimitDegrees < 90, "camera.pitch_limit_degrees must be in (0, 90), got %v", c.Camera.PitchLimitDegrees)

	check(c.Loader.RetryDelaySeconds >= 0, "loader.retry_delay_seconds must not be negative, got %v", c.Loader.RetryDelaySeconds)
	check(!c.Telemetry.Enabled || c.Telemetry.Addr != "", "telemetry.addr is required when telemetry is enabled")
	check(c.Engine.TickRate > 0, "engine.tick_rate must be positive, got %d", c.Engine.TickRate)
	check(c.Celestial.Speed >= 0, "celestial.speed must not be negative, got %v", c.Celestial.Speed)

	return errors.Join(errs...)
}

// RetryDelay returns the loader retry delay as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Loader.RetryDelaySeconds * float64(time.Second))
}

// ToTuning converts the movement and camera sections into controller tuning. Fields the
// config does not cover keep their controller defaults. The config must be valid.
//
// Returns:
//   - controller.Tuning: the tuning to hand to the controller
func (c Config) ToTuning() controller.Tuning {
	t := controller.DefaultTuning()
	t.MoveSpeed = c.Movement.MoveSpeed
	t.TurnRate = c.Movement.TurnRate
	t.VerticalSpeed = c.Movement.VerticalSpeed
	t.FreeFlight = c.Movement.FreeFlight
	t.Bounds = common.Bounds{X: c.Movement.BoundsX, Z: c.Movement.BoundsZ}

	t.Steering, _ = controller.ParseSteering(c.Camera.Steering)
	t.Smoothing = c.Camera.Smoothing
	t.FirstPersonSmoothing = c.Camera.FirstPersonSmoothing
	t.YawWindow = mgl32.DegToRad(c.Camera.YawWindowDegrees)
	t.PitchLimit = mgl32.DegToRad(c.Camera.PitchLimitDegrees)
	t.EyeHeight = c.Camera.EyeHeight
	t.HeadHeight = c.Camera.HeadHeight
	return t
}
