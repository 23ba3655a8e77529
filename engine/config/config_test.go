package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-astronaut/engine/controller"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
movement:
  move_speed: 9
  free_flight: true
camera:
  steering: avatar
  pitch_limit_degrees: 60
loader:
  candidates: ["a.gltf", "b.glb"]
  retry_delay_seconds: 0.5
`

const tomlConfig = `
[movement]
move_speed = 9.0
free_flight = true

[camera]
steering = "avatar"
pitch_limit_degrees = 60.0

[loader]
candidates = ["a.gltf", "b.glb"]
retry_delay_seconds = 0.5
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "oxy.yaml", yamlConfig},
		{"yml", "oxy.yml", yamlConfig},
		{"toml", "oxy.toml", tomlConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, float32(9), cfg.Movement.MoveSpeed)
			assert.True(t, cfg.Movement.FreeFlight)
			assert.Equal(t, "avatar", cfg.Camera.Steering)
			assert.Equal(t, float32(60), cfg.Camera.PitchLimitDegrees)
			assert.Equal(t, []string{"a.gltf", "b.glb"}, cfg.Loader.Candidates)
			assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay())

			// omitted fields keep their defaults
			def := Default()
			assert.Equal(t, def.Movement.TurnRate, cfg.Movement.TurnRate)
			assert.Equal(t, def.Window, cfg.Window)
			assert.Equal(t, def.Engine.TickRate, cfg.Engine.TickRate)
		})
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("OXY_MOVEMENT_MOVE_SPEED", "12")
	t.Setenv("OXY_LOADER_CANDIDATES", "x.glb,y.gltf")
	t.Setenv("OXY_ENGINE_PROFILING", "true")

	cfg, err := Load(writeConfig(t, "oxy.yaml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, float32(12), cfg.Movement.MoveSpeed)
	assert.Equal(t, []string{"x.glb", "y.gltf"}, cfg.Loader.Candidates)
	assert.True(t, cfg.Engine.Profiling)
	assert.Equal(t, "avatar", cfg.Camera.Steering, "file values survive when no variable is set")
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("OXY_ENGINE_TICK_RATE", "fast")
	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "oxy.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeConfig(t, "oxy.yaml", "movement: [1, 2"))
	assert.ErrorContains(t, err, "parse yaml config")

	_, err = Load(writeConfig(t, "oxy.toml", "movement = "))
	assert.ErrorContains(t, err, "parse toml config")
}

func TestValidateJoinsProblems(t *testing.T) {
	cfg := Default()
	cfg.Movement.MoveSpeed = 0
	cfg.Camera.Steering = "sideways"
	cfg.Camera.PitchLimitDegrees = 95
	cfg.Engine.TickRate = 0
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"move_speed", "sideways", "pitch_limit_degrees", "tick_rate", "telemetry.addr"} {
		assert.ErrorContains(t, err, want)
	}

	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsUnboundedMovement(t *testing.T) {
	tests := []struct {
		name    string
		x, z    float32
		wantErr []string
	}{
		{"zero x", 0, 50, []string{"movement.bounds_x"}},
		{"zero z", 50, 0, []string{"movement.bounds_z"}},
		{"both zero", 0, 0, []string{"movement.bounds_x", "movement.bounds_z"}},
		{"negative", -5, 50, []string{"movement.bounds_x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Movement.BoundsX, cfg.Movement.BoundsZ = tt.x, tt.z
			err := cfg.Validate()
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestLoadRejectsZeroBound(t *testing.T) {
	t.Setenv("OXY_MOVEMENT_BOUNDS_X", "0")
	_, err := Load(writeConfig(t, "oxy.yaml", yamlConfig))
	assert.ErrorContains(t, err, "movement.bounds_x")
}

func TestDefaultMatchesControllerTuning(t *testing.T) {
	got := Default().ToTuning()
	want := controller.DefaultTuning()
	assert.Equal(t, want.MoveSpeed, got.MoveSpeed)
	assert.Equal(t, want.Bounds, got.Bounds)
	assert.Equal(t, want.Steering, got.Steering)
	assert.InDelta(t, want.PitchLimit, got.PitchLimit, 1e-5)
	assert.InDelta(t, want.YawWindow, got.YawWindow, 1e-5)
}

func TestToTuning(t *testing.T) {
	cfg, err := Load(writeConfig(t, "oxy.toml", tomlConfig))
	require.NoError(t, err)

	tuning := cfg.ToTuning()
	assert.Equal(t, float32(9), tuning.MoveSpeed)
	assert.True(t, tuning.FreeFlight)
	assert.Equal(t, controller.SteerWithAvatar, tuning.Steering)
	assert.InDelta(t, mgl32.DegToRad(60), tuning.PitchLimit, 1e-6)
	assert.Equal(t, controller.DefaultHint, tuning.Hint)
}
