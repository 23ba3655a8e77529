package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct{ width, height int }

func (s fakeSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (s fakeSurface) Width() int { return s.width }
func (s fakeSurface) Height() int { return s.height }

type fakeBackend struct {
	configured [][2]int
	mode       PresentMode
	clears     []wgpu.Color
	ended      int
	presented  int
	released   int
	beginErr   error
	configErr  error
}

func (b *fakeBackend) ConfigureSurface(width, height int) error {
	if b.configErr != nil {
		return b.configErr
	}
	b.configured = append(b.configured, [2]int{width, height})
	return nil
}

func (b *fakeBackend) SetPresentMode(mode PresentMode) { b.mode = mode }

func (b *fakeBackend) BeginFrame(clear wgpu.Color) error {
	if b.beginErr != nil {
		return b.beginErr
	}
	b.clears = append(b.clears, clear)
	return nil
}

func (b *fakeBackend) EndFrame() error { b.ended++; return nil }
func (b *fakeBackend) Present() { b.presented++ }
func (b *fakeBackend) Release() { b.released++ }

func TestNewRendererConfiguresSurface(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{1280, 720}, WithBackend(b), WithPresentMode(PresentModeUncapped))
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1280, 720}}, b.configured)
	assert.Equal(t, PresentModeUncapped, b.mode)
	assert.Equal(t, DefaultClearColor, r.ClearColor())
}

func TestNewRendererConfigureError(t *testing.T) {
	b := &fakeBackend{configErr: errors.New("no formats")}
	_, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.Error(t, err)
	assert.Equal(t, 1, b.released)
}

func TestNewRendererWithoutWindowSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480})
	assert.Error(t, err)
}

func TestRenderClearsAndPresents(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.NoError(t, err)

	require.NoError(t, r.Render())
	red := wgpu.Color{R: 1, A: 1}
	r.SetClearColor(red)
	require.NoError(t, r.Render())

	assert.Equal(t, []wgpu.Color{DefaultClearColor, red}, b.clears)
	assert.Equal(t, 2, b.ended)
	assert.Equal(t, 2, b.presented)
	assert.Equal(t, uint64(2), r.Frames())
}

func TestRenderSkipsEmptySurface(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.NoError(t, err)

	r.Resize(0, 0)
	require.NoError(t, r.Render())
	assert.Empty(t, b.clears)

	r.Resize(800, 600)
	require.NoError(t, r.Render())
	assert.Equal(t, [][2]int{{640, 480}, {800, 600}}, b.configured)
	assert.Len(t, b.clears, 1)
}

func TestRenderReconfiguresAfterLostSurface(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.NoError(t, err)

	b.beginErr = errors.New("surface outdated")
	require.Error(t, r.Render())
	assert.Equal(t, uint64(0), r.Frames())

	b.beginErr = nil
	require.NoError(t, r.Render())
	assert.Len(t, b.configured, 2)
	assert.Equal(t, uint64(1), r.Frames())
}

func TestPresentModeReconfigures(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.NoError(t, err)

	r.SetPresentMode(PresentModeVSync)
	require.NoError(t, r.Render())
	assert.Equal(t, PresentModeVSync, b.mode)
	assert.Len(t, b.configured, 2)
}

func TestRelease(t *testing.T) {
	b := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480}, WithBackend(b))
	require.NoError(t, err)

	r.Release()
	r.Release()
	assert.Equal(t, 1, b.released)
	assert.ErrorIs(t, r.Render(), ErrRendererReleased)
}
