package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the deep-space background, #0a0a1a.
var DefaultClearColor = wgpu.Color{R: 10.0 / 255, G: 10.0 / 255, B: 26.0 / 255, A: 1}

// ErrRendererReleased is returned by Render after Release.
var ErrRendererReleased = errors.New("renderer released")

// Surface is the window-side source of a presentable GPU surface.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor    wgpu.Color
	width, height int
	needsConfig   bool
	frames        uint64
	released      bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode

	logger *slog.Logger
}

// Renderer presents the window surface once per host frame.
//
// The scene itself is not rasterized; each frame clears the surface to the background color so the
// window stays live and the swapchain tracks resizes and present mode.
type Renderer interface {
	// Render clears and presents one frame. Frames are skipped while the surface has zero area.
	// A failed surface acquisition reconfigures the surface before the next frame.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	Render() error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode changes the surface present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - color: the clear color
	SetClearColor(color wgpu.Color)

	// ClearColor returns the background color.
	//
	// Returns:
	//   - wgpu.Color: the clear color
	ClearColor() wgpu.Color

	// Frames returns the number of frames presented.
	//
	// Returns:
	//   - uint64: the presented frame count
	Frames() uint64

	// Release frees the backend. Later Render calls return ErrRendererReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface and configures it at the surface's current size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window providing the surface descriptor and framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the GPU backend could not be created or configured
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  DefaultClearColor,
		width:       surface.Width(),
		height:      surface.Height(),
		logger:      slog.Default(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
			if err != nil {
				return nil, fmt.Errorf("create renderer backend: %w", err)
			}
			r.backend = b
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if r.width > 0 && r.height > 0 {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			r.backend.Release()
			return nil, fmt.Errorf("configure surface: %w", err)
		}
	}
	return r, nil
}

func (r *renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	if r.needsConfig {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			return fmt.Errorf("configure surface: %w", err)
		}
		r.needsConfig = false
	}

	if err := r.backend.BeginFrame(r.clearColor); err != nil {
		r.needsConfig = true
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	r.frames++
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		// minimized; configure again once the surface has area
		r.needsConfig = true
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Warn("surface resize failed", "width", width, "height", height, "error", err)
		r.needsConfig = true
		return
	}
	r.needsConfig = false
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.backend.SetPresentMode(mode)
	r.needsConfig = true
}

func (r *renderer) SetClearColor(color wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
}

func (r *renderer) ClearColor() wgpu.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
