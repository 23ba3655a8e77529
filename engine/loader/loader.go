package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// DefaultRetryDelay is the pause between two candidate attempts in LoadFirst.
const DefaultRetryDelay = time.Second

var (
	// ErrUnsupportedFormat is returned for paths whose extension has no backend.
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrNoCandidates is reported by LoadFirst when it is given no paths.
	ErrNoCandidates = errors.New("no candidate paths")
)

// DefaultCandidates returns the astronaut model locations tried at startup, in order.
//
// Returns:
//   - []string: the candidate paths
func DefaultCandidates() []string {
	return []string{
		"/模型存放点/astronaut/scene.gltf",
		"./模型存放点/astronaut/scene.gltf",
		"/astronaut/scene.gltf",
	}
}

// Progress reports bytes read for the file currently being loaded.
type Progress struct {
	Path  string
	Read  int64
	Total int64
}

// ProgressFunc receives Progress updates. It is called from the loading goroutine.
type ProgressFunc func(Progress)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]Model

	backend loaderBackend

	progress   ProgressFunc
	retryDelay time.Duration

	pool     worker.DynamicWorkerPool
	ownsPool bool
	taskID   int

	logger *slog.Logger
}

// Loader defines the public-facing interface for probing and caching model files.
// It abstracts the file format (glTF, GLB) behind a backend and caches models by path.
type Loader interface {
	// Load reads a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.gltf/.glb).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - Model: the loaded and cached model
	//   - error: error wrapping the path if loading fails
	Load(path string) (Model, error)

	// LoadReader reads a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (Model, error)

	// LoadFirst tries each candidate in order, pausing the retry delay between attempts,
	// and stops at the first one that loads. Cancellation ends the search as Exhausted.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - candidates: the paths to try, in order
	//
	// Returns:
	//   - Result: Loaded with the model and path, or Exhausted with every attempt error
	LoadFirst(ctx context.Context, candidates []string) Result

	// LoadAsync runs LoadFirst on the worker pool.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - candidates: the paths to try, in order
	//
	// Returns:
	//   - <-chan Result: a buffered channel that receives exactly one Result
	LoadAsync(ctx context.Context, candidates []string) <-chan Result

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - Model: the cached model or nil
	Get(name string) Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]Model: all cached models keyed by name
	Models() map[string]Model

	// Close stops the worker pool if the loader created it.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]Model),
		retryDelay: DefaultRetryDelay,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

func (l *loader) Load(path string) (Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	binary, err := l.resolveBackend(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	m, err := l.backend.Decode(data, filepath.Dir(path), path, binary)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	}

	m, err := l.backend.Decode(data, ".", name, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadFirst(ctx context.Context, candidates []string) Result {
	if len(candidates) == 0 {
		return Result{Status: StatusExhausted, Errs: []error{ErrNoCandidates}}
	}

	var errs []error
	for i, path := range candidates {
		if i > 0 && l.retryDelay > 0 {
			timer := time.NewTimer(l.retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return Result{Status: StatusExhausted, Errs: append(errs, ctx.Err())}
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusExhausted, Errs: append(errs, err)}
		}

		m, err := l.Load(path)
		if err != nil {
			l.logger.Warn("model candidate failed", "path", path, "attempt", i+1, "error", err)
			errs = append(errs, err)
			continue
		}
		l.logger.Info("model loaded", "path", path, "meshes", len(m.ListMeshes()), "animated", m.HasAnimation())
		return Result{Status: StatusLoaded, Asset: m, Path: path}
	}

	l.logger.Warn("no model candidate could be loaded", "candidates", len(candidates))
	return Result{Status: StatusExhausted, Errs: errs}
}

func (l *loader) LoadAsync(ctx context.Context, candidates []string) <-chan Result {
	out := make(chan Result, 1)
	paths := append([]string(nil), candidates...)

	l.mu.Lock()
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(1, 8, time.Second)
		l.ownsPool = true
	}
	pool := l.pool
	l.taskID++
	id := l.taskID
	l.mu.Unlock()

	pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: paths,
		Do: func() (any, error) {
			res := l.LoadFirst(ctx, paths)
			out <- res
			return res, res.Err()
		},
	})
	return out
}

func (l *loader) Get(name string) Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	l.mu.Lock()
	pool, owns := l.pool, l.ownsPool
	if owns {
		l.pool = nil
		l.ownsPool = false
	}
	l.mu.Unlock()
	if owns {
		pool.Stop()
	}
}

// resolveBackend checks the file extension and reports whether it is the binary variant.
func (l *loader) resolveBackend(path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf":
		return false, nil
	case ".glb":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// readFile reads a whole file, reporting progress when a callback is set.
func (l *loader) readFile(path string) ([]byte, error) {
	if l.progress == nil {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pr := &progressReader{r: f, path: path, total: info.Size(), report: l.progress}
	pr.report(Progress{Path: path, Total: pr.total})
	return io.ReadAll(pr)
}

type progressReader struct {
	r      io.Reader
	path   string
	read   int64
	total  int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report(Progress{Path: p.path, Read: p.read, Total: p.total})
	}
	return n, err
}
