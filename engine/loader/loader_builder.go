package loader

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithProgress sets a callback for file read progress.
//
// Parameters:
//   - fn: the progress callback
//
// Returns:
//   - LoaderBuilderOption: a function that applies the progress option to a loader
func WithProgress(fn ProgressFunc) LoaderBuilderOption {
	return func(l *loader) {
		l.progress = fn
	}
}

// WithRetryDelay sets the pause between candidate attempts. Zero disables the pause.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - LoaderBuilderOption: a function that applies the delay option to a loader
func WithRetryDelay(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if d >= 0 {
			l.retryDelay = d
		}
	}
}

// WithWorkerPool sets the pool LoadAsync submits to. The loader does not stop a pool it did not create.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pool option to a loader
func WithWorkerPool(pool worker.DynamicWorkerPool) LoaderBuilderOption {
	return func(l *loader) {
		l.pool = pool
	}
}

// WithLogger sets the logger for candidate attempts.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
