package telemetry

import (
	"log/slog"
	"net/http"
	"time"
)

// ServerBuilderOption is a functional option for configuring a Server via NewServer.
type ServerBuilderOption func(*serverImpl)

// WithAddr sets the listen address used by Start.
//
// Parameters:
//   - addr: host:port, port 0 picks a free port
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAddr(addr string) ServerBuilderOption {
	return func(s *serverImpl) {
		s.addr = addr
	}
}

// WithWriteTimeout bounds each websocket write. Slow clients are dropped.
//
// Parameters:
//   - timeout: the write deadline, ignored if not positive
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithWriteTimeout(timeout time.Duration) ServerBuilderOption {
	return func(s *serverImpl) {
		if timeout > 0 {
			s.writeTimeout = timeout
		}
	}
}

// WithAllowedOrigin replaces the same-origin check. An empty origin allows every origin.
//
// Parameters:
//   - origin: the allowed Origin header value
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAllowedOrigin(origin string) ServerBuilderOption {
	return func(s *serverImpl) {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return origin == "" || r.Header.Get("Origin") == origin
		}
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ServerBuilderOption {
	return func(s *serverImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
