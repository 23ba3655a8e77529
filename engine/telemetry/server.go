package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// PosePath is the websocket endpoint streaming snapshots.
const PosePath = "/pose"

// Server streams published snapshots to websocket clients.
type Server interface {
	// Publish queues a snapshot for broadcast without blocking. A snapshot still waiting
	// in the queue is replaced.
	//
	// Parameters:
	//   - snap: the snapshot to broadcast
	Publish(snap Snapshot)

	// Last returns the most recently broadcast snapshot.
	//
	// Returns:
	//   - Snapshot: the snapshot
	//   - bool: false before the first broadcast
	Last() (Snapshot, bool)

	// Handler returns the HTTP handler serving PosePath.
	//
	// Returns:
	//   - http.Handler: the handler
	Handler() http.Handler

	// Start listens on the configured address and serves in the background.
	//
	// Returns:
	//   - error: error if the address cannot be bound
	Start() error

	// Addr returns the bound address after Start, or the configured address before.
	Addr() string

	// Close stops serving, disconnects every client and stops the broadcaster.
	//
	// Returns:
	//   - error: error from the HTTP server shutdown
	Close() error
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeJSON(timeout time.Duration, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

type serverImpl struct {
	mu *sync.Mutex

	addr         string
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
	logger       *slog.Logger

	queue   chan Snapshot
	clients map[*client]struct{}
	last    *Snapshot

	httpServer *http.Server
	listener   net.Listener

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ Server = &serverImpl{}

// NewServer creates a server and starts its broadcaster. Call Start to listen.
//
// Parameters:
//   - options: optional builder options
//
// Returns:
//   - Server: the server
func NewServer(options ...ServerBuilderOption) Server {
	s := &serverImpl{
		mu:           &sync.Mutex{},
		addr:         "127.0.0.1:8787",
		writeTimeout: time.Second,
		logger:       slog.Default(),
		queue:        make(chan Snapshot, 1),
		clients:      make(map[*client]struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}

	s.wg.Add(1)
	go s.broadcast()
	return s
}

func (s *serverImpl) Publish(snap Snapshot) {
	select {
	case s.queue <- snap:
		return
	default:
	}
	// Replace the stale snapshot. The broadcaster may take it first, in which case the
	// queue is empty and the send still succeeds.
	select {
	case <-s.queue:
	default:
	}
	select {
	case s.queue <- snap:
	default:
	}
}

func (s *serverImpl) Last() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Snapshot{}, false
	}
	return *s.last, true
}

func (s *serverImpl) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PosePath, s.handlePose)
	return mux
}

func (s *serverImpl) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("telemetry listening", "addr", ln.Addr().String(), "path", PosePath)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("telemetry server stopped", "error", err)
		}
	}()
	return nil
}

func (s *serverImpl) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *serverImpl) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()

		s.mu.Lock()
		srv := s.httpServer
		clients := s.clients
		s.clients = make(map[*client]struct{})
		s.mu.Unlock()

		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			err = srv.Shutdown(ctx)
		}
		// Hijacked websocket connections are not tracked by Shutdown.
		for c := range clients {
			c.conn.Close()
		}
	})
	return err
}

func (s *serverImpl) handlePose(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("telemetry upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return
	default:
	}
	s.clients[c] = struct{}{}
	last := s.last
	s.mu.Unlock()

	s.logger.Debug("telemetry client connected", "remote", r.RemoteAddr)
	if last != nil {
		if err := c.writeJSON(s.writeTimeout, last); err != nil {
			s.drop(c)
			return
		}
	}

	// Incoming messages are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(c)
	s.logger.Debug("telemetry client disconnected", "remote", r.RemoteAddr)
}

func (s *serverImpl) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.conn.Close()
}

func (s *serverImpl) broadcast() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case snap := <-s.queue:
			s.mu.Lock()
			s.last = &snap
			targets := make([]*client, 0, len(s.clients))
			for c := range s.clients {
				targets = append(targets, c)
			}
			s.mu.Unlock()

			for _, c := range targets {
				if err := c.writeJSON(s.writeTimeout, snap); err != nil {
					s.logger.Debug("telemetry write failed", "error", err)
					s.drop(c)
				}
			}
		}
	}
}
