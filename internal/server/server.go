package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/voxelworld/internal/config"
	"github.com/OCharnyshevich/voxelworld/internal/world"
)

const shutdownTimeout = 5 * time.Second

// Server streams procedurally generated worlds to websocket viewers. Every
// session owns its own World built from the shared config.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex // guards closing and sessions.Add
	closing  bool
	sessions sync.WaitGroup
}

// New creates a new Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP routes: /ws for the feed and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", s.handleFeed)
	return mux
}

// Start begins listening for connections and blocks until the context is
// cancelled and every session has finished.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	lc := net.ListenConfig{}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.log.Info("server started",
		"addr", listener.Addr().String(),
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"viewDistance", s.cfg.ViewDistance,
	)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(listener)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("shutdown", "error", err)
	}
	s.drain()
	return nil
}

// track registers a new session unless the server is draining.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions.Add(1)
	return true
}

// drain refuses new sessions and waits for the running ones to finish.
func (s *Server) drain() {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.sessions.Wait()
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Done()

	id := uuid.NewString()
	log := s.log.With("session", id, "addr", r.RemoteAddr)

	wld, err := world.New(s.cfg.WorldOptions(), log)
	if err != nil {
		log.Error("create world", "error", err)
		http.Error(w, "world unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade websocket", "error", err)
		return
	}

	spawn := mgl32.Vec2{s.cfg.SpawnX, s.cfg.SpawnZ}
	newSession(r.Context(), id, conn, wld, s.cfg.TickInterval(), spawn, log).Run()
}
