package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	queryBacklog   = 16
)

// Session streams one World to one websocket viewer. The World is only
// touched by the run goroutine; the read loop hands it observer positions and
// query requests over channels.
type Session struct {
	id    string
	conn  *websocket.Conn
	log   *slog.Logger
	world *world.World
	tick  time.Duration
	spawn mgl32.Vec2

	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex // guards writes to conn

	observe chan mgl32.Vec3
	queries chan mgl32.Vec3

	ticks uint64
}

func newSession(ctx context.Context, id string, conn *websocket.Conn, w *world.World, tick time.Duration, spawn mgl32.Vec2, log *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		id:      id,
		conn:    conn,
		log:     log,
		world:   w,
		tick:    tick,
		spawn:   spawn,
		ctx:     ctx,
		cancel:  cancel,
		observe: make(chan mgl32.Vec3, 1),
		queries: make(chan mgl32.Vec3, queryBacklog),
	}
}

// Run sends the hello and the initial chunks, then streams chunk diffs until
// the viewer disconnects or ctx is cancelled.
func (s *Session) Run() {
	defer func() {
		s.cancel()
		s.conn.Close()
		s.log.Info("session closed", "ticks", s.ticks, "chunks", s.world.LoadedCount())
	}()

	s.log.Info("session opened")

	spawn := s.world.FindSafeSpawn(s.spawn.X(), s.spawn.Y())
	settings := s.world.Settings()
	if err := s.write(HelloMessage{
		Type:        TypeHello,
		Session:     s.id,
		Spawn:       spawn,
		ChunkSize:   settings.ChunkSize,
		ChunkHeight: settings.ChunkHeight,
		SeaLevel:    settings.SeaLevel,
		Palette:     block.Palette(),
	}); err != nil {
		s.log.Error("write hello", "error", err)
		return
	}
	s.world.UpdateChunks(spawn)
	if err := s.sendLoaded(); err != nil {
		s.log.Error("write initial chunks", "error", err)
		return
	}

	go s.readLoop()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	var (
		observer mgl32.Vec3
		moved    bool
	)
	for {
		select {
		case <-s.ctx.Done():
			s.close(websocket.CloseGoingAway, "server shutting down")
			return
		case p := <-s.observe:
			observer, moved = p, true
		case p := <-s.queries:
			if err := s.write(s.query(p)); err != nil {
				s.log.Error("write query", "error", err)
				return
			}
		case <-ticker.C:
			s.ticks++
			if !moved {
				continue
			}
			moved = false
			if err := s.sendUpdate(s.world.UpdateChunks(observer)); err != nil {
				s.log.Error("write chunk update", "tick", s.ticks, "error", err)
				return
			}
		}
	}
}

// readLoop decodes client messages until the connection fails.
func (s *Session) readLoop() {
	defer s.cancel()
	s.conn.SetReadLimit(maxMessageSize)

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if s.ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("read message", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.reject(fmt.Sprintf("malformed message: %v", err))
			continue
		}

		switch msg.Type {
		case TypeObserve:
			s.pushObserver(msg.Position)
		case TypeQuery:
			select {
			case s.queries <- msg.Position:
			default:
				s.reject("too many pending queries")
			}
		default:
			s.reject(fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

// pushObserver replaces any position the run loop has not consumed yet.
func (s *Session) pushObserver(p mgl32.Vec3) {
	select {
	case s.observe <- p:
		return
	default:
	}
	select {
	case <-s.observe:
	default:
	}
	s.observe <- p
}

func (s *Session) query(p mgl32.Vec3) QueryMessage {
	x, y, z := p.Elem()
	return QueryMessage{
		Type:     TypeQuery,
		Position: p,
		Block:    s.world.BlockAt(x, y, z),
		Solid:    s.world.IsSolidAt(x, y, z),
		Surface:  s.world.SurfaceHeightAt(x, z),
	}
}

// sendUpdate forwards evictions first so a viewer never holds more chunks
// than the world does.
func (s *Session) sendUpdate(u world.Update) error {
	if len(u.Evicted) > 0 {
		if err := s.write(newEvictMessage(u.Evicted)); err != nil {
			return err
		}
	}
	for _, pos := range u.Loaded {
		c, ok := s.world.Chunk(pos)
		if !ok {
			continue
		}
		if err := s.write(newChunkMessage(c)); err != nil {
			return fmt.Errorf("send chunk %v: %w", pos, err)
		}
	}
	if len(u.Loaded) > 0 || len(u.Evicted) > 0 {
		s.log.Debug("sent chunk update",
			"center", u.Center,
			"loaded", len(u.Loaded),
			"evicted", len(u.Evicted),
		)
	}
	return nil
}

// sendLoaded sends every live chunk, including those the spawn search loaded
// outside the view distance.
func (s *Session) sendLoaded() error {
	var err error
	s.world.ForEachChunk(func(pos gen.ChunkPos, c *gen.Chunk) bool {
		if werr := s.write(newChunkMessage(c)); werr != nil {
			err = fmt.Errorf("send chunk %v: %w", pos, werr)
			return false
		}
		return true
	})
	return err
}

func (s *Session) reject(reason string) {
	s.log.Debug("rejected client message", "reason", reason)
	if err := s.write(ErrorMessage{Type: TypeError, Message: reason}); err != nil {
		s.log.Warn("write error message", "error", err)
	}
}

func (s *Session) write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := s.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func (s *Session) close(code int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		s.log.Debug("write close", "error", err)
	}
}
