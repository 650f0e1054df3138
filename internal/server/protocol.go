package server

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// Message types.
const (
	TypeHello   = "hello"
	TypeChunk   = "chunk"
	TypeEvict   = "evict"
	TypeQuery   = "query"
	TypeError   = "error"
	TypeObserve = "observe"
)

// ClientMessage is sent by a viewer: "observe" moves the observer, "query"
// asks what is at a position.
type ClientMessage struct {
	Type     string     `json:"type"`
	Position mgl32.Vec3 `json:"position"`
}

// HelloMessage opens every session.
type HelloMessage struct {
	Type        string                `json:"type"`
	Session     string                `json:"session"`
	Spawn       mgl32.Vec3            `json:"spawn"`
	ChunkSize   int                   `json:"chunkSize"`
	ChunkHeight int                   `json:"chunkHeight"`
	SeaLevel    int                   `json:"seaLevel"`
	Palette     map[string]mgl32.Vec3 `json:"palette"`
}

// ChunkMessage carries every non-air block of a loaded chunk.
type ChunkMessage struct {
	Type   string       `json:"type"`
	Chunk  [2]int       `json:"chunk"`
	Blocks []BlockEntry `json:"blocks"`
}

// EvictMessage lists chunks the viewer should drop.
type EvictMessage struct {
	Type   string   `json:"type"`
	Chunks [][2]int `json:"chunks"`
}

// QueryMessage answers a query request.
type QueryMessage struct {
	Type     string     `json:"type"`
	Position mgl32.Vec3 `json:"position"`
	Block    block.Kind `json:"block"`
	Solid    bool       `json:"solid"`
	Surface  float32    `json:"surface"`
}

// ErrorMessage reports a rejected client message. The session stays open.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BlockEntry is encoded as [lx, ly, lz, "kind"].
type BlockEntry struct {
	X, Y, Z int
	Kind    block.Kind
}

func (e BlockEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]any{e.X, e.Y, e.Z, e.Kind})
}

func (e *BlockEntry) UnmarshalJSON(data []byte) error {
	var raw [4]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode block entry: %w", err)
	}
	for i, dst := range []*int{&e.X, &e.Y, &e.Z} {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("decode block entry coordinate %d: %w", i, err)
		}
	}
	if err := json.Unmarshal(raw[3], &e.Kind); err != nil {
		return fmt.Errorf("decode block entry kind: %w", err)
	}
	return nil
}

func newChunkMessage(c *gen.Chunk) ChunkMessage {
	pos := c.Pos()
	msg := ChunkMessage{
		Type:   TypeChunk,
		Chunk:  [2]int{pos.X, pos.Z},
		Blocks: make([]BlockEntry, 0, c.Len()),
	}
	c.ForEach(func(p gen.LocalPos, kind block.Kind) bool {
		msg.Blocks = append(msg.Blocks, BlockEntry{X: p.X, Y: p.Y, Z: p.Z, Kind: kind})
		return true
	})
	return msg
}

func newEvictMessage(evicted []gen.ChunkPos) EvictMessage {
	msg := EvictMessage{Type: TypeEvict, Chunks: make([][2]int, 0, len(evicted))}
	for _, pos := range evicted {
		msg.Chunks = append(msg.Chunks, [2]int{pos.X, pos.Z})
	}
	return msg
}
