package gen

import (
	"math"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
)

// ChunkPos identifies a chunk column by its X and Z chunk coordinates.
type ChunkPos struct{ X, Z int }

// ChunkPosFromWorld returns the chunk containing the world-space point (x, z).
func ChunkPosFromWorld(x, z float32, size int) ChunkPos {
	return ChunkPos{
		X: int(math.Floor(float64(x) / float64(size))),
		Z: int(math.Floor(float64(z) / float64(size))),
	}
}

// Chebyshev returns max(|dx|, |dz|) between two chunk positions.
func (p ChunkPos) Chebyshev(o ChunkPos) int {
	return max(abs(p.X-o.X), abs(p.Z-o.Z))
}

// LocalPos is a block index inside a chunk.
type LocalPos struct{ X, Y, Z int }

// Chunk is a Size×Height×Size column of blocks. Only non-air blocks are
// stored; a missing entry reads as air.
type Chunk struct {
	pos       ChunkPos
	size      int
	height    int
	blocks    map[LocalPos]block.Kind
	generated bool
}

// NewChunk creates an empty, ungenerated chunk.
func NewChunk(pos ChunkPos, size, height int) *Chunk {
	return &Chunk{
		pos:    pos,
		size:   size,
		height: height,
		blocks: make(map[LocalPos]block.Kind),
	}
}

func (c *Chunk) Pos() ChunkPos { return c.pos }
func (c *Chunk) Size() int     { return c.size }
func (c *Chunk) Height() int   { return c.height }

// Origin returns the world block coordinates of local (0, 0).
func (c *Chunk) Origin() (x, z int) {
	return c.pos.X * c.size, c.pos.Z * c.size
}

// InBounds reports whether the local index lies inside the chunk.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && z >= 0 && z < c.size && y >= 0 && y < c.height
}

// Get returns the block at the local index, or air when the index is out of
// bounds or unset.
func (c *Chunk) Get(x, y, z int) block.Kind {
	if !c.InBounds(x, y, z) {
		return block.Air
	}
	return c.blocks[LocalPos{x, y, z}]
}

// Set stores kind at the local index. Setting air removes the entry.
// Out-of-bounds indices are ignored.
func (c *Chunk) Set(x, y, z int, kind block.Kind) {
	if !c.InBounds(x, y, z) {
		return
	}
	p := LocalPos{x, y, z}
	if kind == block.Air {
		delete(c.blocks, p)
		return
	}
	c.blocks[p] = kind
}

// WorldToLocal converts a world-space column to local indices, clamped into
// [0, Size).
func (c *Chunk) WorldToLocal(wx, wz float32) (x, z int) {
	ox, oz := c.Origin()
	x = clampInt(int(math.Floor(float64(wx)))-ox, 0, c.size-1)
	z = clampInt(int(math.Floor(float64(wz)))-oz, 0, c.size-1)
	return x, z
}

// Generated reports whether a generator has filled the chunk.
func (c *Chunk) Generated() bool { return c.generated }

// MarkGenerated flags the chunk as filled.
func (c *Chunk) MarkGenerated() { c.generated = true }

// Len returns the number of stored (non-air) blocks.
func (c *Chunk) Len() int { return len(c.blocks) }

// ForEach calls fn for every non-air block in y, z, x order until fn returns
// false.
func (c *Chunk) ForEach(fn func(p LocalPos, kind block.Kind) bool) {
	if len(c.blocks) == 0 {
		return
	}
	for y := 0; y < c.height; y++ {
		for z := 0; z < c.size; z++ {
			for x := 0; x < c.size; x++ {
				p := LocalPos{x, y, z}
				kind, ok := c.blocks[p]
				if !ok {
					continue
				}
				if !fn(p, kind) {
					return
				}
			}
		}
	}
}

// Equal reports whether two chunks hold the same position, dimensions and
// block content.
func (c *Chunk) Equal(o *Chunk) bool {
	if c.pos != o.pos || c.size != o.size || c.height != o.height || len(c.blocks) != len(o.blocks) {
		return false
	}
	for p, kind := range c.blocks {
		if o.blocks[p] != kind {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
