package world

import (
	"cmp"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// surfaceClearance lifts a reported surface height half a block above the
// top of the highest solid block.
const surfaceClearance = 1.5

// World streams generated chunks around an observer and answers block
// queries. A World has a single owner and is not safe for concurrent use.
type World struct {
	opts      Options
	log       *slog.Logger
	generator gen.Generator
	chunks    map[gen.ChunkPos]*gen.Chunk
}

// Update lists the chunks an UpdateChunks call loaded and evicted, in
// ascending (X, Z) order.
type Update struct {
	Center  gen.ChunkPos
	Loaded  []gen.ChunkPos
	Evicted []gen.ChunkPos
}

// New validates opts and creates an empty World. A nil log discards output.
func New(opts Options, log *slog.Logger) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &World{
		opts:      opts,
		log:       log,
		generator: opts.newGenerator(),
		chunks:    make(map[gen.ChunkPos]*gen.Chunk),
	}, nil
}

// Options returns the options the world was built with.
func (w *World) Options() Options { return w.opts }

// Settings returns the terrain settings chunks are generated with.
func (w *World) Settings() gen.Settings { return w.opts.Terrain }

// UpdateChunks loads every chunk within the render distance of the observer
// and evicts every chunk beyond render distance plus the eviction margin.
func (w *World) UpdateChunks(observer mgl32.Vec3) Update {
	center := w.chunkPos(observer.X(), observer.Z())
	r := w.opts.RenderDistance
	u := Update{Center: center}

	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			pos := gen.ChunkPos{X: center.X + dx, Z: center.Z + dz}
			if _, ok := w.chunks[pos]; ok {
				continue
			}
			w.load(pos)
			u.Loaded = append(u.Loaded, pos)
		}
	}

	limit := r + w.opts.EvictionMargin
	for pos := range w.chunks {
		if pos.Chebyshev(center) > limit {
			delete(w.chunks, pos)
			u.Evicted = append(u.Evicted, pos)
		}
	}
	slices.SortFunc(u.Evicted, comparePos)

	if len(u.Loaded) > 0 || len(u.Evicted) > 0 {
		w.log.Debug("chunks updated",
			"center", center,
			"loaded", len(u.Loaded),
			"evicted", len(u.Evicted),
			"live", len(w.chunks),
		)
	}
	return u
}

// BlockAt returns the block at a world position, or air when its chunk is
// not loaded. It never generates.
func (w *World) BlockAt(x, y, z float32) block.Kind {
	c, ok := w.chunks[w.chunkPos(x, z)]
	if !ok {
		return block.Air
	}
	lx, lz := c.WorldToLocal(x, z)
	return c.Get(lx, int(math.Floor(float64(y))), lz)
}

// IsSolidAt reports whether the block at a world position is solid.
func (w *World) IsSolidAt(x, y, z float32) bool {
	return w.BlockAt(x, y, z).IsSolid()
}

// SurfaceHeightAt returns the height an entity can stand at in the column
// (x, z): the top solid block's y plus 1.5. When the chunk is not loaded or
// the column holds no solid block it returns SeaLevel+5, which callers should
// treat as a guess.
func (w *World) SurfaceHeightAt(x, z float32) float32 {
	fallback := float32(w.opts.Terrain.SeaLevel) + 5
	c, ok := w.chunks[w.chunkPos(x, z)]
	if !ok {
		return fallback
	}
	lx, lz := c.WorldToLocal(x, z)
	for y := c.Height() - 1; y >= 0; y-- {
		if c.Get(lx, y, lz).IsSolid() {
			return float32(y) + surfaceClearance
		}
	}
	return fallback
}

// Chunk returns the loaded chunk at pos.
func (w *World) Chunk(pos gen.ChunkPos) (*gen.Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// ForEachChunk calls fn for every loaded chunk in ascending (X, Z) order
// until fn returns false.
func (w *World) ForEachChunk(fn func(pos gen.ChunkPos, c *gen.Chunk) bool) {
	keys := make([]gen.ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		keys = append(keys, pos)
	}
	slices.SortFunc(keys, comparePos)
	for _, pos := range keys {
		if !fn(pos, w.chunks[pos]) {
			return
		}
	}
}

// LoadedCount returns the number of live chunks.
func (w *World) LoadedCount() int { return len(w.chunks) }

// ensureChunk loads pos if it is missing.
func (w *World) ensureChunk(pos gen.ChunkPos) {
	if _, ok := w.chunks[pos]; !ok {
		w.load(pos)
	}
}

// load generates pos in full before it becomes visible to queries.
func (w *World) load(pos gen.ChunkPos) {
	t := w.opts.Terrain
	c := gen.NewChunk(pos, t.ChunkSize, t.ChunkHeight)
	w.generator.Generate(c)
	w.chunks[pos] = c
}

func (w *World) chunkPos(x, z float32) gen.ChunkPos {
	return gen.ChunkPosFromWorld(x, z, w.opts.Terrain.ChunkSize)
}

func comparePos(a, b gen.ChunkPos) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}
