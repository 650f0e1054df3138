package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// column caches the per-column values decoration needs.
type column struct {
	surface int
	biome   Biome
}

// TreeGenerator places oak trees in forest columns.
type TreeGenerator struct {
	seed     int64
	seaLevel int
}

// NewTreeGenerator creates a TreeGenerator from a seed.
func NewTreeGenerator(seed int64, seaLevel int) *TreeGenerator {
	return &TreeGenerator{seed: seed, seaLevel: seaLevel}
}

// Decorate plants trees in c. cols is indexed by z*size+x. Trees are clipped
// to the chunk and only ever replace air.
func (tg *TreeGenerator) Decorate(c *Chunk, cols []column) {
	size := c.Size()
	pos := c.Pos()
	rng := newChunkRNG(tg.seed, pos.X, pos.Z, 600)

	attempts := max(1, size*size/16)
	for range attempts {
		x := rng.nextN(size)
		z := rng.nextN(size)
		col := cols[z*size+x]

		if col.biome != Forest || col.surface <= tg.seaLevel {
			continue
		}
		if c.Get(x, col.surface, z) != block.Grass {
			continue
		}
		tg.placeOak(c, x, col.surface+1, z, rng)
	}
}

// placeOak places a trunk of 4-6 wood blocks topped by a leaf canopy. Trees
// that would not fit under the chunk ceiling, or whose trunk column is not
// all air, are skipped.
func (tg *TreeGenerator) placeOak(c *Chunk, x, baseY, z int, rng *chunkRNG) {
	trunkHeight := 4 + rng.nextN(3)
	if baseY+trunkHeight+2 > c.Height() {
		return
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		if c.Get(x, y, z) != block.Air {
			return
		}
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		c.Set(x, y, z, block.Wood)
	}

	leafBase := baseY + trunkHeight - 2
	for dy := 0; dy < 4; dy++ {
		y := leafBase + dy
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if !c.InBounds(lx, y, lz) {
					continue
				}
				// Round off the wide layers.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && rng.nextN(2) == 0 {
					continue
				}
				if c.Get(lx, y, lz) == block.Air {
					c.Set(lx, y, lz, block.Leaves)
				}
			}
		}
	}
}

// chunkRNG is a small deterministic LCG seeded per chunk.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	return &chunkRNG{state: seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *chunkRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}
