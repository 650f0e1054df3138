package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// Generator fills chunks deterministically from its settings.
type Generator interface {
	Generate(c *Chunk)
	// SurfaceHeight returns the y of the top terrain block of a world column.
	SurfaceHeight(wx, wz int) int
}

// Noise field seed offsets. Each field gets its own permutation so height,
// caves and biomes are decorrelated.
const (
	heightSeedOffset = 0
	caveSeedOffset   = 1
	biomeSeedOffset  = 2
)

// TerrainGenerator produces layered terrain with biomes, caves and optional
// trees. It holds no world state: every column is a pure function of the
// seed and its world coordinates.
type TerrainGenerator struct {
	s      Settings
	height *Noise
	caves  *CaveField
	biomes *BiomeField
	trees  *TreeGenerator
}

// NewTerrainGenerator creates a TerrainGenerator. s is expected to be valid.
func NewTerrainGenerator(s Settings) *TerrainGenerator {
	seed := int64(s.Seed)
	g := &TerrainGenerator{
		s:      s,
		height: NewNoise(seed + heightSeedOffset),
		caves:  NewCaveField(NewNoise(seed+caveSeedOffset), s.CaveScale, s.CaveThreshold, s.CaveFloor, s.CaveRoofDepth),
		biomes: NewBiomeField(NewNoise(seed+biomeSeedOffset), s.BiomeScale, s.DesertThreshold, s.ForestThreshold),
	}
	if s.Trees {
		g.trees = NewTreeGenerator(seed, s.SeaLevel)
	}
	return g
}

// Settings returns the generator's settings.
func (g *TerrainGenerator) Settings() Settings { return g.s }

// Generate fills every column of c and marks it generated.
func (g *TerrainGenerator) Generate(c *Chunk) {
	size := c.Size()
	ox, oz := c.Origin()

	var cols []column
	if g.trees != nil {
		cols = make([]column, size*size)
	}

	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			wx, wz := ox+x, oz+z
			surface := g.SurfaceHeight(wx, wz)
			biome := g.biomes.BiomeAt(wx, wz)
			for y := 0; y < c.Height(); y++ {
				c.Set(x, y, z, g.blockFor(wx, y, wz, surface, biome))
			}
			if cols != nil {
				cols[z*size+x] = column{surface: surface, biome: biome}
			}
		}
	}

	if g.trees != nil {
		g.trees.Decorate(c, cols)
	}
	c.MarkGenerated()
}

// SurfaceHeight returns the y of the top terrain block at (wx, wz), clamped
// into [1, ChunkHeight-1].
func (g *TerrainGenerator) SurfaceHeight(wx, wz int) int {
	s := g.s
	n := g.height.Octave2D(float64(wx)*s.HeightScale, float64(wz)*s.HeightScale, s.HeightOctaves, s.HeightPersistence)
	return clampInt(int(n*s.Amplitude+float64(s.SeaLevel)), 1, s.ChunkHeight-1)
}

// BiomeAt returns the biome of the world column (wx, wz).
func (g *TerrainGenerator) BiomeAt(wx, wz int) Biome {
	return g.biomes.BiomeAt(wx, wz)
}

// BlockAt evaluates the terrain rules for a single voxel, ignoring
// decoration. It agrees with Generate for every undecorated voxel.
func (g *TerrainGenerator) BlockAt(wx, y, wz int) block.Kind {
	if y < 0 || y >= g.s.ChunkHeight {
		return block.Air
	}
	return g.blockFor(wx, y, wz, g.SurfaceHeight(wx, wz), g.biomes.BiomeAt(wx, wz))
}

// Column returns the undecorated blocks of a world column from y=0 upward.
func (g *TerrainGenerator) Column(wx, wz int) []block.Kind {
	surface := g.SurfaceHeight(wx, wz)
	biome := g.biomes.BiomeAt(wx, wz)
	out := make([]block.Kind, g.s.ChunkHeight)
	for y := range out {
		out[y] = g.blockFor(wx, y, wz, surface, biome)
	}
	return out
}

// blockFor applies the layering rules in priority order: bedrock, fluid or
// air above the surface, caves, surface block, subsurface, stone.
func (g *TerrainGenerator) blockFor(wx, y, wz, surface int, biome Biome) block.Kind {
	switch {
	case y <= 1:
		return block.Bedrock
	case y > surface:
		if y <= g.s.SeaLevel {
			return block.Water
		}
		return block.Air
	case g.caves.Carved(wx, y, wz, surface):
		return block.Air
	case y == surface:
		return surfaceBlock(biome)
	case y > surface-subsurfaceDepth:
		return subsurfaceBlock(biome)
	default:
		return block.Stone
	}
}
