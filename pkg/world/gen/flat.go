package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// FlatGenerator builds a layered flat world just above sea level:
// bedrock y 0-1, stone up to sea-2, dirt to sea, grass at sea+1.
type FlatGenerator struct {
	s Settings
}

// NewFlatGenerator creates a FlatGenerator. Only the chunk dimensions and
// sea level of s are used.
func NewFlatGenerator(s Settings) *FlatGenerator {
	return &FlatGenerator{s: s}
}

func (g *FlatGenerator) Generate(c *Chunk) {
	size := c.Size()
	for y := 0; y < c.Height(); y++ {
		kind := g.layer(y)
		if kind == block.Air {
			continue
		}
		for x := 0; x < size; x++ {
			for z := 0; z < size; z++ {
				c.Set(x, y, z, kind)
			}
		}
	}
	c.MarkGenerated()
}

func (g *FlatGenerator) SurfaceHeight(_, _ int) int {
	return clampInt(g.s.SeaLevel+1, 1, g.s.ChunkHeight-1)
}

func (g *FlatGenerator) layer(y int) block.Kind {
	top := g.SurfaceHeight(0, 0)
	switch {
	case y <= 1:
		return block.Bedrock
	case y > top:
		return block.Air
	case y == top:
		return block.Grass
	case y >= top-2:
		return block.Dirt
	default:
		return block.Stone
	}
}
