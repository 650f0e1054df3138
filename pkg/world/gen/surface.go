package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// subsurfaceDepth is how many blocks of subsurface material sit between the
// top block and stone.
const subsurfaceDepth = 4

func surfaceBlock(b Biome) block.Kind {
	if b == Desert {
		return block.Sand
	}
	return block.Grass
}

func subsurfaceBlock(b Biome) block.Kind {
	if b == Desert {
		return block.Sand
	}
	return block.Dirt
}
