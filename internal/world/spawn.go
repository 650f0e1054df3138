package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

const (
	spawnRings      = 10
	spawnAngles     = 8
	spawnRingStep   = 2
	spawnCeilingGap = 5
	spawnFallbackUp = 10
)

// FindSafeSpawn returns a standing position near (px, pz) that is above sea
// level and below the ceiling gap. It searches outward in rings and falls
// back to (px, SeaLevel+10, pz) when no candidate is accepted.
func (w *World) FindSafeSpawn(px, pz float32) mgl32.Vec3 {
	center := w.chunkPos(px, pz)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			w.ensureChunk(gen.ChunkPos{X: center.X + dx, Z: center.Z + dz})
		}
	}

	if h, ok := w.spawnHeight(px, pz); ok {
		return mgl32.Vec3{px, h, pz}
	}

	for r := 1; r <= spawnRings; r++ {
		for i := 0; i < spawnAngles; i++ {
			angle := float64(i) * 2 * math.Pi / spawnAngles
			dist := float64(r * spawnRingStep)
			x := px + float32(math.Cos(angle)*dist)
			z := pz + float32(math.Sin(angle)*dist)
			w.ensureChunk(w.chunkPos(x, z))
			if h, ok := w.spawnHeight(x, z); ok {
				w.log.Debug("spawn found on spiral", "ring", r, "x", x, "y", h, "z", z)
				return mgl32.Vec3{x, h, z}
			}
		}
	}

	y := float32(w.opts.Terrain.SeaLevel + spawnFallbackUp)
	w.log.Warn("no safe spawn found, using fallback", "x", px, "y", y, "z", pz)
	return mgl32.Vec3{px, y, pz}
}

// spawnHeight reports the standing height at (x, z) and whether it is dry
// land with room below the ceiling. The column scan starts at the top of the
// chunk, so nothing solid overhangs an accepted height.
func (w *World) spawnHeight(x, z float32) (float32, bool) {
	t := w.opts.Terrain
	h := w.SurfaceHeightAt(x, z)
	return h, float32(t.SeaLevel) < h && h < float32(t.ChunkHeight-spawnCeilingGap)
}
