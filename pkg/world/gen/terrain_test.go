package gen

import (
	"testing"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
)

func testSettings(seed uint32) Settings {
	s := DefaultSettings()
	s.Seed = seed
	return s
}

func generate(g Generator, s Settings, pos ChunkPos) *Chunk {
	c := NewChunk(pos, s.ChunkSize, s.ChunkHeight)
	g.Generate(c)
	return c
}

func TestTerrainGeneratorDeterministic(t *testing.T) {
	s := testSettings(12345)
	g1 := NewTerrainGenerator(s)
	g2 := NewTerrainGenerator(s)

	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			pos := ChunkPos{cx, cz}
			a := generate(g1, s, pos)
			b := generate(g2, s, pos)
			if !a.Equal(b) {
				t.Fatalf("chunk %v differs between generators with the same seed", pos)
			}
			// Regenerating after the first chunk was dropped must match too.
			if again := generate(g1, s, pos); !again.Equal(a) {
				t.Fatalf("chunk %v differs on regeneration", pos)
			}
		}
	}
}

func TestTerrainGeneratorDifferentSeeds(t *testing.T) {
	g1 := NewTerrainGenerator(testSettings(1))
	g2 := NewTerrainGenerator(testSettings(2))

	for x := -256; x <= 256; x += 4 {
		for z := -256; z <= 256; z += 4 {
			if g1.SurfaceHeight(x, z) != g2.SurfaceHeight(x, z) || g1.BiomeAt(x, z) != g2.BiomeAt(x, z) {
				return
			}
		}
	}
	t.Error("different seeds should produce different terrain")
}

func TestTerrainGeneratorMarksGenerated(t *testing.T) {
	s := testSettings(7)
	c := NewChunk(ChunkPos{}, s.ChunkSize, s.ChunkHeight)
	if c.Generated() {
		t.Fatal("new chunk reports generated")
	}
	NewTerrainGenerator(s).Generate(c)
	if !c.Generated() {
		t.Fatal("generated chunk not marked")
	}
}

func TestTerrainSparseInvariant(t *testing.T) {
	s := testSettings(99)
	c := generate(NewTerrainGenerator(s), s, ChunkPos{3, -2})

	for x := 0; x < s.ChunkSize; x++ {
		for y := 0; y < s.ChunkHeight; y++ {
			for z := 0; z < s.ChunkSize; z++ {
				_, stored := c.blocks[LocalPos{x, y, z}]
				isAir := c.Get(x, y, z) == block.Air
				if isAir == stored {
					t.Fatalf("(%d,%d,%d): air=%v stored=%v", x, y, z, isAir, stored)
				}
			}
		}
	}
}

func TestTerrainBedrockFloor(t *testing.T) {
	s := testSettings(12345)
	g := NewTerrainGenerator(s)

	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			c := generate(g, s, ChunkPos{cx, cz})
			for x := 0; x < s.ChunkSize; x++ {
				for z := 0; z < s.ChunkSize; z++ {
					for y := 0; y <= 1; y++ {
						if got := c.Get(x, y, z); got != block.Bedrock {
							t.Fatalf("chunk (%d,%d) block (%d,%d,%d) = %v, want bedrock", cx, cz, x, y, z, got)
						}
					}
				}
			}
		}
	}
}

func TestTerrainSurfaceHeightRange(t *testing.T) {
	s := testSettings(555)
	s.Amplitude = 40 // push the noise past both clamps
	g := NewTerrainGenerator(s)

	for x := -400; x < 400; x += 13 {
		for z := -400; z < 400; z += 13 {
			h := g.SurfaceHeight(x, z)
			if h < 1 || h > s.ChunkHeight-1 {
				t.Fatalf("SurfaceHeight(%d, %d) = %d, out of [1, %d]", x, z, h, s.ChunkHeight-1)
			}
		}
	}
}

func TestTerrainSeaFill(t *testing.T) {
	s := testSettings(4242)
	s.SeaLevel = 20
	s.Amplitude = 3 // surface in [17, 23]: plenty of columns on both sides of the sea
	g := NewTerrainGenerator(s)

	submerged := 0
	for cx := -3; cx <= 3; cx++ {
		for cz := -3; cz <= 3; cz++ {
			c := generate(g, s, ChunkPos{cx, cz})
			ox, oz := c.Origin()
			for x := 0; x < s.ChunkSize; x++ {
				for z := 0; z < s.ChunkSize; z++ {
					surface := g.SurfaceHeight(ox+x, oz+z)
					if surface >= s.SeaLevel {
						continue
					}
					submerged++
					for y := surface + 1; y < s.ChunkHeight; y++ {
						want := block.Air
						if y <= s.SeaLevel {
							want = block.Water
						}
						if got := c.Get(x, y, z); got != want {
							t.Fatalf("column (%d,%d) y=%d surface=%d: got %v, want %v", ox+x, oz+z, y, surface, got, want)
						}
					}
				}
			}
		}
	}
	if submerged == 0 {
		t.Fatal("expected at least one column below sea level")
	}
}

func TestTerrainLayering(t *testing.T) {
	s := testSettings(2024)
	g := NewTerrainGenerator(s)

	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			c := generate(g, s, ChunkPos{cx, cz})
			ox, oz := c.Origin()
			for x := 0; x < s.ChunkSize; x++ {
				for z := 0; z < s.ChunkSize; z++ {
					wx, wz := ox+x, oz+z
					surface := g.SurfaceHeight(wx, wz)
					biome := g.BiomeAt(wx, wz)
					if surface <= 1 {
						continue
					}
					if got := c.Get(x, surface, z); got != surfaceBlock(biome) {
						t.Fatalf("column (%d,%d) %v surface y=%d = %v, want %v", wx, wz, biome, surface, got, surfaceBlock(biome))
					}
					for y := surface - 1; y > surface-subsurfaceDepth && y > 1; y-- {
						if got := c.Get(x, y, z); got != subsurfaceBlock(biome) {
							t.Fatalf("column (%d,%d) %v y=%d = %v, want %v", wx, wz, biome, y, got, subsurfaceBlock(biome))
						}
					}
				}
			}
		}
	}
}

func TestTerrainCavesStayInInterior(t *testing.T) {
	s := testSettings(31337)
	// Carve aggressively in a wide band so the bounds are exercised.
	s.CaveThreshold = 0
	s.CaveFloor = 2
	s.CaveRoofDepth = 2
	g := NewTerrainGenerator(s)

	carved := 0
	for cx := -3; cx <= 3; cx++ {
		for cz := -3; cz <= 3; cz++ {
			c := generate(g, s, ChunkPos{cx, cz})
			ox, oz := c.Origin()
			for x := 0; x < s.ChunkSize; x++ {
				for z := 0; z < s.ChunkSize; z++ {
					surface := g.SurfaceHeight(ox+x, oz+z)
					for y := 0; y <= surface; y++ {
						if c.Get(x, y, z) != block.Air {
							continue
						}
						carved++
						if y <= s.CaveFloor || y >= surface-s.CaveRoofDepth {
							t.Fatalf("cave at y=%d outside (%d, %d) in column (%d,%d)", y, s.CaveFloor, surface-s.CaveRoofDepth, ox+x, oz+z)
						}
					}
				}
			}
		}
	}
	if carved == 0 {
		t.Fatal("no caves carved in sampled area")
	}
}

func TestTerrainBlockAtAgreesWithGenerate(t *testing.T) {
	s := testSettings(8)
	g := NewTerrainGenerator(s)
	c := generate(g, s, ChunkPos{-1, 2})
	ox, oz := c.Origin()

	for x := 0; x < s.ChunkSize; x++ {
		for z := 0; z < s.ChunkSize; z++ {
			col := g.Column(ox+x, oz+z)
			for y := 0; y < s.ChunkHeight; y++ {
				want := c.Get(x, y, z)
				if got := g.BlockAt(ox+x, y, oz+z); got != want {
					t.Fatalf("BlockAt(%d,%d,%d) = %v, chunk has %v", ox+x, y, oz+z, got, want)
				}
				if col[y] != want {
					t.Fatalf("Column(%d,%d)[%d] = %v, chunk has %v", ox+x, oz+z, y, col[y], want)
				}
			}
		}
	}
	if got := g.BlockAt(0, -1, 0); got != block.Air {
		t.Errorf("BlockAt below world = %v, want air", got)
	}
	if got := g.BlockAt(0, s.ChunkHeight, 0); got != block.Air {
		t.Errorf("BlockAt above world = %v, want air", got)
	}
}

func TestTerrainFixedSeedReproducible(t *testing.T) {
	s := testSettings(12345)
	s.ChunkSize = 8
	s.ChunkHeight = 32
	s.SeaLevel = 16

	first := NewTerrainGenerator(s)
	wantBiome := first.BiomeAt(0, 0)
	wantHeight := first.SurfaceHeight(0, 0)

	for i := 0; i < 3; i++ {
		g := NewTerrainGenerator(s)
		c := generate(g, s, ChunkPos{0, 0})
		if got := g.BiomeAt(0, 0); got != wantBiome {
			t.Fatalf("run %d: biome %v, want %v", i, got, wantBiome)
		}
		if got := g.SurfaceHeight(0, 0); got != wantHeight {
			t.Fatalf("run %d: surface %d, want %d", i, got, wantHeight)
		}
		if got := c.Get(0, wantHeight, 0); got != surfaceBlock(wantBiome) {
			t.Fatalf("run %d: top block %v, want %v", i, got, surfaceBlock(wantBiome))
		}
	}
}

func TestBiomeThresholds(t *testing.T) {
	f := NewBiomeField(NewNoise(0), 0.005, -0.3, 0.3)
	tests := []struct {
		v    float64
		want Biome
	}{
		{-0.9, Desert},
		{-0.31, Desert},
		{-0.3, Plains},
		{0.29, Plains},
		{0.3, Forest},
		{0.95, Forest},
	}
	for _, tt := range tests {
		if got := f.classify(tt.v); got != tt.want {
			t.Errorf("classify(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero chunk size", func(s *Settings) { s.ChunkSize = 0 }},
		{"zero height", func(s *Settings) { s.ChunkHeight = 0 }},
		{"sea above world", func(s *Settings) { s.SeaLevel = s.ChunkHeight }},
		{"negative sea", func(s *Settings) { s.SeaLevel = -1 }},
		{"zero scale", func(s *Settings) { s.HeightScale = 0 }},
		{"zero amplitude", func(s *Settings) { s.Amplitude = 0 }},
		{"no octaves", func(s *Settings) { s.HeightOctaves = 0 }},
		{"thresholds inverted", func(s *Settings) { s.DesertThreshold = 0.5 }},
		{"negative cave floor", func(s *Settings) { s.CaveFloor = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
