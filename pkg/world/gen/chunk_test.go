package gen

import (
	"testing"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
)

func TestChunkGetOutOfBoundsIsAir(t *testing.T) {
	c := NewChunk(ChunkPos{}, 8, 32)
	c.Set(0, 0, 0, block.Stone)

	for _, p := range []LocalPos{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}, {8, 0, 0}, {0, 32, 0}, {0, 0, 8}} {
		if got := c.Get(p.X, p.Y, p.Z); got != block.Air {
			t.Errorf("Get(%v) = %v, want air", p, got)
		}
	}
	if got := c.Get(0, 0, 0); got != block.Stone {
		t.Errorf("Get(0,0,0) = %v, want stone", got)
	}
}

func TestChunkSetAirRemovesEntry(t *testing.T) {
	c := NewChunk(ChunkPos{}, 8, 32)
	c.Set(3, 4, 5, block.Dirt)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	c.Set(3, 4, 5, block.Air)
	if c.Len() != 0 {
		t.Fatalf("Len() after setting air = %d, want 0", c.Len())
	}
	if _, ok := c.blocks[LocalPos{3, 4, 5}]; ok {
		t.Fatal("air must not be stored")
	}
}

func TestChunkSetOverwrites(t *testing.T) {
	c := NewChunk(ChunkPos{}, 8, 32)
	c.Set(1, 1, 1, block.Dirt)
	c.Set(1, 1, 1, block.Grass)
	if got := c.Get(1, 1, 1); got != block.Grass {
		t.Fatalf("Get = %v, want grass", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestChunkSetOutOfBoundsIgnored(t *testing.T) {
	c := NewChunk(ChunkPos{}, 8, 32)
	c.Set(8, 0, 0, block.Stone)
	c.Set(0, 32, 0, block.Stone)
	c.Set(0, 0, -1, block.Stone)
	if c.Len() != 0 {
		t.Fatalf("out-of-bounds writes stored %d blocks", c.Len())
	}
}

func TestChunkWorldToLocalClamps(t *testing.T) {
	c := NewChunk(ChunkPos{X: 1, Z: -1}, 8, 32) // origin (8, -8)

	tests := []struct {
		wx, wz float32
		lx, lz int
	}{
		{8.5, -7.2, 0, 0},
		{15.99, -0.5, 7, 7},
		{12, -4, 4, 4},
		{100, -100, 7, 0},
		{3, 5, 0, 7},
	}
	for _, tt := range tests {
		lx, lz := c.WorldToLocal(tt.wx, tt.wz)
		if lx != tt.lx || lz != tt.lz {
			t.Errorf("WorldToLocal(%v, %v) = (%d, %d), want (%d, %d)", tt.wx, tt.wz, lx, lz, tt.lx, tt.lz)
		}
	}
}

func TestChunkPosFromWorld(t *testing.T) {
	tests := []struct {
		x, z float32
		want ChunkPos
	}{
		{0, 0, ChunkPos{0, 0}},
		{7.9, 8, ChunkPos{0, 1}},
		{-0.5, 7.9, ChunkPos{-1, 0}},
		{-8, -8.01, ChunkPos{-1, -2}},
	}
	for _, tt := range tests {
		if got := ChunkPosFromWorld(tt.x, tt.z, 8); got != tt.want {
			t.Errorf("ChunkPosFromWorld(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestChunkPosChebyshev(t *testing.T) {
	a := ChunkPos{X: 2, Z: -3}
	if d := a.Chebyshev(ChunkPos{X: -1, Z: 1}); d != 4 {
		t.Errorf("Chebyshev = %d, want 4", d)
	}
	if d := a.Chebyshev(a); d != 0 {
		t.Errorf("Chebyshev to self = %d, want 0", d)
	}
}

func TestChunkForEachOrderAndStop(t *testing.T) {
	c := NewChunk(ChunkPos{}, 4, 4)
	c.Set(3, 0, 0, block.Stone)
	c.Set(0, 2, 1, block.Sand)
	c.Set(1, 0, 2, block.Dirt)

	var got []LocalPos
	c.ForEach(func(p LocalPos, _ block.Kind) bool {
		got = append(got, p)
		return true
	})
	want := []LocalPos{{3, 0, 0}, {1, 0, 2}, {0, 2, 1}}
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %d blocks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}

	visits := 0
	c.ForEach(func(LocalPos, block.Kind) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("ForEach continued after false: %d visits", visits)
	}
}

func TestChunkEqual(t *testing.T) {
	a := NewChunk(ChunkPos{1, 1}, 4, 4)
	b := NewChunk(ChunkPos{1, 1}, 4, 4)
	a.Set(0, 0, 0, block.Stone)
	if a.Equal(b) {
		t.Fatal("chunks with different content reported equal")
	}
	b.Set(0, 0, 0, block.Stone)
	if !a.Equal(b) {
		t.Fatal("identical chunks reported different")
	}
	if a.Equal(NewChunk(ChunkPos{1, 2}, 4, 4)) {
		t.Fatal("chunks at different positions reported equal")
	}
}
