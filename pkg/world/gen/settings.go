package gen

import (
	"errors"
	"fmt"
)

// Settings parameterises terrain generation. A generator built from the same
// Settings always produces the same terrain.
type Settings struct {
	Seed        uint32
	ChunkSize   int
	ChunkHeight int
	SeaLevel    int

	HeightScale       float64
	Amplitude         float64
	HeightOctaves     int
	HeightPersistence float64

	BiomeScale      float64
	DesertThreshold float64
	ForestThreshold float64

	CaveScale     float64
	CaveThreshold float64
	CaveFloor     int
	CaveRoofDepth int

	// Trees enables oak decoration in forest columns.
	Trees bool
}

// DefaultSettings returns the tuned defaults for an 8×32×8 chunk world.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:         8,
		ChunkHeight:       32,
		SeaLevel:          16,
		HeightScale:       0.01,
		Amplitude:         10,
		HeightOctaves:     3,
		HeightPersistence: 0.5,
		BiomeScale:        0.005,
		DesertThreshold:   -0.3,
		ForestThreshold:   0.3,
		CaveScale:         0.05,
		CaveThreshold:     0.6,
		CaveFloor:         10,
		CaveRoofDepth:     5,
	}
}

// Validate reports every inconsistent field at once.
func (s Settings) Validate() error {
	var errs []error
	if s.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", s.ChunkSize))
	}
	if s.ChunkHeight <= 6 {
		errs = append(errs, fmt.Errorf("chunk height must exceed 6, got %d", s.ChunkHeight))
	}
	if s.SeaLevel < 0 || s.SeaLevel >= s.ChunkHeight {
		errs = append(errs, fmt.Errorf("sea level %d outside [0, %d)", s.SeaLevel, s.ChunkHeight))
	}
	if s.HeightScale <= 0 || s.BiomeScale <= 0 || s.CaveScale <= 0 {
		errs = append(errs, errors.New("noise scales must be positive"))
	}
	if s.Amplitude <= 0 {
		errs = append(errs, fmt.Errorf("amplitude must be positive, got %g", s.Amplitude))
	}
	if s.HeightOctaves < 1 {
		errs = append(errs, fmt.Errorf("height octaves must be at least 1, got %d", s.HeightOctaves))
	}
	if s.HeightPersistence <= 0 || s.HeightPersistence > 1 {
		errs = append(errs, fmt.Errorf("height persistence %g outside (0, 1]", s.HeightPersistence))
	}
	if s.DesertThreshold >= s.ForestThreshold {
		errs = append(errs, fmt.Errorf("desert threshold %g must be below forest threshold %g", s.DesertThreshold, s.ForestThreshold))
	}
	if s.CaveFloor < 0 || s.CaveRoofDepth < 0 {
		errs = append(errs, errors.New("cave floor and roof depth must not be negative"))
	}
	return errors.Join(errs...)
}
