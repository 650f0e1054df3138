package gen

// Biome is a noise-classified terrain style.
type Biome uint8

const (
	Plains Biome = iota
	Desert
	Forest
)

func (b Biome) String() string {
	switch b {
	case Desert:
		return "desert"
	case Forest:
		return "forest"
	default:
		return "plains"
	}
}

// BiomeField classifies world columns using a single low-frequency noise
// field and two thresholds.
type BiomeField struct {
	noise  *Noise
	scale  float64
	desert float64
	forest float64
}

// NewBiomeField creates a BiomeField sampling noise at the given scale.
func NewBiomeField(noise *Noise, scale, desertBelow, forestFrom float64) *BiomeField {
	return &BiomeField{noise: noise, scale: scale, desert: desertBelow, forest: forestFrom}
}

// BiomeAt returns the biome of the world column (wx, wz).
func (f *BiomeField) BiomeAt(wx, wz int) Biome {
	return f.classify(f.noise.Sample2D(float64(wx)*f.scale, float64(wz)*f.scale))
}

func (f *BiomeField) classify(v float64) Biome {
	switch {
	case v < f.desert:
		return Desert
	case v < f.forest:
		return Plains
	default:
		return Forest
	}
}
