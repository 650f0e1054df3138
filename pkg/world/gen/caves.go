package gen

// CaveField carves air pockets out of the column interior using 3D noise.
type CaveField struct {
	noise     *Noise
	scale     float64
	threshold float64
	floor     int
	roofDepth int
}

// NewCaveField creates a CaveField. Caves only open strictly above floor and
// strictly below surface-roofDepth, so they never breach bedrock or the surface.
func NewCaveField(noise *Noise, scale, threshold float64, floor, roofDepth int) *CaveField {
	return &CaveField{noise: noise, scale: scale, threshold: threshold, floor: floor, roofDepth: roofDepth}
}

// Carved reports whether the voxel (wx, y, wz) under a column of the given
// surface height is hollowed out.
func (f *CaveField) Carved(wx, y, wz, surface int) bool {
	if y <= f.floor || y >= surface-f.roofDepth {
		return false
	}
	s := f.scale
	return f.noise.Sample3D(float64(wx)*s, float64(y)*s, float64(wz)*s) > f.threshold
}
