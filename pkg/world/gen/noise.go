package gen

// Simplex noise after Ken Perlin's reference algorithm. Samples fall in [-1, 1].

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// Noise is a seeded simplex noise field. Two fields built from the same seed
// produce identical samples.
type Noise struct {
	perm [512]int
}

// NewNoise builds a noise field whose permutation table is shuffled by seed.
func NewNoise(seed int64) *Noise {
	var p [256]int
	for i := range p {
		p[i] = i
	}

	s := seed
	for i := len(p) - 1; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	n := &Noise{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// Sample2D returns 2D simplex noise at (x, y).
func (n *Noise) Sample2D(x, y float64) float64 {
	s := (x + y) * skew2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii := i & 255
	jj := j & 255

	total := corner2(0.5-x0*x0-y0*y0, n.perm[ii+n.perm[jj]]%12, x0, y0)
	total += corner2(0.5-x1*x1-y1*y1, n.perm[ii+i1+n.perm[jj+j1]]%12, x1, y1)
	total += corner2(0.5-x2*x2-y2*y2, n.perm[ii+1+n.perm[jj+1]]%12, x2, y2)
	return 70 * total
}

// Sample3D returns 3D simplex noise at (x, y, z).
func (n *Noise) Sample3D(x, y, z float64) float64 {
	s := (x + y + z) * skew3
	i := fastFloor(x + s)
	j := fastFloor(y + s)
	k := fastFloor(z + s)

	t := float64(i+j+k) * unskew3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= y0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case x0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	x1 := x0 - float64(i1) + unskew3
	y1 := y0 - float64(j1) + unskew3
	z1 := z0 - float64(k1) + unskew3
	x2 := x0 - float64(i2) + 2*unskew3
	y2 := y0 - float64(j2) + 2*unskew3
	z2 := z0 - float64(k2) + 2*unskew3
	x3 := x0 - 1 + 3*unskew3
	y3 := y0 - 1 + 3*unskew3
	z3 := z0 - 1 + 3*unskew3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	p := &n.perm

	total := corner3(0.6-x0*x0-y0*y0-z0*z0, p[ii+p[jj+p[kk]]]%12, x0, y0, z0)
	total += corner3(0.6-x1*x1-y1*y1-z1*z1, p[ii+i1+p[jj+j1+p[kk+k1]]]%12, x1, y1, z1)
	total += corner3(0.6-x2*x2-y2*y2-z2*z2, p[ii+i2+p[jj+j2+p[kk+k2]]]%12, x2, y2, z2)
	total += corner3(0.6-x3*x3-y3*y3-z3*z3, p[ii+1+p[jj+1+p[kk+1]]]%12, x3, y3, z3)
	return 32 * total
}

// Octave2D sums octaves of 2D noise, doubling frequency each octave and
// scaling amplitude by persistence. The sum is normalised back into [-1, 1].
func (n *Noise) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxAmp float64
	frequency, amplitude := 1.0, 1.0
	for range octaves {
		total += n.Sample2D(x*frequency, y*frequency) * amplitude
		maxAmp += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxAmp
}

func corner2(t float64, gi int, x, y float64) float64 {
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}

func corner3(t float64, gi int, x, y, z float64) float64 {
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
