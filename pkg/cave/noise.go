package cave

// simplex is a seeded 2D simplex noise source producing values in [-1, 1].
// It backs the "simplex" fill mode.
type simplex struct {
	perm [512]int
}

var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

func newSimplex(seed int64) *simplex {
	s := &simplex{}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates with an LCG stepped from the seed.
	state := seed
	for i := 255; i > 0; i-- {
		state = state*6364136223846793005 + 1442695040888963407
		j := int((state>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

// noise2D samples a single octave at (x, y).
func (s *simplex) noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	skew := (x + y) * f2
	i := floorInt(x + skew)
	j := floorInt(y + skew)

	unskew := float64(i+j) * g2
	x0 := x - (float64(i) - unskew)
	y0 := y - (float64(j) - unskew)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii := i & 255
	jj := j & 255
	corners := [3]struct {
		x, y float64
		g    int
	}{
		{x0, y0, s.perm[ii+s.perm[jj]] & 7},
		{x1, y1, s.perm[ii+i1+s.perm[jj+j1]] & 7},
		{x2, y2, s.perm[ii+1+s.perm[jj+1]] & 7},
	}

	var sum float64
	for _, c := range corners {
		t := 0.5 - c.x*c.x - c.y*c.y
		if t < 0 {
			continue
		}
		t *= t
		sum += t * t * (grad2[c.g][0]*c.x + grad2[c.g][1]*c.y)
	}
	v := 70 * sum
	return min(1, max(-1, v))
}

// octave2D layers octaves of noise, halving amplitude and doubling frequency
// each time. The result is normalised back into [-1, 1].
func (s *simplex) octave2D(x, y float64, octaves int) float64 {
	var total, maxAmp float64
	freq, amp := 1.0, 1.0
	for range octaves {
		total += s.noise2D(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= 0.5
		freq *= 2
	}
	if maxAmp == 0 {
		return 0
	}
	return total / maxAmp
}

func floorInt(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
