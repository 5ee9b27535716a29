package terrain

const eps = 1e-9

// scriptedRand replays fixed draws so tests can pin the random choices.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// constSource returns the same sample everywhere and records where it was sampled.
type constSource struct {
	value   float64
	samples [][2]float64
}

func (s *constSource) Sample(x, y float64) float64 {
	s.samples = append(s.samples, [2]float64{x, y})
	return s.value
}

func testRequest() Request {
	return Request{
		HalfWidth:         10,
		HalfLength:        10,
		HeightMin:         10,
		HeightMax:         10,
		Resolution:        2,
		SurfaceResolution: 3,
		Peak:              DefaultPeakConfig(),
	}
}

func squareFootprint(w float64) Footprint {
	return Footprint{HalfWidth: w, HalfLength: w}
}
