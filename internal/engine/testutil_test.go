package engine

// scriptedRand feeds predetermined draws to the resolver. Exhausted float
// queues return 0.99 so no probabilistic branch fires by accident.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// quietRand always fails rolls; resolutions run their deterministic path only.
func quietRand() *scriptedRand { return &scriptedRand{} }

func newTestResolver(m *Meters, r Rand) (*Resolver, *Episodes) {
	ep := NewEpisodes()
	return NewResolver(m, r, ep), ep
}
