package pathfollow

import "math/rand/v2"

// RandomSource supplies uniform samples in [0,1).
type RandomSource interface {
	Float64() float64
}

// NewRand returns a seeded PCG source. The same seed yields the same sequence.
func NewRand(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence replays a fixed list of samples, cycling when exhausted.
// An empty Sequence always returns 0.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
