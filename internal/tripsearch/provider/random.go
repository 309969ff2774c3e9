package provider

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"
)

// SeededRand is a deterministic generator; the same seed key always yields
// the same sequence.
type SeededRand struct {
	r *rand.Rand
}

func NewSeededRand(parts ...string) *SeededRand {
	h := fnv.New64a()
	//nolint:errcheck // hash writes never fail
	h.Write([]byte(strings.Join(parts, "|")))
	seed := h.Sum64()
	return &SeededRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func seedFor(origin, destination string, date time.Time) *SeededRand {
	return NewSeededRand(strings.ToUpper(origin), strings.ToUpper(destination), date.Format("2006-01-02"))
}

func (s *SeededRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Between returns an int in [lo, hi].
func (s *SeededRand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

func (s *SeededRand) Float64() float64 {
	return s.r.Float64()
}
