package market

import "math/rand"

// Random is the source of every decision roll. Both bounds are inclusive.
type Random interface {
	Int(min, max int) int
	Float(min, max float64) float64
}

type seededRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random backed by a seeded math/rand source. Equal
// seeds replay equal cycles.
func NewRandom(seed int64) Random {
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

func (s *seededRandom) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

func randomMoney(rng Random, min, max int64) int64 {
	return int64(rng.Int(int(min), int(max)))
}
