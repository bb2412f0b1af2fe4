package services

import (
	"math/rand"
	"sync"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

// OccupancySampler produces a non-negative occupancy count for a zone on
// each poll. The default implementation is a stand-in for a real sensing
// pipeline; swapping in a vision-backed sampler must not touch the
// analytics service.
type OccupancySampler interface {
	Sample(zone models.Zone) int
}

// RandomSampler draws uniformly from [min, max] per poll.
type RandomSampler struct {
	min int
	max int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampler creates the placeholder sampler with the given range.
func NewRandomSampler(min, max int, seed int64) *RandomSampler {
	if max < min {
		max = min
	}
	return &RandomSampler{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Sample returns a uniform count in [min, max].
func (r *RandomSampler) Sample(models.Zone) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.min + r.rng.Intn(r.max-r.min+1)
}

// FixedSampler returns a constant count.
type FixedSampler int

// Sample returns the fixed count.
func (f FixedSampler) Sample(models.Zone) int {
	return int(f)
}
