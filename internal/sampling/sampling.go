// Package sampling provides categorical sampling shared by the
// Monte Carlo CFR variants.
package sampling

import (
	"math/rand"

	"github.com/pkg/errors"
)

const eps = 1e-8

// SampleOne draws an index from the given probability distribution.
// It panics with an error if the distribution does not sum to 1;
// the driver boundary recovers such panics into errors.
func SampleOne(pv []float64) int {
	x := rand.Float64()
	var cumProb float64
	for i, p := range pv {
		cumProb += p
		if cumProb > x {
			return i
		}
	}

	if cumProb < 1.0-eps { // Leave room for floating point error.
		panic(errors.Errorf("probability distribution sums to %v, not 1", cumProb))
	}

	return len(pv) - 1
}
