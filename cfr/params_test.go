package cfr

import (
	"math"
	"testing"
)

func TestDiscountParams_GetDiscountFactors(t *testing.T) {
	cases := []struct {
		name          string
		params        DiscountParams
		iter          int
		pos, neg, sum float64
	}{
		{"vanilla", DiscountParams{}, 10, 1.0, 1.0, 1.0},
		{"cfr+", DiscountParams{UseRegretMatchingPlus: true}, 10, 1.0, 0.0, 1.0},
		{"linear", DiscountParams{LinearWeighting: true}, 4, 0.8, 0.8, 0.8},
		{"dcfr", DiscountParams{
			DiscountAlpha: 1.5,
			DiscountBeta:  0.5,
			DiscountGamma: 2.0,
		}, 4, 8.0 / 9.0, 2.0 / 3.0, 0.64},
		// Beta = 0 inside an active scheme still halves negative
		// regrets rather than leaving them undiscounted.
		{"dcfr beta=0", DiscountParams{
			DiscountAlpha: 1.5,
			DiscountGamma: 2.0,
		}, 4, 8.0 / 9.0, 0.5, 0.64},
	}

	for _, tc := range cases {
		pos, neg, sum := tc.params.GetDiscountFactors(tc.iter)
		if math.Abs(pos-tc.pos) > 1e-9 {
			t.Errorf("%v: expected positive factor %v, got %v", tc.name, tc.pos, pos)
		}
		if math.Abs(neg-tc.neg) > 1e-9 {
			t.Errorf("%v: expected negative factor %v, got %v", tc.name, tc.neg, neg)
		}
		if math.Abs(sum-tc.sum) > 1e-9 {
			t.Errorf("%v: expected sum factor %v, got %v", tc.name, tc.sum, sum)
		}
	}
}
