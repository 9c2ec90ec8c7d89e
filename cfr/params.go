package cfr

import (
	"math"
)

// DiscountParams configure regret and strategy-sum discounting.
// The zero value is valid and corresponds to "vanilla" CFR.
//
// The DCFR scheme is active when any of DiscountAlpha, DiscountBeta,
// DiscountGamma is nonzero. The three exponents form a package:
// beta = 0 within an active scheme halves negative regrets
// (t^0 / (t^0 + 1) = 1/2), it does not leave them undiscounted.
type DiscountParams struct {
	UseRegretMatchingPlus bool    // CFR+
	LinearWeighting       bool    // Linear CFR
	DiscountAlpha         float64 // Discounted CFR
	DiscountBeta          float64 // Discounted CFR
	DiscountGamma         float64 // Discounted CFR
}

// GetDiscountFactors returns the discount factors for the given
// iteration as configured by the parameters for the various CFR
// weighting schemes: CFR+, linear CFR, etc.
func (p DiscountParams) GetDiscountFactors(iter int) (positive, negative, sum float64) {
	positive = 1.0
	negative = 1.0
	sum = 1.0

	t := float64(iter)

	// See: https://arxiv.org/pdf/1809.04040.pdf
	// Linear CFR weights iteration t's contribution to the regret and
	// strategy sums by t, equivalent to discounting both accumulated
	// sums by (t / (t+1)) on each iteration.
	if p.LinearWeighting {
		x := t / (t + 1.0)
		positive = x
		negative = x
		sum = x
	}

	if p.UseRegretMatchingPlus {
		negative = 0.0 // No negative regrets.
	}

	if p.DiscountAlpha != 0 || p.DiscountBeta != 0 || p.DiscountGamma != 0 {
		// Positive regrets by t^alpha / (t^alpha + 1), negative
		// regrets by t^beta / (t^beta + 1), strategy sums by
		// (t / (t+1)) ^ gamma.
		x := math.Pow(t, p.DiscountAlpha)
		positive = x / (x + 1.0)

		y := math.Pow(t, p.DiscountBeta)
		negative = y / (y + 1.0)

		sum = math.Pow(t/(t+1.0), p.DiscountGamma)
	}

	return
}
