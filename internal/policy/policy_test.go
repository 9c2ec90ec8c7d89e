package policy

import (
	"math"
	"testing"
)

func checkDist(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d probabilities, got %d", len(want), len(got))
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("expected distribution %v, got %v", want, got)
			return
		}
	}
}

func TestNew_UniformStrategy(t *testing.T) {
	p := New(4)
	checkDist(t, p.GetStrategy(), []float64{0.25, 0.25, 0.25, 0.25})
	checkDist(t, p.GetAverageStrategy(), []float64{0.25, 0.25, 0.25, 0.25})
}

func TestRegretMatching_ProportionalToPositiveRegret(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{3.0, 1.0})
	p.NextStrategy(1.0, 1.0, 1.0)
	checkDist(t, p.GetStrategy(), []float64{0.75, 0.25})
}

func TestRegretMatching_NegativeRegretIsClamped(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{2.0, -1.0})
	p.NextStrategy(1.0, 1.0, 1.0)
	checkDist(t, p.GetStrategy(), []float64{1.0, 0.0})
}

func TestRegretMatching_UniformWhenNoPositiveRegret(t *testing.T) {
	p := New(3)
	p.AddRegret([]float64{-1.0, -2.0, 0.0})
	p.NextStrategy(1.0, 1.0, 1.0)
	checkDist(t, p.GetStrategy(), []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0})
}

func TestNextStrategy_DiscardsNegativeRegret(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{-1.0, 2.0})
	// CFR+: negative regrets are zeroed each update.
	p.NextStrategy(1.0, 0.0, 1.0)
	checkDist(t, p.regretSum, []float64{0.0, 2.0})
	checkDist(t, p.GetStrategy(), []float64{0.0, 1.0})
}

func TestAverageStrategy_WeightedByReach(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{3.0, 1.0})
	p.NextStrategy(1.0, 1.0, 1.0)

	// One visit at full reach with the [0.75, 0.25] strategy.
	p.AddStrategyWeight(1.0)
	p.NextStrategy(1.0, 1.0, 1.0)
	checkDist(t, p.GetAverageStrategy(), []float64{0.75, 0.25})
}

func TestAverageStrategy_SumDiscounting(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{1.0, 0.0})
	p.NextStrategy(1.0, 1.0, 1.0)
	p.AddStrategyWeight(1.0)

	// A sum discount of 0 forgets everything accumulated so far but
	// keeps the pending weight being flushed.
	p.NextStrategy(1.0, 1.0, 0.0)
	checkDist(t, p.GetAverageStrategy(), []float64{1.0, 0.0})
}

func TestGobRoundtrip(t *testing.T) {
	p := New(2)
	p.AddRegret([]float64{3.0, 1.0})
	p.NextStrategy(1.0, 1.0, 1.0)
	p.AddStrategyWeight(0.5)

	buf, err := p.GobEncode()
	if err != nil {
		t.Fatal(err)
	}

	var q Policy
	if err := q.GobDecode(buf); err != nil {
		t.Fatal(err)
	}

	checkDist(t, q.GetStrategy(), p.GetStrategy())
	checkDist(t, q.GetStrategySum(), p.GetStrategySum())
	if q.currentStrategyWeight != p.currentStrategyWeight {
		t.Errorf("expected pending weight %v, got %v",
			p.currentStrategyWeight, q.currentStrategyWeight)
	}
	if q.NumActions() != 2 {
		t.Errorf("expected 2 actions, got %d", q.NumActions())
	}
}
