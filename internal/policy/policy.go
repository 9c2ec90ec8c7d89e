// Package policy implements the tabular per-infoset accumulator used
// by the in-memory and on-disk policy tables.
package policy

import (
	"bytes"
	"encoding/gob"

	"github.com/jrhodes/go-equilibrium/internal/f64"
)

// Policy keeps accumulated regrets and strategy sums for a single
// information set and derives strategies by regret matching.
type Policy struct {
	currentStrategy       []float64
	currentStrategyWeight float64

	regretSum   []float64
	strategySum []float64
}

// New returns a new Policy for an information set with the given
// number of actions. The initial strategy is uniform.
func New(nActions int) *Policy {
	return &Policy{
		currentStrategy:       uniformDist(nActions),
		currentStrategyWeight: 0.0,
		regretSum:             make([]float64, nActions),
		strategySum:           make([]float64, nActions),
	}
}

func (p *Policy) GetStrategy() []float64 {
	return p.currentStrategy
}

// NextStrategy flushes the pending strategy weight into the strategy
// sum, applies the discount factors, and recomputes the current
// strategy by regret matching.
func (p *Policy) NextStrategy(discountPositiveRegret, discountNegativeRegret, discountStrategySum float64) {
	if discountStrategySum != 1.0 {
		f64.ScalUnitary(discountStrategySum, p.strategySum)
	}

	f64.AxpyUnitary(p.currentStrategyWeight, p.currentStrategy, p.strategySum)

	if discountPositiveRegret != 1.0 {
		for i, x := range p.regretSum {
			if x > 0 {
				p.regretSum[i] *= discountPositiveRegret
			}
		}
	}

	if discountNegativeRegret != 1.0 {
		for i, x := range p.regretSum {
			if x < 0 {
				p.regretSum[i] *= discountNegativeRegret
			}
		}
	}

	p.regretMatching()
	p.currentStrategyWeight = 0.0
}

func (p *Policy) AddRegret(instantaneousRegrets []float64) {
	f64.Add(p.regretSum, instantaneousRegrets)
}

func (p *Policy) AddStrategyWeight(w float64) {
	p.currentStrategyWeight += w
}

// GetAverageStrategy returns the strategy sum normalized to a
// probability distribution, falling back to uniform when no weight
// has accumulated yet.
func (p *Policy) GetAverageStrategy() []float64 {
	avgStrat := make([]float64, len(p.strategySum))

	total := f64.Sum(p.strategySum)
	if total > 0 {
		f64.ScalUnitaryTo(avgStrat, 1.0/total, p.strategySum)
	} else {
		for i := range avgStrat {
			avgStrat[i] = 1.0 / float64(len(avgStrat))
		}
	}

	return avgStrat
}

func (p *Policy) GetStrategySum() []float64 {
	return p.strategySum
}

func (p *Policy) NumActions() int {
	return len(p.regretSum)
}

// regretMatching sets the current strategy proportional to positive
// accumulated regret, or uniform when no regret is positive.
func (p *Policy) regretMatching() {
	copy(p.currentStrategy, p.regretSum)
	makePositive(p.currentStrategy)
	total := f64.Sum(p.currentStrategy)
	if total > 0 {
		f64.ScalUnitary(1.0/total, p.currentStrategy)
	} else {
		for i := range p.currentStrategy {
			p.currentStrategy[i] = 1.0 / float64(len(p.currentStrategy))
		}
	}
}

// GobDecode implements gob.GobDecoder.
func (p *Policy) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float64, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float64, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	var weight float64
	if err := dec.Decode(&weight); err != nil {
		return err
	}

	p.regretSum = regretSum
	p.strategySum = strategySum
	p.currentStrategyWeight = weight
	p.currentStrategy = make([]float64, nActions)
	p.regretMatching()
	return nil
}

// GobEncode implements gob.GobEncoder.
func (p *Policy) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(p.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.strategySum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.currentStrategyWeight); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func uniformDist(n int) []float64 {
	result := make([]float64, n)
	p := 1.0 / float64(n)
	f64.AddConst(p, result)
	return result
}

func makePositive(v []float64) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0.0
		}
	}
}
