// Package equilibrium computes equilibria for small two-player
// zero-sum games. Perfect-information games are solved exactly with
// symmetry-aware memoized minimax; imperfect-information games are
// trained to an approximate Nash equilibrium with counterfactual
// regret minimization.
package equilibrium

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/cfr"
	"github.com/jrhodes/go-equilibrium/game"
	"github.com/jrhodes/go-equilibrium/minimax"
)

// Variant selects the CFR traversal used by RunCFR.
type Variant int

const (
	// Vanilla performs full-width traversals over the entire tree.
	Vanilla Variant = iota
	// ChanceSampling samples a single outcome at each chance node.
	ChanceSampling
	// ExternalSampling samples chance and the non-traversing player.
	ExternalSampling
)

// CFRParams configures a RunCFR training run.
type CFRParams struct {
	// Iterations is the number of CFR iterations to perform.
	Iterations int
	// Discount configures regret and strategy sum weighting
	// (CFR+, linear CFR, DCFR).
	Discount cfr.DiscountParams
	// Variant selects the traversal. The zero value is full-width
	// vanilla CFR.
	Variant Variant
	// CheckEvery is the exploitability checkpoint interval, in
	// iterations. If zero, exploitability is computed once after the
	// final iteration.
	CheckEvery int
	// Converged, if non-nil, is consulted at each checkpoint and
	// stops training early when it returns true.
	Converged func(iter int, exploitability float64) bool
}

// RunMinimax solves the given perfect-information game exactly and
// returns the table of canonical state values.
func RunMinimax(root minimax.Symmetric) (*SolveResult, error) {
	solver := minimax.NewSolver()
	v, err := solver.Solve(root)
	if err != nil {
		return nil, errors.Wrap(err, "minimax solve failed")
	}

	result := newSolveResult()
	result.gameValue = v
	solver.Visit(func(key uint64, e minimax.Entry) {
		result.values[key] = e
	})

	glog.V(1).Infof("Solved %d canonical states, game value %v",
		result.NumStates(), v)
	return result, nil
}

// RunCFR trains an approximate equilibrium for the given
// imperfect-information game. The ctx stop signal is checked between
// iterations only, so a run never stops with a partial accumulator
// update. Contract violations in the game implementation surface as
// errors rather than crashing the caller.
func RunCFR(ctx context.Context, root game.State, params CFRParams) (result *SolveResult, err error) {
	if params.Iterations <= 0 {
		return nil, errors.New("cfr: iterations must be positive")
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}

			result = nil
			err = errors.Wrap(e, "cfr training aborted")
		}
	}()

	node := cfr.NewTree(root)
	profile := cfr.NewPolicyTable(params.Discount)
	opt := newTrainer(params.Variant, profile)

	checkEvery := params.CheckEvery
	if checkEvery <= 0 {
		checkEvery = params.Iterations
	}

	result = newSolveResult()
	for i := 1; i <= params.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev := opt.Run(node)
		glog.V(3).Infof("Iteration %d: expected game value %v", i, ev)
		profile.Update()

		if i%checkEvery == 0 || i == params.Iterations {
			expl := cfr.Exploitability(node, profile)
			result.exploitability = append(result.exploitability, expl)
			glog.V(1).Infof("Iteration %d: exploitability %v", i, expl)
			if params.Converged != nil && params.Converged(i, expl) {
				break
			}
		}
	}

	result.gameValue = cfr.AverageStrategyValue(node, profile)
	profile.Visit(func(key string, p cfr.NodePolicy) {
		result.strategies[key] = p.GetAverageStrategy()
	})

	return result, nil
}

type trainer interface {
	Run(node cfr.GameTreeNode) float64
}

func newTrainer(v Variant, profile cfr.StrategyProfile) trainer {
	switch v {
	case ChanceSampling:
		return cfr.NewChanceSampling(profile)
	case ExternalSampling:
		return cfr.NewExternalSampling(profile)
	default:
		return cfr.New(profile)
	}
}
