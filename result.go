package equilibrium

import (
	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
	"github.com/jrhodes/go-equilibrium/minimax"
)

// ErrNotFound is returned when a SolveResult is queried for a state
// or infoset that was not reached during the solve.
var ErrNotFound = errors.New("no result recorded for the given key")

// SolveResult is the read-only outcome of a solve. Minimax runs
// populate canonical state values; CFR runs populate average
// strategies and the exploitability trail.
type SolveResult struct {
	gameValue      float64
	values         map[uint64]minimax.Entry
	strategies     map[string][]float64
	exploitability []float64
}

func newSolveResult() *SolveResult {
	return &SolveResult{
		values:     make(map[uint64]minimax.Entry),
		strategies: make(map[string][]float64),
	}
}

// GameValue returns the value of the game for Player0: the exact
// minimax value, or the expected value of the trained average
// strategy profile.
func (r *SolveResult) GameValue() float64 {
	return r.gameValue
}

// ValueOf returns the minimax value and best action stored for the
// given canonical state key. The action is expressed in the canonical
// frame and is -1 for terminal states.
func (r *SolveResult) ValueOf(canonicalKey uint64) (float64, game.Action, error) {
	e, ok := r.values[canonicalKey]
	if !ok {
		return 0, -1, ErrNotFound
	}

	return e.Value, e.Action, nil
}

// BestActionOf maps the stored canonical-frame best action back into
// the frame of the given state.
func (r *SolveResult) BestActionOf(st minimax.Symmetric) (game.Action, error) {
	key, t := st.Canonicalize()
	e, ok := r.values[key]
	if !ok {
		return -1, ErrNotFound
	}

	if e.Action < 0 {
		return -1, errors.Wrap(game.ErrInvalidState, "terminal state has no best action")
	}

	return st.TransformAction(st.InverseTransform(t), e.Action), nil
}

// NumStates returns the number of canonical states solved.
func (r *SolveResult) NumStates() int {
	return len(r.values)
}

// StrategyOf returns the trained average strategy for the given
// infoset key. Probabilities are indexed by the infoset's legal
// actions in ascending order.
func (r *SolveResult) StrategyOf(infoSetKey string) ([]float64, error) {
	s, ok := r.strategies[infoSetKey]
	if !ok {
		return nil, ErrNotFound
	}

	return s, nil
}

// NumInfoSets returns the number of infosets with a trained strategy.
func (r *SolveResult) NumInfoSets() int {
	return len(r.strategies)
}

// ExploitabilityTrail returns the exploitability recorded at each
// checkpoint, in iteration order.
func (r *SolveResult) ExploitabilityTrail() []float64 {
	return r.exploitability
}
