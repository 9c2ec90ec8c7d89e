// Package pushfold implements heads-up push-fold preflop poker as an
// extensive-form game: chance deals one of the 169x169 hand-class
// matchups, the small blind either open-shoves or folds, and the big
// blind calls or folds facing a shove. Showdown payoffs come from a
// caller-supplied hand-class equity function; hand evaluation itself
// is outside this engine.
package pushfold

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
)

// Params configure the stakes, in big blinds.
type Params struct {
	Stack      float64 // Effective stack size.
	Ante       float64 // Ante posted by each player.
	SmallBlind float64
}

// DefaultParams is a 10bb stack with a 0.125bb ante.
var DefaultParams = Params{
	Stack:      10.0,
	Ante:       0.125,
	SmallBlind: 0.5,
}

// EquityFunc returns the expected pot share (win probability plus
// half the tie probability) of hero's hand class against villain's
// when all in preflop. Implementations typically wrap a hand
// evaluator or a precomputed table.
type EquityFunc func(hero, villain int) float64

// Game holds the immutable deal distribution and equity table shared
// by every state of a push-fold tree.
type Game struct {
	params  Params
	weights []float64     // probability of each ordered matchup
	deals   []game.Action // matchup indices with nonzero weight
	equity  [][]float64   // [sbClass][bbClass] pot share of the small blind
}

// New builds a push-fold game for the given stakes and equity
// source. The equity function is consulted once per ordered class
// pair during construction.
func New(params Params, equity EquityFunc) *Game {
	eq := make([][]float64, NumClasses)
	for i := range eq {
		eq[i] = make([]float64, NumClasses)
		for j := range eq[i] {
			eq[i][j] = equity(i, j)
		}
	}

	weights := dealWeights()
	deals := make([]game.Action, 0, NumDeals)
	for m, w := range weights {
		if w > 0 {
			deals = append(deals, game.Action(m))
		}
	}

	return &Game{
		params:  params,
		weights: weights,
		deals:   deals,
		equity:  eq,
	}
}

// Root returns the initial chance state, before the deal.
func (g *Game) Root() State {
	return State{g: g, sbClass: -1, bbClass: -1}
}

type stage uint8

const (
	stageDeal stage = iota
	stageSmallBlind
	stageBigBlind
	stageSBFolded
	stageBBFolded
	stageShowdown
)

// Small blind and big blind actions.
const (
	Fold game.Action = 0
	Push game.Action = 1
	Call game.Action = 1
)

// State is one point of a push-fold hand. The small blind is
// game.Player0. Chance actions are matchup indices sb*169+bb; player
// actions are Fold and Push/Call.
type State struct {
	g                *Game
	sbClass, bbClass int
	stage            stage
}

func (s State) String() string {
	if s.stage == stageDeal {
		return "push-fold: predeal"
	}

	return fmt.Sprintf("push-fold: %s vs %s, stage %d",
		ClassName(s.sbClass), ClassName(s.bbClass), s.stage)
}

// Player implements game.State.
func (s State) Player() game.Player {
	switch s.stage {
	case stageDeal:
		return game.Chance
	case stageSmallBlind:
		return game.Player0
	default:
		return game.Player1
	}
}

// IsTerminal implements game.State.
func (s State) IsTerminal() bool {
	return s.stage >= stageSBFolded
}

// LegalActions implements game.State.
func (s State) LegalActions() ([]game.Action, error) {
	switch s.stage {
	case stageDeal:
		return s.g.deals, nil
	case stageSmallBlind, stageBigBlind:
		return []game.Action{Fold, Push}, nil
	default:
		return nil, errors.Wrap(game.ErrInvalidState, "no legal actions in a terminal state")
	}
}

// ActionProb implements game.ChanceActor: the combinatorial deal
// weight of the matchup.
func (s State) ActionProb(a game.Action) float64 {
	return s.g.weights[a]
}

// Apply implements game.State.
func (s State) Apply(a game.Action) (game.State, error) {
	switch s.stage {
	case stageDeal:
		if a < 0 || int(a) >= NumDeals || s.g.weights[a] == 0 {
			return nil, errors.Wrapf(game.ErrIllegalAction, "deal %d", a)
		}
		s.sbClass = int(a) / NumClasses
		s.bbClass = int(a) % NumClasses
		s.stage = stageSmallBlind

	case stageSmallBlind:
		switch a {
		case Fold:
			s.stage = stageSBFolded
		case Push:
			s.stage = stageBigBlind
		default:
			return nil, errors.Wrapf(game.ErrIllegalAction, "small blind action %d", a)
		}

	case stageBigBlind:
		switch a {
		case Fold:
			s.stage = stageBBFolded
		case Call:
			s.stage = stageShowdown
		default:
			return nil, errors.Wrapf(game.ErrIllegalAction, "big blind action %d", a)
		}

	default:
		return nil, errors.Wrap(game.ErrInvalidState, "state is terminal")
	}

	return s, nil
}

// Payoff implements game.State, in big blinds from the small blind's
// perspective (negated for the big blind).
func (s State) Payoff(p game.Player) (float64, error) {
	if !s.IsTerminal() {
		return 0, errors.Wrap(game.ErrInvalidState, "payoff of a non-terminal state")
	}
	if p == game.Chance {
		return 0, errors.Wrap(game.ErrInvalidState, "payoff of the chance player")
	}

	var v float64
	switch s.stage {
	case stageSBFolded:
		v = -s.g.params.SmallBlind - s.g.params.Ante
	case stageBBFolded:
		v = 1.0 + s.g.params.Ante
	case stageShowdown:
		// Both stacks and antes in the middle; the expected share is
		// linear in equity around the even split.
		v = (s.g.params.Stack + s.g.params.Ante) * 2 * (s.g.equity[s.sbClass][s.bbClass] - 0.5)
	}

	if p == game.Player1 {
		v = -v
	}

	return v, nil
}

// InfoSetKey implements game.InfoSetter: each player observes only
// their own hand class (the big blind acts only after a shove, so
// the public history adds nothing within a position).
func (s State) InfoSetKey(p game.Player) string {
	if p == game.Player0 {
		return "sb:" + ClassName(s.sbClass)
	}

	return "bb:" + ClassName(s.bbClass)
}
