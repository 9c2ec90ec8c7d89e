// Package game defines the contract that a concrete game implements
// before either solver can run. Operations live on the state value:
// there is one concrete State type per game, and the solver loops are
// free of runtime type switches.
package game

import (
	"github.com/pkg/errors"
)

// Player identifies one of the two players, or the chance "player"
// at nodes where the game itself moves (deals, dice).
type Player int8

const (
	Chance  Player = -1
	Player0 Player = 0
	Player1 Player = 1
)

// Opponent returns the other player. It must not be called on Chance.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Chance:
		return "chance"
	case Player0:
		return "player0"
	default:
		return "player1"
	}
}

// Action identifies one legal move from a state. The meaning of the
// index is game-defined (a board cell, a bet, a dealt card); each
// game documents its own encoding. LegalActions enumerates actions
// in a fixed order, ascending by index, and solvers rely on that
// order for deterministic tie-breaking.
type Action int

// Error kinds for contract violations. All are fatal to the solve or
// train call that hit them: a masked violation would corrupt memoized
// values or regret totals without detection. Callers test with
// errors.Cause.
var (
	// ErrInvalidState reports an operation attempted on a state for
	// which it is undefined, e.g. the payoff of a non-terminal state.
	ErrInvalidState = errors.New("operation undefined for this state")

	// ErrIllegalAction reports an action outside the legal set of the
	// state it was applied to.
	ErrIllegalAction = errors.New("action is not legal in this state")
)

// State is a single point in the game tree. States are immutable:
// Apply returns a fresh value and never mutates the receiver, so a
// solver may hold references across recursive calls.
type State interface {
	// Player returns the player to act, or Chance.
	Player() Player

	// IsTerminal reports whether the game is over in this state.
	IsTerminal() bool

	// LegalActions enumerates the legal moves, in ascending action
	// index order. It fails with ErrInvalidState on terminal states.
	LegalActions() ([]Action, error)

	// Apply plays the given action and returns the successor state.
	// It fails with ErrIllegalAction if the action is not legal.
	Apply(a Action) (State, error)

	// Payoff returns the terminal utility for the given player.
	// It fails with ErrInvalidState on non-terminal states.
	// Zero-sum games satisfy Payoff(p) == -Payoff(p.Opponent()).
	Payoff(p Player) (float64, error)
}

// ChanceActor is implemented by states whose Player() is Chance.
// Chance outcomes are exposed as ordinary actions with an associated
// probability so a trainer can enumerate or sample them.
type ChanceActor interface {
	State

	// ActionProb returns the probability of the given chance outcome.
	// Probabilities over LegalActions sum to 1.
	ActionProb(a Action) float64
}

// InfoSetter is implemented by states of imperfect-information games.
type InfoSetter interface {
	State

	// InfoSetKey returns the key of the information set this state
	// belongs to from the given player's perspective: two states with
	// the same key are indistinguishable to that player and have
	// identical legal actions. The key may be an arbitrary string of
	// bytes and does not need to be human-readable.
	InfoSetKey(p Player) string
}
