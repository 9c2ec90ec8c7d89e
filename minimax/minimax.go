// Package minimax solves perfect-information, zero-sum, alternating
// move games exhaustively, memoizing values by canonical state so
// that symmetric subtrees are evaluated only once.
package minimax

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
)

var (
	// ErrNotFound is returned for lookups against a key that no solve
	// has visited.
	ErrNotFound = errors.New("no entry for canonical key")

	// ErrCanonicalInvariant reports a symmetry group whose transforms
	// do not commute with Apply. It is a development-time assertion:
	// it should be unreachable for a correctly declared group.
	ErrCanonicalInvariant = errors.New("canonicalization does not commute with apply")
)

// Transform indexes a member of a game's declared finite symmetry
// group. Transform 0 is always the identity.
type Transform int

// Symmetric is a game state with a declared symmetry group. A game
// with no exploitable symmetry declares the trivial group: its
// Canonicalize returns the state's own key and the identity.
//
// Transforms permute board positions only and never flip the acting
// player: the player to move must be identical across every state of
// an orbit, so a value memoized for the representative is valid, with
// no sign adjustment, for every member.
type Symmetric interface {
	game.State

	// Canonicalize returns the canonical key of this state's symmetry
	// orbit, and the transform mapping this state onto the orbit
	// representative. Every state in the orbit returns the same key,
	// and a state that is itself the representative returns the
	// identity transform.
	Canonicalize() (uint64, Transform)

	// TransformAction maps an action in this state's frame through t.
	TransformAction(t Transform, a game.Action) game.Action

	// InverseTransform returns the group member undoing t.
	InverseTransform(t Transform) Transform
}

// Entry is the memoized solution for one canonical state: the game
// value from Player0's perspective and one optimal action, expressed
// in the canonical frame. Terminal entries carry Action = -1.
type Entry struct {
	Value  float64
	Action game.Action
}

// Solver evaluates a game tree bottom-up. Values are stated from
// Player0's perspective throughout: Player0 nodes maximize, Player1
// nodes minimize. Ties break toward the first optimal action in the
// state's legal-action order, so repeated solves of the same game
// produce identical tables.
type Solver struct {
	table map[uint64]Entry
}

func NewSolver() *Solver {
	return &Solver{table: make(map[uint64]Entry)}
}

// Solve exhaustively evaluates the tree under root and returns the
// game value from Player0's perspective.
func (s *Solver) Solve(root Symmetric) (float64, error) {
	e, err := s.solve(root)
	if err != nil {
		return 0, err
	}

	glog.V(1).Infof("Solved %d canonical states", len(s.table))
	return e.Value, nil
}

// Entry returns the memoized solution for the given canonical key.
// It fails with ErrNotFound before Solve has run or for a key whose
// orbit was never visited.
func (s *Solver) Entry(key uint64) (Entry, error) {
	e, ok := s.table[key]
	if !ok {
		return Entry{}, errors.Wrapf(ErrNotFound, "key %d", key)
	}

	return e, nil
}

// NumStates returns the number of canonical states solved so far.
func (s *Solver) NumStates() int {
	return len(s.table)
}

// Visit calls the given function for every memoized canonical state.
func (s *Solver) Visit(visitor func(key uint64, e Entry)) {
	for key, e := range s.table {
		visitor(key, e)
	}
}

// BestAction returns an optimal action for the given state, mapped
// out of the canonical frame back into the state's own frame.
func (s *Solver) BestAction(st Symmetric) (game.Action, error) {
	key, t := st.Canonicalize()
	e, err := s.Entry(key)
	if err != nil {
		return 0, err
	}
	if e.Action < 0 {
		return 0, errors.Wrapf(game.ErrInvalidState, "terminal state has no best action")
	}

	// The stored action is in the representative's frame; the state
	// reaches that frame via t, so the inverse maps it back.
	return st.TransformAction(st.InverseTransform(t), e.Action), nil
}

func (s *Solver) solve(st Symmetric) (Entry, error) {
	key, t := st.Canonicalize()
	if e, ok := s.table[key]; ok {
		return e, nil
	}

	if st.IsTerminal() {
		v, err := st.Payoff(game.Player0)
		if err != nil {
			return Entry{}, err
		}

		e := Entry{Value: v, Action: -1}
		s.table[key] = e
		return e, nil
	}

	actions, err := st.LegalActions()
	if err != nil {
		return Entry{}, err
	}

	player := st.Player()
	var value float64
	var best game.Action
	for i, a := range actions {
		succ, err := st.Apply(a)
		if err != nil {
			return Entry{}, err
		}

		sym, ok := succ.(Symmetric)
		if !ok {
			return Entry{}, errors.Wrapf(ErrCanonicalInvariant,
				"successor of %T does not declare a symmetry group", st)
		}

		child, err := s.solve(sym)
		if err != nil {
			return Entry{}, err
		}

		better := child.Value > value
		if player == game.Player1 {
			better = child.Value < value
		}

		if i == 0 || better {
			value = child.Value
			best = a
		}
	}

	e := Entry{Value: value, Action: st.TransformAction(t, best)}
	s.table[key] = e
	return e, nil
}
