package kuhn

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
)

func apply(t *testing.T, s State, actions ...game.Action) State {
	t.Helper()
	for _, a := range actions {
		next, err := s.Apply(a)
		if err != nil {
			t.Fatal(err)
		}
		s = next.(State)
	}

	return s
}

func TestState_Players(t *testing.T) {
	s := NewGame()
	if s.Player() != game.Chance {
		t.Errorf("expected chance at the root, got %v", s.Player())
	}

	s = apply(t, s, game.Action(Jack))
	if s.Player() != game.Chance {
		t.Errorf("expected chance after one deal, got %v", s.Player())
	}

	s = apply(t, s, game.Action(Queen))
	if s.Player() != game.Player0 {
		t.Errorf("expected player0 after the deal, got %v", s.Player())
	}

	s = apply(t, s, 1)
	if s.Player() != game.Player1 {
		t.Errorf("expected player1 after a bet, got %v", s.Player())
	}
}

func TestState_DealExcludesDealtCard(t *testing.T) {
	s := apply(t, NewGame(), game.Action(Queen))
	actions, err := s.LegalActions()
	if err != nil {
		t.Fatal(err)
	}

	want := []game.Action{game.Action(Jack), game.Action(King)}
	if len(actions) != len(want) || actions[0] != want[0] || actions[1] != want[1] {
		t.Errorf("expected deals %v, got %v", want, actions)
	}

	if _, err := s.Apply(game.Action(Queen)); errors.Cause(err) != game.ErrIllegalAction {
		t.Errorf("expected ErrIllegalAction dealing the queen twice, got %v", err)
	}
}

func TestState_ChanceProbs(t *testing.T) {
	root := NewGame()
	if p := root.ActionProb(game.Action(Jack)); p != 1.0/3.0 {
		t.Errorf("expected first deal prob 1/3, got %v", p)
	}

	s := apply(t, root, game.Action(Jack))
	if p := s.ActionProb(game.Action(Queen)); p != 1.0/2.0 {
		t.Errorf("expected second deal prob 1/2, got %v", p)
	}
}

func TestState_Payoffs(t *testing.T) {
	cases := []struct {
		p0, p1  Card
		betting []game.Action
		want    float64 // payoff for player 0
	}{
		{Queen, Jack, []game.Action{0, 0}, 1},     // check-check showdown
		{Jack, Queen, []game.Action{0, 0}, -1},    // check-check showdown
		{Jack, Queen, []game.Action{1, 0}, 1},     // bet, fold
		{Jack, King, []game.Action{0, 1, 0}, -1},  // check, bet, fold
		{King, Queen, []game.Action{1, 1}, 2},     // bet, call showdown
		{Jack, Queen, []game.Action{0, 1, 1}, -2}, // check, bet, call showdown
	}

	for _, tc := range cases {
		s := apply(t, NewGame(), game.Action(tc.p0), game.Action(tc.p1))
		s = apply(t, s, tc.betting...)
		if !s.IsTerminal() {
			t.Fatalf("%v: expected terminal state", s)
		}

		v0, err := s.Payoff(game.Player0)
		if err != nil {
			t.Fatal(err)
		}
		if v0 != tc.want {
			t.Errorf("%v: expected payoff %v, got %v", s, tc.want, v0)
		}

		v1, err := s.Payoff(game.Player1)
		if err != nil {
			t.Fatal(err)
		}
		if v1 != -v0 {
			t.Errorf("%v: payoffs are not zero-sum: %v vs %v", s, v0, v1)
		}
	}
}

func TestState_PayoffErrors(t *testing.T) {
	s := apply(t, NewGame(), game.Action(Jack), game.Action(Queen), 1)
	if _, err := s.Payoff(game.Player0); errors.Cause(err) != game.ErrInvalidState {
		t.Errorf("expected ErrInvalidState for a non-terminal payoff, got %v", err)
	}

	s = apply(t, s, 0)
	if _, err := s.Payoff(game.Chance); errors.Cause(err) != game.ErrInvalidState {
		t.Errorf("expected ErrInvalidState for the chance payoff, got %v", err)
	}
}

func TestState_InfoSetKeys(t *testing.T) {
	s := apply(t, NewGame(), game.Action(King), game.Action(Jack), 1)
	if key := s.InfoSetKey(game.Player0); key != "K-rrb" {
		t.Errorf("expected player0 key K-rrb, got %q", key)
	}
	if key := s.InfoSetKey(game.Player1); key != "J-rrb" {
		t.Errorf("expected player1 key J-rrb, got %q", key)
	}

	// A player's key must not leak the opponent's card: the same
	// public history with a different opponent card collapses to the
	// same infoset.
	other := apply(t, NewGame(), game.Action(King), game.Action(Queen), 1)
	if s.InfoSetKey(game.Player0) != other.InfoSetKey(game.Player0) {
		t.Errorf("player0 key depends on the opponent's card")
	}
}

func TestState_ChanceProbsSumToOne(t *testing.T) {
	for _, s := range []State{NewGame(), apply(t, NewGame(), game.Action(Queen))} {
		actions, err := s.LegalActions()
		if err != nil {
			t.Fatal(err)
		}

		total := 0.0
		for _, a := range actions {
			total += s.ActionProb(a)
		}

		if math.Abs(total-1.0) > 1e-9 {
			t.Errorf("%v: chance probs sum to %v", s, total)
		}
	}
}
