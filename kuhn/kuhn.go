// Package kuhn implements Kuhn poker: a three-card deck (jack,
// queen, king), one card dealt to each player, a single betting
// round with a fixed one-chip bet. Small enough to solve exactly,
// with a known closed-form equilibrium to test the trainer against.
package kuhn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
)

// Card is one of the three cards, ordered by strength.
type Card int

const (
	Jack Card = iota
	Queen
	King
)

var cardStr = [...]string{"J", "Q", "K"}

func (c Card) String() string {
	return cardStr[c]
}

// History actions. The two deals are recorded as 'r'; player actions
// are 'c' (check or fold) and 'b' (bet or call).
const (
	deal  = 'r'
	check = 'c'
	bet   = 'b'
)

// State is a Kuhn poker game state. Actions at chance states are the
// card values being dealt; at player states action 0 is check/fold
// and action 1 is bet/call.
type State struct {
	history        string
	p0Card, p1Card Card
}

// NewGame returns the root state, before either card is dealt.
func NewGame() State {
	return State{}
}

func (s State) String() string {
	return fmt.Sprintf("history %q [cards: P0 - %s, P1 - %s]",
		s.history, s.p0Card, s.p1Card)
}

// Player implements game.State.
func (s State) Player() game.Player {
	if len(s.history) < 2 {
		return game.Chance
	}

	return game.Player(len(s.history) % 2)
}

// IsTerminal implements game.State.
func (s State) IsTerminal() bool {
	switch s.history {
	case "rrcc", "rrcbc", "rrcbb", "rrbc", "rrbb":
		return true
	}

	return false
}

// LegalActions implements game.State.
func (s State) LegalActions() ([]game.Action, error) {
	if s.IsTerminal() {
		return nil, errors.Wrap(game.ErrInvalidState, "no legal actions in a terminal state")
	}

	switch len(s.history) {
	case 0:
		return []game.Action{game.Action(Jack), game.Action(Queen), game.Action(King)}, nil
	case 1:
		var actions []game.Action
		for _, c := range []Card{Jack, Queen, King} {
			// Both players can't be dealt the same card.
			if c != s.p0Card {
				actions = append(actions, game.Action(c))
			}
		}
		return actions, nil
	default:
		return []game.Action{0, 1}, nil
	}
}

// ActionProb implements game.ChanceActor: deals are uniform over the
// remaining cards.
func (s State) ActionProb(a game.Action) float64 {
	if len(s.history) == 0 {
		return 1.0 / 3.0
	}

	return 1.0 / 2.0
}

// Apply implements game.State.
func (s State) Apply(a game.Action) (game.State, error) {
	legal, err := s.LegalActions()
	if err != nil {
		return nil, err
	}

	ok := false
	for _, l := range legal {
		if l == a {
			ok = true
			break
		}
	}
	if !ok {
		return nil, errors.Wrapf(game.ErrIllegalAction, "action %d after %q", a, s.history)
	}

	switch len(s.history) {
	case 0:
		s.p0Card = Card(a)
		s.history += string(deal)
	case 1:
		s.p1Card = Card(a)
		s.history += string(deal)
	default:
		move := byte(check)
		if a == 1 {
			move = bet
		}
		s.history += string(move)
	}

	return s, nil
}

// Payoff implements game.State. Utilities are symmetric: the pot is
// 1 chip per player plus 1 more per bet/call.
func (s State) Payoff(p game.Player) (float64, error) {
	if !s.IsTerminal() {
		return 0, errors.Wrap(game.ErrInvalidState, "payoff of a non-terminal state")
	}
	if p == game.Chance {
		return 0, errors.Wrap(game.ErrInvalidState, "payoff of the chance player")
	}

	// Value from player 0's perspective.
	var v float64
	switch s.history {
	case "rrbc":
		// Player 1 folded to the bet.
		v = 1
	case "rrcbc":
		// Player 0 check-folded.
		v = -1
	case "rrcc":
		// Showdown with no bets.
		v = showdown(s.p0Card, s.p1Card, 1)
	default: // "rrbb", "rrcbb"
		// Showdown with one bet.
		v = showdown(s.p0Card, s.p1Card, 2)
	}

	if p == game.Player1 {
		v = -v
	}

	return v, nil
}

func showdown(p0, p1 Card, pot float64) float64 {
	if p0 > p1 {
		return pot
	}

	return -pot
}

// InfoSetKey implements game.InfoSetter: the player's own card plus
// the public betting history. The history length encodes whose turn
// it is, so keys never collide across players.
func (s State) InfoSetKey(p game.Player) string {
	return s.card(p).String() + "-" + s.history
}

func (s State) card(p game.Player) Card {
	if p == game.Player0 {
		return s.p0Card
	}

	return s.p1Card
}
