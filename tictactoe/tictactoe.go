// Package tictactoe implements the 3x3 tic-tac-toe board as a
// perfect-information game with the square's full symmetry group
// declared for canonicalization: identity, three rotations, and four
// reflections. Collapsing the 8 symmetric variants of each position
// shrinks the minimax state space by up to 8x.
package tictactoe

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
	"github.com/jrhodes/go-equilibrium/minimax"
)

// Tile is the content of one board cell.
type Tile uint8

const (
	Empty Tile = iota
	X
	O
)

func (t Tile) String() string {
	switch t {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// The symmetry group of the square as cell permutations. A transform
// t maps a board b to b' with b'[i] = b[perms[t][i]]. Transform 0 is
// the identity; 1-3 are rotations by 90, 180, 270 degrees; 4-7 are
// the horizontal, vertical, and two diagonal reflections.
var perms = [8][9]int{}

// invPerms[t] is the index-inverse of perms[t]: the cell at index i
// before transforming lands at index invPerms[t][i] afterwards.
var invPerms = [8][9]int{}

// invTransform[t] is the group member undoing transform t.
var invTransform = [8]minimax.Transform{}

func init() {
	rotate := [9]int{2, 5, 8, 1, 4, 7, 0, 3, 6}
	for i := range perms[0] {
		perms[0][i] = i
	}
	for t := 1; t < 4; t++ {
		for i := range perms[t] {
			perms[t][i] = perms[t-1][rotate[i]]
		}
	}
	perms[4] = [9]int{6, 7, 8, 3, 4, 5, 0, 1, 2}
	perms[5] = [9]int{2, 1, 0, 5, 4, 3, 8, 7, 6}
	perms[6] = [9]int{8, 5, 2, 7, 4, 1, 6, 3, 0}
	perms[7] = [9]int{0, 3, 6, 1, 4, 7, 2, 5, 8}

	for t := range perms {
		for i, j := range perms[t] {
			invPerms[t][j] = i
		}
	}

	for t := range perms {
		for u := range perms {
			if perms[u] == invPerms[t] {
				invTransform[t] = minimax.Transform(u)
				break
			}
		}
	}
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a tic-tac-toe position. The zero value is the empty
// board. Actions are cell indices 0-8, row-major from the top left.
// X (game.Player0) always moves first.
type Board struct {
	tiles [9]Tile
}

// New returns the empty board.
func New() Board {
	return Board{}
}

// FromKey reconstructs the board encoded by a ternary position key,
// as produced by Hash or Canonicalize.
func FromKey(key uint64) (Board, error) {
	var b Board
	for i := range b.tiles {
		t := Tile(key % 3)
		key /= 3
		b.tiles[i] = t
	}

	if key != 0 {
		return Board{}, errors.Errorf("key has residue %d after 9 tiles", key)
	}

	return b, nil
}

// Tile returns the content of the given cell.
func (b Board) Tile(i int) Tile {
	return b.tiles[i]
}

// String renders the position for debugging output.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("\n-+-+-\n")
		}
		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(b.tiles[3*row+col].String())
		}
	}

	return sb.String()
}

// Winner returns the player with three in a row, or Empty.
func (b Board) Winner() Tile {
	for _, line := range lines {
		t := b.tiles[line[0]]
		if t != Empty && b.tiles[line[1]] == t && b.tiles[line[2]] == t {
			return t
		}
	}

	return Empty
}

// Player implements game.State. X moves on even plies, so X is to
// act whenever the number of empty cells is odd.
func (b Board) Player() game.Player {
	empty := 0
	for _, t := range b.tiles {
		if t == Empty {
			empty++
		}
	}

	if empty%2 == 1 {
		return game.Player0
	}

	return game.Player1
}

// IsTerminal implements game.State.
func (b Board) IsTerminal() bool {
	if b.Winner() != Empty {
		return true
	}

	for _, t := range b.tiles {
		if t == Empty {
			return false
		}
	}

	return true
}

// LegalActions implements game.State: the empty cells in ascending
// index order.
func (b Board) LegalActions() ([]game.Action, error) {
	if b.IsTerminal() {
		return nil, errors.Wrap(game.ErrInvalidState, "no legal actions in a terminal position")
	}

	var actions []game.Action
	for i, t := range b.tiles {
		if t == Empty {
			actions = append(actions, game.Action(i))
		}
	}

	return actions, nil
}

// Apply implements game.State: mark the given cell for the player to
// move.
func (b Board) Apply(a game.Action) (game.State, error) {
	if b.IsTerminal() {
		return nil, errors.Wrap(game.ErrInvalidState, "position is terminal")
	}

	if a < 0 || a > 8 || b.tiles[a] != Empty {
		return nil, errors.Wrapf(game.ErrIllegalAction, "cell %d", a)
	}

	mark := X
	if b.Player() == game.Player1 {
		mark = O
	}

	b.tiles[a] = mark
	return b, nil
}

// Payoff implements game.State: +1 for the winner, -1 for the loser,
// 0 for a draw.
func (b Board) Payoff(p game.Player) (float64, error) {
	if !b.IsTerminal() {
		return 0, errors.Wrap(game.ErrInvalidState, "payoff of a non-terminal position")
	}

	var v float64
	switch b.Winner() {
	case X:
		v = 1
	case O:
		v = -1
	}

	if p == game.Player1 {
		v = -v
	}

	return v, nil
}

// Hash returns the board's ternary position key: cell i contributes
// tile * 3^i.
func (b Board) Hash() uint64 {
	var h uint64
	pow := uint64(1)
	for _, t := range b.tiles {
		h += uint64(t) * pow
		pow *= 3
	}

	return h
}

// Canonicalize implements minimax.Symmetric: the canonical key is
// the minimum ternary hash over the 8 symmetry transforms, and the
// returned transform maps this board onto that representative.
// Transforms permute cells only, so the acting player is identical
// across the orbit and memoized values need no sign adjustment.
func (b Board) Canonicalize() (uint64, minimax.Transform) {
	best := b.Hash()
	bestT := minimax.Transform(0)
	for t := 1; t < len(perms); t++ {
		var h uint64
		pow := uint64(1)
		for i := 0; i < 9; i++ {
			h += uint64(b.tiles[perms[t][i]]) * pow
			pow *= 3
		}

		if h < best {
			best = h
			bestT = minimax.Transform(t)
		}
	}

	return best, bestT
}

// TransformAction implements minimax.Symmetric: the cell a lands at
// index invPerms[t][a] of the transformed board.
func (b Board) TransformAction(t minimax.Transform, a game.Action) game.Action {
	return game.Action(invPerms[t][a])
}

// InverseTransform implements minimax.Symmetric.
func (b Board) InverseTransform(t minimax.Transform) minimax.Transform {
	return invTransform[t]
}
