package tictactoe_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrhodes/go-equilibrium/game"
	"github.com/jrhodes/go-equilibrium/minimax"
	"github.com/jrhodes/go-equilibrium/tictactoe"
)

func play(t *testing.T, b tictactoe.Board, cells ...game.Action) tictactoe.Board {
	t.Helper()
	for _, a := range cells {
		st, err := b.Apply(a)
		require.NoError(t, err)
		b = st.(tictactoe.Board)
	}

	return b
}

func TestBoard_PlayerAlternates(t *testing.T) {
	b := tictactoe.New()
	assert.Equal(t, game.Player0, b.Player())

	b = play(t, b, 4)
	assert.Equal(t, game.Player1, b.Player())
	assert.Equal(t, tictactoe.X, b.Tile(4))

	b = play(t, b, 0)
	assert.Equal(t, game.Player0, b.Player())
	assert.Equal(t, tictactoe.O, b.Tile(0))
}

func TestBoard_LegalActions(t *testing.T) {
	b := play(t, tictactoe.New(), 4, 0)
	actions, err := b.LegalActions()
	require.NoError(t, err)
	assert.Equal(t, []game.Action{1, 2, 3, 5, 6, 7, 8}, actions)
}

func TestBoard_ApplyErrors(t *testing.T) {
	b := play(t, tictactoe.New(), 4)

	_, err := b.Apply(4)
	assert.Equal(t, game.ErrIllegalAction, errors.Cause(err))
	_, err = b.Apply(9)
	assert.Equal(t, game.ErrIllegalAction, errors.Cause(err))

	// X takes the top row.
	won := play(t, b, 3, 0, 5, 1, 8, 2)
	_, err = won.Apply(6)
	assert.Equal(t, game.ErrInvalidState, errors.Cause(err))
	_, err = won.LegalActions()
	assert.Equal(t, game.ErrInvalidState, errors.Cause(err))
}

func TestBoard_WinnerAndPayoff(t *testing.T) {
	b := tictactoe.New()
	assert.Equal(t, tictactoe.Empty, b.Winner())
	assert.False(t, b.IsTerminal())
	_, err := b.Payoff(game.Player0)
	assert.Equal(t, game.ErrInvalidState, errors.Cause(err))

	// X wins the left column.
	b = play(t, b, 0, 1, 3, 4, 6)
	assert.Equal(t, tictactoe.X, b.Winner())
	require.True(t, b.IsTerminal())

	v0, err := b.Payoff(game.Player0)
	require.NoError(t, err)
	v1, err := b.Payoff(game.Player1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v0)
	assert.Equal(t, -1.0, v1)
}

func TestBoard_DrawPayoff(t *testing.T) {
	// X O X / X O O / O X X
	b := play(t, tictactoe.New(), 0, 1, 2, 4, 3, 5, 7, 6, 8)
	require.True(t, b.IsTerminal())
	assert.Equal(t, tictactoe.Empty, b.Winner())

	v0, err := b.Payoff(game.Player0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v0)
}

func TestBoard_HashRoundtrip(t *testing.T) {
	b := play(t, tictactoe.New(), 4, 0, 8, 2)
	got, err := tictactoe.FromKey(b.Hash())
	require.NoError(t, err)
	assert.Equal(t, b, got)

	// 3^9 is the first key with a nonzero residue.
	_, err = tictactoe.FromKey(19683)
	assert.Error(t, err)
}

func TestBoard_CanonicalOrbit(t *testing.T) {
	// All four corner openings share one canonical key; all four edge
	// openings share another; the two orbits are distinct.
	cornerKey, _ := play(t, tictactoe.New(), 0).Canonicalize()
	for _, cell := range []game.Action{2, 6, 8} {
		key, _ := play(t, tictactoe.New(), cell).Canonicalize()
		assert.Equal(t, cornerKey, key, "corner %d", cell)
	}

	edgeKey, _ := play(t, tictactoe.New(), 1).Canonicalize()
	for _, cell := range []game.Action{3, 5, 7} {
		key, _ := play(t, tictactoe.New(), cell).Canonicalize()
		assert.Equal(t, edgeKey, key, "edge %d", cell)
	}

	assert.NotEqual(t, cornerKey, edgeKey)
}

func TestBoard_CanonicalIdempotent(t *testing.T) {
	b := play(t, tictactoe.New(), 2, 3, 7)
	key, _ := b.Canonicalize()

	rep, err := tictactoe.FromKey(key)
	require.NoError(t, err)
	repKey, repT := rep.Canonicalize()
	assert.Equal(t, key, repKey)
	assert.Equal(t, minimax.Transform(0), repT)
}

func TestBoard_VerifyCanonical(t *testing.T) {
	rebuild := func(key uint64) (minimax.Symmetric, error) {
		b, err := tictactoe.FromKey(key)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	// Every position within the first three plies.
	frontier := []tictactoe.Board{tictactoe.New()}
	for depth := 0; depth < 3; depth++ {
		var next []tictactoe.Board
		for _, b := range frontier {
			require.NoError(t, minimax.VerifyCanonical(b, rebuild))

			actions, err := b.LegalActions()
			require.NoError(t, err)
			for _, a := range actions {
				next = append(next, play(t, b, a))
			}
		}

		frontier = next
	}
}
