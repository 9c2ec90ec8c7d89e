package tree_test

import (
	"testing"

	"github.com/jrhodes/go-equilibrium/cfr"
	"github.com/jrhodes/go-equilibrium/cfr/tree"
	"github.com/jrhodes/go-equilibrium/kuhn"
)

func TestKuhn_GameTree(t *testing.T) {
	root := cfr.NewTree(kuhn.NewGame())

	nNodes := tree.CountNodes(root)
	if nNodes != 58 {
		t.Errorf("expected %d nodes, got %d", 58, nNodes)
	}

	nTerminal := tree.CountTerminalNodes(root)
	if nTerminal != 30 {
		t.Errorf("expected %d terminal nodes, got %d", 30, nTerminal)
	}
}

func TestKuhn_InfoSets(t *testing.T) {
	root := cfr.NewTree(kuhn.NewGame())
	nInfoSets := tree.CountInfoSets(root)
	if nInfoSets != 12 {
		t.Errorf("expected %d infosets, got %d", 12, nInfoSets)
	}
}

func TestVisitInfoSets_BothPlayers(t *testing.T) {
	root := cfr.NewTree(kuhn.NewGame())
	perPlayer := make(map[int]map[string]struct{})
	tree.VisitInfoSets(root, func(player int, infoSet cfr.InfoSet) {
		if perPlayer[player] == nil {
			perPlayer[player] = make(map[string]struct{})
		}
		perPlayer[player][infoSet.Key()] = struct{}{}
	})

	// Each player holds one of three cards at two decision points.
	for player := 0; player < 2; player++ {
		if n := len(perPlayer[player]); n != 6 {
			t.Errorf("expected 6 infosets for player %d, got %d", player, n)
		}
	}
}
