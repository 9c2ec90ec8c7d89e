// Package tree provides traversal helpers over extensive-form game
// trees.
package tree

import (
	"github.com/jrhodes/go-equilibrium/cfr"
)

// Visit walks the tree depth-first, calling visitor on every node.
func Visit(root cfr.GameTreeNode, visitor func(node cfr.GameTreeNode)) {
	visitor(root)
	for i := 0; i < root.NumChildren(); i++ {
		child := root.GetChild(i)
		Visit(child, visitor)
	}
}

// VisitInfoSets calls visitor once for each distinct information set
// in the tree, from the acting player's perspective.
func VisitInfoSets(root cfr.GameTreeNode, visitor func(player int, infoSet cfr.InfoSet)) {
	seen := make(map[string]struct{})
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() != cfr.PlayerNode {
			return
		}

		player := node.Player()
		infoSet := node.InfoSet(player)
		if _, ok := seen[infoSet.Key()]; ok {
			return
		}

		visitor(player, infoSet)
		seen[infoSet.Key()] = struct{}{}
	})
}

// CountTerminalNodes returns the number of terminal nodes in the tree.
func CountTerminalNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() == cfr.TerminalNode {
			total++
		}
	})

	return total
}

// CountNodes returns the total number of nodes in the tree.
func CountNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) { total++ })
	return total
}

// CountInfoSets returns the number of distinct information sets in
// the tree.
func CountInfoSets(root cfr.GameTreeNode) int {
	total := 0
	VisitInfoSets(root, func(player int, infoSet cfr.InfoSet) { total++ })
	return total
}
