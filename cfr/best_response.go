package cfr

import (
	"math"
)

// BestResponseValue computes the expected value, for the given
// player, of the best response to the profile's average strategy.
// The best response is exact: it maximizes per information set,
// weighting each member state by the probability that chance and the
// opponent play to reach it. Requires perfect recall.
func BestResponseValue(root GameTreeNode, profile StrategyProfile, player int) float64 {
	br := &bestResponse{
		profile:  profile,
		player:   player,
		infoSets: make(map[string][]weightedNode),
		chosen:   make(map[string]int),
	}

	br.collect(root, 1.0)
	return br.value(root)
}

// Exploitability is the average best-response gap of the profile's
// average strategy: (br0 + br1) / 2, where brN is player N's best
// response value. It is 0 exactly at a Nash equilibrium of a
// two-player zero-sum game and positive everywhere else; a converging
// trainer drives it toward 0.
func Exploitability(root GameTreeNode, profile StrategyProfile) float64 {
	br0 := BestResponseValue(root, profile, 0)
	br1 := BestResponseValue(root, profile, 1)
	return (br0 + br1) / 2
}

// AverageStrategyValue returns the expected value, from player 0's
// perspective, when both players follow the profile's average
// strategy.
func AverageStrategyValue(root GameTreeNode, profile StrategyProfile) float64 {
	switch root.Type() {
	case TerminalNode:
		return root.Utility(0)
	case ChanceNode:
		var ev float64
		for i := 0; i < root.NumChildren(); i++ {
			ev += root.GetChildProbability(i) * AverageStrategyValue(root.GetChild(i), profile)
		}
		return ev
	default:
		strategy := profile.GetPolicy(root).GetAverageStrategy()
		var ev float64
		for i := 0; i < root.NumChildren(); i++ {
			ev += strategy[i] * AverageStrategyValue(root.GetChild(i), profile)
		}
		return ev
	}
}

type weightedNode struct {
	node GameTreeNode
	// reach is the product of chance and opponent average-strategy
	// probabilities along the path from the root; the best responder's
	// own choices are excluded.
	reach float64
}

type bestResponse struct {
	profile StrategyProfile
	player  int

	// Nodes of the best responder grouped by information set.
	infoSets map[string][]weightedNode
	// Memoized best action per information set.
	chosen map[string]int
}

// collect walks the tree accumulating, for every infoset of the best
// responder, its member states and their counterfactual reach.
func (b *bestResponse) collect(node GameTreeNode, reach float64) {
	switch node.Type() {
	case TerminalNode:
		return

	case ChanceNode:
		for i := 0; i < node.NumChildren(); i++ {
			b.collect(node.GetChild(i), reach*node.GetChildProbability(i))
		}

	default:
		if node.Player() == b.player {
			key := node.InfoSet(b.player).Key()
			b.infoSets[key] = append(b.infoSets[key], weightedNode{node, reach})
			for i := 0; i < node.NumChildren(); i++ {
				b.collect(node.GetChild(i), reach)
			}
		} else {
			strategy := b.profile.GetPolicy(node).GetAverageStrategy()
			for i := 0; i < node.NumChildren(); i++ {
				b.collect(node.GetChild(i), reach*strategy[i])
			}
		}
	}
}

// bestAction picks the action maximizing the reach-weighted value
// over all member states of the infoset. Deeper infosets of the best
// responder are resolved recursively through value; with perfect
// recall they are strictly deeper in the tree, so the recursion
// terminates.
func (b *bestResponse) bestAction(key string) int {
	if a, ok := b.chosen[key]; ok {
		return a
	}

	members := b.infoSets[key]
	nActions := members[0].node.NumChildren()
	best := 0
	bestValue := math.Inf(-1)
	for a := 0; a < nActions; a++ {
		var v float64
		for _, m := range members {
			v += m.reach * b.value(m.node.GetChild(a))
		}

		if v > bestValue {
			best, bestValue = a, v
		}
	}

	b.chosen[key] = best
	return best
}

// value is the expected value of the subtree for the best responder,
// with the opponent playing the average strategy and the best
// responder playing the (memoized) best response.
func (b *bestResponse) value(node GameTreeNode) float64 {
	switch node.Type() {
	case TerminalNode:
		return node.Utility(b.player)

	case ChanceNode:
		var ev float64
		for i := 0; i < node.NumChildren(); i++ {
			ev += node.GetChildProbability(i) * b.value(node.GetChild(i))
		}
		return ev

	default:
		if node.Player() == b.player {
			key := node.InfoSet(b.player).Key()
			return b.value(node.GetChild(b.bestAction(key)))
		}

		strategy := b.profile.GetPolicy(node).GetAverageStrategy()
		var ev float64
		for i := 0; i < node.NumChildren(); i++ {
			ev += strategy[i] * b.value(node.GetChild(i))
		}
		return ev
	}
}
