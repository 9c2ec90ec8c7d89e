package cfr

import (
	"github.com/jrhodes/go-equilibrium/internal/f64"
)

// CFR implements vanilla (full-width) counterfactual regret
// minimization. Each call to Run performs one complete traversal of
// the game tree, accumulating counterfactual regret and strategy
// weight at every visited information set.
type CFR struct {
	strategyProfile StrategyProfile
	slicePool       *floatSlicePool
}

// New returns a vanilla CFR optimizer that accumulates into the
// given strategy profile.
func New(strategyProfile StrategyProfile) *CFR {
	return &CFR{
		strategyProfile: strategyProfile,
		slicePool:       &floatSlicePool{},
	}
}

// Run performs one iteration over the tree rooted at node and
// returns the expected value of the current strategy profile from
// player 0's perspective. The caller advances the profile with
// Update between iterations.
func (c *CFR) Run(node GameTreeNode) float64 {
	return c.runHelper(node, 0, 1.0, 1.0, 1.0)
}

// runHelper returns the expected value of the subtree at node from
// lastPlayer's perspective. reachP0, reachP1 and reachChance are the
// products of each actor's strategy probabilities along the path
// from the root.
func (c *CFR) runHelper(node GameTreeNode, lastPlayer int, reachP0, reachP1, reachChance float64) float64 {
	var ev float64
	switch node.Type() {
	case TerminalNode:
		ev = node.Utility(lastPlayer)
	case ChanceNode:
		ev = c.handleChanceNode(node, lastPlayer, reachP0, reachP1, reachChance)
	default:
		sgn := getSign(lastPlayer, node.Player())
		ev = sgn * c.handlePlayerNode(node, reachP0, reachP1, reachChance)
	}

	node.Close()
	return ev
}

func (c *CFR) handleChanceNode(node GameTreeNode, lastPlayer int, reachP0, reachP1, reachChance float64) float64 {
	var expectedValue float64
	for i := 0; i < node.NumChildren(); i++ {
		child := node.GetChild(i)
		p := node.GetChildProbability(i)
		expectedValue += p * c.runHelper(child, lastPlayer, reachP0, reachP1, reachChance*p)
	}

	return expectedValue
}

func (c *CFR) handlePlayerNode(node GameTreeNode, reachP0, reachP1, reachChance float64) float64 {
	player := node.Player()
	nChildren := node.NumChildren()
	if nChildren == 1 {
		// Fast path for trivial nodes with no real choice.
		child := node.GetChild(0)
		return c.runHelper(child, player, reachP0, reachP1, reachChance)
	}

	policy := c.strategyProfile.GetPolicy(node)
	strategy := policy.GetStrategy()
	actionUtils := c.slicePool.alloc(nChildren)
	for i := 0; i < nChildren; i++ {
		child := node.GetChild(i)
		p := strategy[i]
		if player == 0 {
			actionUtils[i] = c.runHelper(child, player, p*reachP0, reachP1, reachChance)
		} else {
			actionUtils[i] = c.runHelper(child, player, reachP0, p*reachP1, reachChance)
		}
	}

	cfValue := f64.DotUnitary(strategy, actionUtils)

	// Instantaneous regret for each action is its counterfactual
	// value minus the value of the current mixed strategy, weighted
	// by the probability that the other players reach this node.
	counterFactualP := counterFactualProb(player, reachP0, reachP1, reachChance)
	f64.AddConst(-cfValue, actionUtils)
	f64.ScalUnitary(counterFactualP, actionUtils)
	policy.AddRegret(actionUtils)

	// The average strategy is weighted by the acting player's own
	// probability of reaching this node.
	policy.AddStrategyWeight(reachProb(player, reachP0, reachP1, reachChance))

	c.slicePool.free(actionUtils)
	return cfValue
}

// getSign converts an expected value computed from currentPlayer's
// perspective into lastPlayer's perspective (two-player zero-sum).
func getSign(lastPlayer, currentPlayer int) float64 {
	if lastPlayer == currentPlayer {
		return 1.0
	}

	return -1.0
}

// reachProb is the probability that the given player (together with
// chance) plays to reach this node.
func reachProb(player int, reachP0, reachP1, reachChance float64) float64 {
	if player == 0 {
		return reachP0 * reachChance
	}

	return reachP1 * reachChance
}

// counterFactualProb is the probability of reaching this node,
// assuming that the current player tried to reach it.
func counterFactualProb(player int, reachP0, reachP1, reachChance float64) float64 {
	if player == 0 {
		return reachP1 * reachChance
	}

	return reachP0 * reachChance
}
