package cfr

import (
	"github.com/jrhodes/go-equilibrium/internal/f64"
)

// ChanceSamplingCFR is a Monte Carlo CFR variant that samples a
// single outcome at each chance node and traverses player nodes at
// full width. Useful when the chance fan-out dominates the tree,
// e.g. a preflop deal.
type ChanceSamplingCFR struct {
	strategyProfile StrategyProfile
	slicePool       *floatSlicePool
}

func NewChanceSampling(strategyProfile StrategyProfile) *ChanceSamplingCFR {
	return &ChanceSamplingCFR{
		strategyProfile: strategyProfile,
		slicePool:       &floatSlicePool{},
	}
}

// Run performs one sampled iteration over the tree rooted at node
// and returns the sampled expected value from player 0's perspective.
func (c *ChanceSamplingCFR) Run(node GameTreeNode) float64 {
	return c.runHelper(node, 0, 1.0, 1.0)
}

func (c *ChanceSamplingCFR) runHelper(node GameTreeNode, lastPlayer int, reachP0, reachP1 float64) float64 {
	var ev float64
	switch node.Type() {
	case TerminalNode:
		ev = node.Utility(lastPlayer)
	case ChanceNode:
		// Sampling probabilities cancel out of the counterfactual
		// values, so the sampled child is traversed at full weight.
		child, _ := node.SampleChild()
		ev = c.runHelper(child, lastPlayer, reachP0, reachP1)
	default:
		sgn := getSign(lastPlayer, node.Player())
		ev = sgn * c.handlePlayerNode(node, reachP0, reachP1)
	}

	node.Close()
	return ev
}

func (c *ChanceSamplingCFR) handlePlayerNode(node GameTreeNode, reachP0, reachP1 float64) float64 {
	player := node.Player()
	nChildren := node.NumChildren()
	if nChildren == 1 {
		child := node.GetChild(0)
		return c.runHelper(child, player, reachP0, reachP1)
	}

	policy := c.strategyProfile.GetPolicy(node)
	strategy := policy.GetStrategy()
	actionUtils := c.slicePool.alloc(nChildren)
	for i := 0; i < nChildren; i++ {
		child := node.GetChild(i)
		p := strategy[i]
		if player == 0 {
			actionUtils[i] = c.runHelper(child, player, p*reachP0, reachP1)
		} else {
			actionUtils[i] = c.runHelper(child, player, reachP0, p*reachP1)
		}
	}

	cfValue := f64.DotUnitary(strategy, actionUtils)

	counterFactualP := counterFactualProb(player, reachP0, reachP1, 1.0)
	f64.AddConst(-cfValue, actionUtils)
	f64.ScalUnitary(counterFactualP, actionUtils)
	policy.AddRegret(actionUtils)
	policy.AddStrategyWeight(reachProb(player, reachP0, reachP1, 1.0))

	c.slicePool.free(actionUtils)
	return cfValue
}
