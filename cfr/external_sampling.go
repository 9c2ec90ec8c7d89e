package cfr

import (
	"github.com/jrhodes/go-equilibrium/internal/f64"
)

// ExternalSamplingCFR implements external-sampling Monte Carlo CFR:
// on each iteration one player traverses at full width while chance
// outcomes and the opponent's actions are sampled from the current
// strategy profile. The traversing player alternates by iteration.
//
// Run may be called concurrently over independent trees when the
// strategy profile is safe for concurrent use
// (e.g. ThreadSafePolicyTable).
type ExternalSamplingCFR struct {
	strategyProfile StrategyProfile
	slicePool       *threadSafeFloatSlicePool
}

func NewExternalSampling(strategyProfile StrategyProfile) *ExternalSamplingCFR {
	return &ExternalSamplingCFR{
		strategyProfile: strategyProfile,
		slicePool:       &threadSafeFloatSlicePool{},
	}
}

// Run performs one sampled iteration over the tree rooted at node
// and returns the sampled counterfactual value for the traversing
// player.
func (c *ExternalSamplingCFR) Run(node GameTreeNode) float64 {
	iter := c.strategyProfile.Iter()
	traversingPlayer := iter % 2
	sampledActions := make(SampledActionsMap)
	return c.runHelper(node, traversingPlayer, 1.0, traversingPlayer, sampledActions)
}

func (c *ExternalSamplingCFR) runHelper(
	node GameTreeNode,
	lastPlayer int,
	sampleProb float64,
	traversingPlayer int,
	sampledActions SampledActionsMap) float64 {

	var ev float64
	switch node.Type() {
	case TerminalNode:
		ev = node.Utility(lastPlayer)
	case ChanceNode:
		// Sampling probabilities cancel out in the calculation of
		// counterfactual value.
		child, _ := node.SampleChild()
		ev = c.runHelper(child, lastPlayer, sampleProb, traversingPlayer, sampledActions)
	default:
		sgn := getSign(lastPlayer, node.Player())
		ev = sgn * c.handlePlayerNode(node, sampleProb, traversingPlayer, sampledActions)
	}

	node.Close()
	return ev
}

func (c *ExternalSamplingCFR) handlePlayerNode(node GameTreeNode, sampleProb float64, traversingPlayer int, sampledActions SampledActionsMap) float64 {
	if node.Player() == traversingPlayer {
		return c.handleTraversingPlayerNode(node, sampleProb, traversingPlayer, sampledActions)
	}

	return c.handleSampledPlayerNode(node, sampleProb, traversingPlayer, sampledActions)
}

func (c *ExternalSamplingCFR) handleTraversingPlayerNode(node GameTreeNode, sampleProb float64, traversingPlayer int, sampledActions SampledActionsMap) float64 {
	player := node.Player()
	nChildren := node.NumChildren()
	if nChildren == 1 {
		// Optimization to skip trivial nodes with no real choice.
		child := node.GetChild(0)
		return c.runHelper(child, player, sampleProb, traversingPlayer, sampledActions)
	}

	policy := c.strategyProfile.GetPolicy(node)
	strategy := policy.GetStrategy()
	regrets := c.slicePool.alloc(nChildren)
	defer c.slicePool.free(regrets)
	var cfValue float64
	for i := 0; i < nChildren; i++ {
		child := node.GetChild(i)
		p := strategy[i]
		regrets[i] = c.runHelper(child, player, p*sampleProb, traversingPlayer, sampledActions)
		cfValue += p * regrets[i]
	}

	if sampleProb > 0 {
		f64.AddConst(-cfValue, regrets)
		policy.AddRegret(regrets)
	}

	return cfValue
}

// Sample the opponent's action according to the current strategy and
// do not update regrets. The selected action is saved so that it is
// reused if this infoset is hit again within the iteration.
func (c *ExternalSamplingCFR) handleSampledPlayerNode(node GameTreeNode, sampleProb float64, traversingPlayer int, sampledActions SampledActionsMap) float64 {
	player := node.Player()
	policy := c.strategyProfile.GetPolicy(node)

	// Update average strategy for this node. We perform "stochastic"
	// updates as described in the MC-CFR paper.
	if sampleProb > 0 {
		policy.AddStrategyWeight(1.0 / sampleProb)
	}

	// Sampling probabilities cancel out in the calculation of
	// counterfactual value, so they are not included here.
	i := sampledActions.Get(node, policy)
	child := node.GetChild(i)
	return c.runHelper(child, player, sampleProb, traversingPlayer, sampledActions)
}
