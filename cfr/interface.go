// Package cfr implements Counterfactual Regret Minimization over
// extensive-form games with imperfect information. Iterative
// self-play accumulates per-information-set counterfactual regret;
// the time-averaged strategy converges to a Nash equilibrium in
// two-player zero-sum games.
package cfr

import "io"

// NodeType is the type of node in an extensive-form game tree.
type NodeType int

const (
	ChanceNode NodeType = iota
	TerminalNode
	PlayerNode
)

// InfoSet is the observable game history from the point of view of
// one player.
type InfoSet interface {
	// Key is an identifier used to uniquely look up this InfoSet
	// when accumulating regret and strategy sums in tabular CFR.
	//
	// It may be an arbitrary string of bytes and does not need to be
	// human-readable. Keys must be unique across both players: two
	// distinct (player, information set) pairs must never share a key.
	Key() string
}

// GameTreeNode is the interface for a node in an extensive-form game
// tree. NewTree adapts any conforming game.State into one.
type GameTreeNode interface {
	// Type returns the type of game node.
	Type() NodeType

	// NumChildren returns the number of direct children of this node.
	NumChildren() int
	// GetChild returns the ith child of this node.
	GetChild(i int) GameTreeNode
	// GetChildProbability returns the probability of the ith child.
	// It may only be called on nodes with Type == ChanceNode; the
	// distribution over children sums to 1 and need not be uniform.
	GetChildProbability(i int) float64
	// SampleChild samples one child according to the probability
	// distribution and returns it with its probability. Only
	// applicable for nodes with Type == ChanceNode.
	SampleChild() (GameTreeNode, float64)

	// Player returns this node's acting player.
	// It may only be called on nodes with Type == PlayerNode.
	Player() int
	// InfoSet returns the information set of this node for the given
	// player.
	InfoSet(player int) InfoSet
	// Utility returns this node's utility for the given player.
	// It may only be called on nodes with Type == TerminalNode.
	Utility(player int) float64

	// Close releases resources (e.g. cached children) held by this
	// node. After Close the node may no longer be used unless rebuilt.
	Close()
}

// NodePolicy accumulates regret and strategy weight for one
// information set and produces strategies by regret matching.
//
// Accumulation is double precision throughout: single-precision
// accumulation drifts over large iteration counts and is a known
// correctness hazard for long training runs.
type NodePolicy interface {
	// GetStrategy returns the current strategy, a probability
	// distribution over the NumActions() actions.
	GetStrategy() []float64
	// AddRegret adds observed instantaneous regrets, already weighted
	// by counterfactual reach, to the accumulated regret totals.
	AddRegret(instantaneousRegrets []float64)
	// AddStrategyWeight accumulates the acting player's reach weight
	// for the current strategy; it is folded into the strategy sum on
	// the profile's next Update.
	AddStrategyWeight(w float64)
	// GetAverageStrategy returns the strategy sum normalized to a
	// probability distribution: the strategy that converges to an
	// equilibrium. It is uniform until any weight has accumulated.
	GetAverageStrategy() []float64
	// NumActions returns the number of actions at this infoset.
	NumActions() int
}

// StrategyProfile maintains a NodePolicy for every information set
// visited during traversal of the game tree.
type StrategyProfile interface {
	// GetPolicy returns the NodePolicy for the given node, creating
	// it on first visit.
	GetPolicy(node GameTreeNode) NodePolicy
	// Update advances the profile one iteration: flushes pending
	// strategy weights into the strategy sums, applies the discount
	// schedule, and recomputes current strategies by regret matching.
	Update()
	// Iter returns the current iteration (the number of completed
	// Update calls plus one).
	Iter() int

	io.Closer
}
