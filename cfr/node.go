package cfr

import (
	"fmt"

	"github.com/jrhodes/go-equilibrium/internal/sampling"
	"github.com/jrhodes/go-equilibrium/game"
)

// NewTree adapts a game contract state into the extensive-form view
// the trainers traverse. Children are built lazily and released by
// Close, so only the current traversal path is held in memory.
//
// Contract violations (illegal actions, payoffs of non-terminal
// states, a chance state that does not expose outcome probabilities)
// are programming errors in the game, not recoverable conditions of
// the trainer; they surface as panics carrying the contract error
// and are recovered into errors at the driver boundary.
func NewTree(root game.State) GameTreeNode {
	return &treeNode{state: root}
}

type treeNode struct {
	state    game.State
	actions  []game.Action
	children []treeNode
	probs    []float64
}

func (n *treeNode) String() string {
	return fmt.Sprintf("%v", n.state)
}

// Type implements GameTreeNode.
func (n *treeNode) Type() NodeType {
	switch {
	case n.state.IsTerminal():
		return TerminalNode
	case n.state.Player() == game.Chance:
		return ChanceNode
	default:
		return PlayerNode
	}
}

// NumChildren implements GameTreeNode.
func (n *treeNode) NumChildren() int {
	if n.children == nil {
		n.buildChildren()
	}

	return len(n.children)
}

// GetChild implements GameTreeNode.
func (n *treeNode) GetChild(i int) GameTreeNode {
	if n.children == nil {
		n.buildChildren()
	}

	return &n.children[i]
}

// GetChildProbability implements GameTreeNode.
func (n *treeNode) GetChildProbability(i int) float64 {
	if n.children == nil {
		n.buildChildren()
	}

	return n.probs[i]
}

// SampleChild implements GameTreeNode.
func (n *treeNode) SampleChild() (GameTreeNode, float64) {
	if n.children == nil {
		n.buildChildren()
	}

	i := sampling.SampleOne(n.probs)
	return &n.children[i], n.probs[i]
}

// Player implements GameTreeNode.
func (n *treeNode) Player() int {
	return int(n.state.Player())
}

// InfoSet implements GameTreeNode.
func (n *treeNode) InfoSet(player int) InfoSet {
	is, ok := n.state.(game.InfoSetter)
	if !ok {
		panic(fmt.Errorf("%T does not report information sets", n.state))
	}

	return stringInfoSet(is.InfoSetKey(game.Player(player)))
}

// Utility implements GameTreeNode.
func (n *treeNode) Utility(player int) float64 {
	v, err := n.state.Payoff(game.Player(player))
	if err != nil {
		panic(err)
	}

	return v
}

// Close implements GameTreeNode.
func (n *treeNode) Close() {
	n.actions = nil
	n.children = nil
	n.probs = nil
}

func (n *treeNode) buildChildren() {
	if n.state.IsTerminal() {
		n.children = []treeNode{}
		return
	}

	actions, err := n.state.LegalActions()
	if err != nil {
		panic(err)
	}

	children := make([]treeNode, len(actions))
	for i, a := range actions {
		succ, err := n.state.Apply(a)
		if err != nil {
			panic(err)
		}

		children[i].state = succ
	}

	n.actions = actions
	n.children = children

	if n.state.Player() == game.Chance {
		ca, ok := n.state.(game.ChanceActor)
		if !ok {
			panic(fmt.Errorf("%T has chance nodes but does not report outcome probabilities", n.state))
		}

		probs := make([]float64, len(actions))
		for i, a := range actions {
			probs[i] = ca.ActionProb(a)
		}

		n.probs = probs
	}
}

type stringInfoSet string

func (s stringInfoSet) Key() string {
	return string(s)
}
