package cfr

import (
	"fmt"

	"github.com/jrhodes/go-equilibrium/internal/sampling"
)

// SampledActionsMap records the action sampled at each non-traversing
// player infoset during one run of external-sampling CFR, so that an
// infoset hit more than once within the iteration replays the same
// choice.
type SampledActionsMap map[string]int

func (m SampledActionsMap) Get(node GameTreeNode, policy NodePolicy) int {
	key := node.InfoSet(node.Player()).Key()
	i, ok := m[key]
	if !ok {
		i = sampling.SampleOne(policy.GetStrategy())
		m[key] = i
	}

	if i >= node.NumChildren() {
		panic(fmt.Errorf("sampled action %d but node has %d children: %v",
			i, node.NumChildren(), node))
	}

	return i
}
