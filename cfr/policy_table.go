package cfr

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/jrhodes/go-equilibrium/internal/policy"
)

// PolicyTable implements tabular CFR by storing accumulated regrets
// and strategy sums in memory for each InfoSet, looked up by its Key().
type PolicyTable struct {
	params DiscountParams
	iter   int

	// Map of InfoSet Key -> policy for that infoset.
	policies map[string]*policy.Policy
}

// NewPolicyTable creates a new PolicyTable with the given
// DiscountParams.
func NewPolicyTable(params DiscountParams) *PolicyTable {
	return &PolicyTable{
		params:   params,
		iter:     1,
		policies: make(map[string]*policy.Policy),
	}
}

// Update performs regret matching for all policies in the table and
// advances the iteration counter.
func (pt *PolicyTable) Update() {
	discountPos, discountNeg, discountSum := pt.params.GetDiscountFactors(pt.iter)
	for _, p := range pt.policies {
		p.NextStrategy(discountPos, discountNeg, discountSum)
	}

	pt.iter++
}

// Iter implements StrategyProfile.
func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Close implements StrategyProfile.
func (pt *PolicyTable) Close() error {
	return nil
}

// NumInfoSets returns the number of information sets visited so far.
func (pt *PolicyTable) NumInfoSets() int {
	return len(pt.policies)
}

// GetPolicy implements StrategyProfile.
func (pt *PolicyTable) GetPolicy(node GameTreeNode) NodePolicy {
	p := node.Player()
	key := node.InfoSet(p).Key()

	np, ok := pt.policies[key]
	if !ok {
		np = policy.New(node.NumChildren())
		pt.policies[key] = np
		if len(pt.policies)%100000 == 0 {
			glog.V(2).Infof("Tracking %d infosets", len(pt.policies))
		}
	}

	if np.NumActions() != node.NumChildren() {
		panic(fmt.Errorf("policy has n_actions=%v but node has n_children=%v: %v",
			np.NumActions(), node.NumChildren(), node))
	}

	return np
}

// GetAverageStrategy returns the average strategy for the given
// infoset key, or nil if the infoset has never been visited.
func (pt *PolicyTable) GetAverageStrategy(key string) []float64 {
	np, ok := pt.policies[key]
	if !ok {
		return nil
	}

	return np.GetAverageStrategy()
}

// Visit calls the given function for every infoset in the table.
func (pt *PolicyTable) Visit(visitor func(key string, p NodePolicy)) {
	for key, np := range pt.policies {
		visitor(key, np)
	}
}

// ThreadSafePolicyTable wraps PolicyTable and is safe to use from
// multiple goroutines traversing independent subtrees.
type ThreadSafePolicyTable struct {
	mu sync.Mutex
	pt *PolicyTable
}

func NewThreadSafePolicyTable(params DiscountParams) *ThreadSafePolicyTable {
	return &ThreadSafePolicyTable{pt: NewPolicyTable(params)}
}

func (t *ThreadSafePolicyTable) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pt.Update()
}

func (t *ThreadSafePolicyTable) Iter() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pt.Iter()
}

func (t *ThreadSafePolicyTable) Close() error {
	return nil
}

func (t *ThreadSafePolicyTable) GetPolicy(node GameTreeNode) NodePolicy {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &lockedPolicy{mu: &t.mu, p: t.pt.GetPolicy(node)}
}

// lockedPolicy serializes accumulator updates with the table lock so
// that concurrent traversals cannot interleave read-then-update
// sequences on a shared infoset.
type lockedPolicy struct {
	mu *sync.Mutex
	p  NodePolicy
}

func (l *lockedPolicy) GetStrategy() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.GetStrategy()
}

func (l *lockedPolicy) AddRegret(instantaneousRegrets []float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.p.AddRegret(instantaneousRegrets)
}

func (l *lockedPolicy) AddStrategyWeight(w float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.p.AddStrategyWeight(w)
}

func (l *lockedPolicy) GetAverageStrategy() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.GetAverageStrategy()
}

func (l *lockedPolicy) NumActions() int {
	return l.p.NumActions()
}
