package ldbstore

import (
	"github.com/golang/glog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/jrhodes/go-equilibrium/cfr"
	"github.com/jrhodes/go-equilibrium/internal/policy"
)

// PolicyTable is a tabular CFR policy table that keeps all node
// policies on disk in a LevelDB database. PolicyTable implements
// cfr.StrategyProfile.
type PolicyTable struct {
	path   string
	params cfr.DiscountParams
	iter   int

	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New creates a new PolicyTable backed by a LevelDB database at the
// given path.
func New(path string, opts *opt.Options, params cfr.DiscountParams) (*PolicyTable, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}

	return &PolicyTable{
		path:   path,
		params: params,
		iter:   1,
		db:     db,
	}, nil
}

// Close implements cfr.StrategyProfile.
func (pt *PolicyTable) Close() error {
	return pt.db.Close()
}

// Iter implements cfr.StrategyProfile.
func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Update implements cfr.StrategyProfile: a full sweep over the
// database applying the discount factors and regret matching to
// every stored policy.
func (pt *PolicyTable) Update() {
	discountPos, discountNeg, discountSum := pt.params.GetDiscountFactors(pt.iter)
	iter := pt.db.NewIterator(nil, pt.rOpts)
	n := 0
	for iter.Next() {
		n++
		var p policy.Policy
		if err := p.GobDecode(iter.Value()); err != nil {
			panic(err)
		}

		p.NextStrategy(discountPos, discountNeg, discountSum)
		buf, err := p.GobEncode()
		if err != nil {
			panic(err)
		}

		if err := pt.db.Put(iter.Key(), buf, pt.wOpts); err != nil {
			panic(err)
		}
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		panic(err)
	}

	glog.V(1).Infof("Updated %d policies", n)
	pt.iter++
}

// GetPolicy implements cfr.StrategyProfile.
func (pt *PolicyTable) GetPolicy(node cfr.GameTreeNode) cfr.NodePolicy {
	key := []byte(node.InfoSet(node.Player()).Key())
	p := policy.New(node.NumChildren())
	buf, err := pt.db.Get(key, pt.rOpts)
	if err != nil {
		if err != leveldb.ErrNotFound {
			panic(err)
		}
	} else {
		if err := p.GobDecode(buf); err != nil {
			panic(err)
		}
	}

	return &ldbPolicy{
		Policy: p,
		db:     pt.db,
		key:    key,
		wOpts:  pt.wOpts,
	}
}

// ldbPolicy implements cfr.NodePolicy, with all updates immediately
// persisted to the underlying LevelDB database.
type ldbPolicy struct {
	*policy.Policy
	db    *leveldb.DB
	key   []byte
	wOpts *opt.WriteOptions
}

// AddRegret implements cfr.NodePolicy.
func (l *ldbPolicy) AddRegret(instantaneousRegrets []float64) {
	l.Policy.AddRegret(instantaneousRegrets)
	l.save()
}

// AddStrategyWeight implements cfr.NodePolicy.
func (l *ldbPolicy) AddStrategyWeight(w float64) {
	l.Policy.AddStrategyWeight(w)
	l.save()
}

func (l *ldbPolicy) save() {
	buf, err := l.Policy.GobEncode()
	if err != nil {
		panic(err)
	}

	if err := l.db.Put(l.key, buf, l.wOpts); err != nil {
		panic(err)
	}
}
