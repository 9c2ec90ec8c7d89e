package cfr

import "sync"

// floatSlicePool recycles scratch slices used during tree traversal
// to avoid allocating one per visited node.
type floatSlicePool struct {
	pool [][]float64
}

func (p *floatSlicePool) alloc(n int) []float64 {
	if p == nil {
		return make([]float64, n)
	}

	if len(p.pool) > 0 {
		m := len(p.pool)
		next := p.pool[m-1]
		p.pool = p.pool[:m-1]
		return append(next, make([]float64, n)...)
	}

	return make([]float64, n)
}

func (p *floatSlicePool) free(s []float64) {
	if p != nil && cap(s) > 0 {
		p.pool = append(p.pool, s[:0])
	}
}

type threadSafeFloatSlicePool struct {
	mu   sync.Mutex
	pool floatSlicePool
}

func (p *threadSafeFloatSlicePool) alloc(n int) []float64 {
	if p == nil {
		return make([]float64, n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool.alloc(n)
}

func (p *threadSafeFloatSlicePool) free(s []float64) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pool.free(s)
}
