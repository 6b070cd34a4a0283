package engine

import "espprc/pkg/domain"

// frontierItem is an element of the frontier priority queue: a handle into
// the engine's label arena plus the ordering key, cached so the heap never
// has to dereference the arena during comparisons.
type frontierItem struct {
	handle      int
	reducedCost float64
	routingTime int
	demand      int
	seq         int
	index       int // index in the heap, maintained by Swap
}

// frontier implements heap.Interface. It is a min-heap keyed by
// (reducedCost, routingTime, demand, seq), the lexicographic order spec.md
// §5/§9 specifies, with FIFO tie-breaking among equal-priority labels.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	a, b := f[i], f[j]
	if !domain.FloatEquals(a.reducedCost, b.reducedCost) {
		return domain.FloatLess(a.reducedCost, b.reducedCost)
	}
	if a.routingTime != b.routingTime {
		return a.routingTime < b.routingTime
	}
	if a.demand != b.demand {
		return a.demand < b.demand
	}
	return a.seq < b.seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*f = old[:n-1]
	return item
}
