package engine

import "espprc/pkg/domain"

// label is a partial path's summary: terminal node, accumulated resources,
// a predecessor handle into the engine's arena, and a reachability bitset
// (spec.md §3). pred is -1 for the seed label.
type label struct {
	node        int
	reducedCost float64
	routingTime int
	demand      int
	pred        int
	reach       bitset
	seq         int
}

// dominates reports whether l dominates other at a node with the given
// sink-ness (spec.md §4.2). At the sink only reduced cost matters; off the
// sink, dominance additionally requires l's reachable set to be a
// superset of other's, with at least as many reachable nodes.
func (l label) dominates(other label, isSink bool) bool {
	if isSink {
		return domain.FloatLess(l.reducedCost, other.reducedCost)
	}
	if l.demand > other.demand || domain.FloatGreater(l.reducedCost, other.reducedCost) || l.routingTime > other.routingTime {
		return false
	}
	if l.reach.count() < other.reach.count() {
		return false
	}
	return l.reach.supersetOf(other.reach)
}

// equal implements the duplicate-suppression shortcut of spec.md §4.4: same
// terminal, demand, routing time, and identical predecessor node-id chain.
// It deliberately does not compare reduced cost.
func (l label) equal(other label, arena []label) bool {
	if l.node != other.node || l.demand != other.demand || l.routingTime != other.routingTime {
		return false
	}
	a, b := l.pred, other.pred
	for a != -1 {
		if b == -1 {
			return false
		}
		if arena[a].node != arena[b].node {
			return false
		}
		a, b = arena[a].pred, arena[b].pred
	}
	return b == -1
}

// visitedPath walks predecessor handles back to the seed and returns the
// node-id sequence in forward (source-to-terminal) order.
func visitedPath(handle int, arena []label) []int {
	var reversed []int
	for h := handle; h != -1; h = arena[h].pred {
		reversed = append(reversed, arena[h].node)
	}
	path := make([]int, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}

// less implements the frontier's lexicographic order: (reducedCost,
// routingTime, demand), ties broken by insertion sequence to keep FIFO
// behavior among equal-priority labels (spec.md §5, §9).
func (l label) less(other label) bool {
	if !domain.FloatEquals(l.reducedCost, other.reducedCost) {
		return domain.FloatLess(l.reducedCost, other.reducedCost)
	}
	if l.routingTime != other.routingTime {
		return l.routingTime < other.routingTime
	}
	if l.demand != other.demand {
		return l.demand < other.demand
	}
	return l.seq < other.seq
}
