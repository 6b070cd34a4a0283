package domain

import (
	"sort"
	"sync"

	"espprc/pkg/apperror"
)

// Graph owns the node list, the per-node outgoing-edge adjacency, and the
// original/revised arc-cost maps described in spec.md §3/§4.1. Node 0 is
// the source; the last node is the sink.
//
// Graph is safe for concurrent reads; ReviseCosts and ApplyBranch take the
// write lock. The label-setting engine holds its own Clone so branching
// mutations never affect a caller's graph (spec.md §5).
type Graph struct {
	mu sync.RWMutex

	nodes        []Node
	adjacency    [][]Edge
	originalCost map[EdgeKey]float64
	revisedCost  map[EdgeKey]float64
}

// Construct builds a Graph from a node list and a parallel per-node
// outgoing-edge adjacency list. It fails with CodeShapeMismatch when the
// two slices have different lengths (spec.md §4.1).
func Construct(nodes []Node, adjacency [][]Edge) (*Graph, error) {
	if len(nodes) != len(adjacency) {
		return nil, apperror.New(apperror.CodeShapeMismatch, "node list and adjacency list lengths differ").
			WithDetails("nodes", len(nodes)).
			WithDetails("adjacency", len(adjacency))
	}

	g := &Graph{
		nodes:        append([]Node(nil), nodes...),
		adjacency:    make([][]Edge, len(adjacency)),
		originalCost: make(map[EdgeKey]float64),
		revisedCost:  make(map[EdgeKey]float64),
	}
	for i, edges := range adjacency {
		g.adjacency[i] = append([]Edge(nil), edges...)
		for _, e := range edges {
			key := e.Key()
			g.originalCost[key] = e.Cost
			g.revisedCost[key] = e.Cost
		}
	}
	return g, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// SourceID returns the source node id, always 0.
func (g *Graph) SourceID() int { return 0 }

// SinkID returns the sink node id, always the last node.
func (g *Graph) SinkID() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes) - 1
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || id >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Outgoing returns a copy of node id's outgoing edge list, in adjacency
// order (after an optional SortOutgoing).
func (g *Graph) Outgoing(id int) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || id >= len(g.adjacency) {
		return nil
	}
	out := make([]Edge, len(g.adjacency[id]))
	copy(out, g.adjacency[id])
	return out
}

// RevisedCost returns the current revised cost of arc (from, to), and
// whether that arc exists.
func (g *Graph) RevisedCost(from, to int) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.revisedCost[EdgeKey{From: from, To: to}]
	return c, ok
}

// OriginalCost returns the immutable original cost of arc (from, to), and
// whether that arc exists.
func (g *Graph) OriginalCost(from, to int) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.originalCost[EdgeKey{From: from, To: to}]
	return c, ok
}

// SortOutgoing sorts each node's adjacency list by ascending revised cost.
// Optional: may speed up or slow down search depending on the instance
// (spec.md §4.1).
func (g *Graph) SortOutgoing() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, edges := range g.adjacency {
		sort.SliceStable(edges, func(i, j int) bool {
			return g.revisedCost[edges[i].Key()] < g.revisedCost[edges[j].Key()]
		})
	}
}

// ApplyBranch models a branch-and-price decision on arc (u, v): value 0
// forbids the arc, value 1 forces it to be the only arc leaving u. Cost
// maps are left untouched; stale entries are simply never referenced
// again (spec.md §4.1). Removals are collected during the scan and
// applied afterwards, since mutating a slice mid-range is hazardous
// (spec.md §9).
func (g *Graph) ApplyBranch(u, v, value int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if u < 0 || u >= len(g.adjacency) {
		return
	}

	kept := g.adjacency[u][:0:0]
	for _, e := range g.adjacency[u] {
		switch value {
		case 0:
			if e.To == v {
				continue
			}
		default:
			if e.To != v {
				continue
			}
		}
		kept = append(kept, e)
	}
	g.adjacency[u] = kept
}

// ReviseCosts recomputes the revised cost of every known arc as
// original_cost[(from,to)] - dual[from], the column-generation convention
// of spec.md §4.1: the dual is attached to visiting node "from".
func (g *Graph) ReviseCosts(dual []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, original := range g.originalCost {
		g.revisedCost[key] = original - dual[key.From]
	}
}

// OriginalCostOfPath sums the original cost of every arc along path, used
// to report the real cost of the chosen column (spec.md §4.1).
func (g *Graph) OriginalCostOfPath(path []int) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += g.originalCost[EdgeKey{From: path[i], To: path[i+1]}]
	}
	return total
}

// Clone returns a deep copy, used by the engine so branching mutations
// never affect the caller's graph (spec.md §5, §9).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := &Graph{
		nodes:        append([]Node(nil), g.nodes...),
		adjacency:    make([][]Edge, len(g.adjacency)),
		originalCost: make(map[EdgeKey]float64, len(g.originalCost)),
		revisedCost:  make(map[EdgeKey]float64, len(g.revisedCost)),
	}
	for i, edges := range g.adjacency {
		clone.adjacency[i] = append([]Edge(nil), edges...)
	}
	for k, v := range g.originalCost {
		clone.originalCost[k] = v
	}
	for k, v := range g.revisedCost {
		clone.revisedCost[k] = v
	}
	return clone
}

// Validate checks the structural invariants spec.md §7 calls out: known
// node references, no self-loops, non-negative routing time, well-formed
// time windows. It does not fail fast — it collects every violation so a
// caller can report them all at once.
func (g *Graph) Validate() *apperror.ValidationErrors {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := apperror.NewValidationErrors()
	for _, n := range g.nodes {
		if err := n.Validate(); err != nil {
			result.Add(err)
		}
	}
	for _, edges := range g.adjacency {
		for _, e := range edges {
			if err := e.Validate(len(g.nodes)); err != nil {
				result.Add(err)
			}
		}
	}
	return result
}
