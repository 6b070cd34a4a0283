package domain

import "espprc/pkg/apperror"

// EdgeKey is the (from, to) lookup key used by the graph's cost maps.
type EdgeKey struct {
	From, To int
}

// Edge is an immutable arc descriptor: tail, head, original cost and
// routing time. The graph's revised-cost map, not this struct, is what
// Graph.ReviseCosts rewrites between solves (spec.md §3).
type Edge struct {
	From, To    int
	Cost        float64
	RoutingTime int
}

// Key returns the lookup key for this edge's (from, to) pair.
func (e Edge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To}
}

// Validate checks the per-edge invariants spec.md §3/§7 call out: no
// self-loops, non-negative routing time.
func (e Edge) Validate(nodeCount int) *apperror.Error {
	if e.From == e.To {
		return apperror.New(apperror.CodeSelfLoop, "edge is a self-loop").
			WithDetails("node_id", e.From)
	}
	if e.From < 0 || e.From >= nodeCount || e.To < 0 || e.To >= nodeCount {
		return apperror.New(apperror.CodeDanglingEdge, "edge references unknown node").
			WithDetails("from", e.From).WithDetails("to", e.To).WithDetails("node_count", nodeCount)
	}
	if e.RoutingTime < 0 {
		return apperror.New(apperror.CodeNegativeRoutingTime, "routing time must be non-negative").
			WithDetails("from", e.From).WithDetails("to", e.To)
	}
	return nil
}
