package domain

import "espprc/pkg/apperror"

// Node is an immutable customer/depot descriptor. Node 0 is always the
// source (depot) and node N-1 is always the sink, by construction order in
// Graph — see Graph.Construct.
type Node struct {
	ID          int
	X, Y        int
	Demand      int
	Earliest    int // ready time
	Latest      int // due time
	ServiceTime int
}

// Validate checks the per-node invariants spec.md §3 and §7 call out:
// non-negative demand/service time and a well-formed time window.
func (n Node) Validate() *apperror.Error {
	if n.Demand < 0 {
		return apperror.NewWithField(apperror.CodeInvalidNode, "demand must be non-negative", "demand").
			WithDetails("node_id", n.ID).WithDetails("demand", n.Demand)
	}
	if n.ServiceTime < 0 {
		return apperror.NewWithField(apperror.CodeInvalidNode, "service time must be non-negative", "service_time").
			WithDetails("node_id", n.ID)
	}
	if n.Earliest > n.Latest {
		return apperror.NewWithField(apperror.CodeInvalidTimeWindow, "earliest must not exceed latest", "latest").
			WithDetails("node_id", n.ID).WithDetails("earliest", n.Earliest).WithDetails("latest", n.Latest)
	}
	return nil
}
