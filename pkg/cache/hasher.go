package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"espprc/pkg/domain"
)

// GraphHash computes a deterministic hash of a graph's structure and
// revised costs, for use as a solve-result cache key component.
func GraphHash(graph *domain.Graph) string {
	if graph == nil {
		return ""
	}

	data := graphToCanonical(graph)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// graphToCanonical builds a deterministic byte representation of graph:
// every node in id order, then every edge in (from, to) order, carrying
// its revised cost so two graphs that differ only by a ReviseCosts call
// hash differently.
func graphToCanonical(graph *domain.Graph) []byte {
	n := graph.NodeCount()

	type edgeData struct {
		from, to    int
		cost        float64
		routingTime int
	}
	var edges []edgeData
	for id := 0; id < n; id++ {
		for _, e := range graph.Outgoing(id) {
			cost, _ := graph.RevisedCost(e.From, e.To)
			edges = append(edges, edgeData{e.From, e.To, cost, e.RoutingTime})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	var result []byte
	result = append(result, []byte(fmt.Sprintf("s:%d,t:%d,n:%d;", graph.SourceID(), graph.SinkID(), n))...)

	for id := 0; id < n; id++ {
		node, _ := graph.Node(id)
		result = append(result, []byte(fmt.Sprintf("v:%d:%d:%d:%d:%d:%d;",
			node.ID, node.Demand, node.Earliest, node.Latest, node.ServiceTime, node.X))...)
	}

	for _, e := range edges {
		result = append(result, []byte(fmt.Sprintf("e:%d:%d:%.6f:%d;",
			e.from, e.to, e.cost, e.routingTime))...)
	}

	return result
}

// DualHash computes a deterministic hash of a dual-value vector, so two
// column-generation iterations that revise costs identically share a
// cache entry.
func DualHash(dual []float64) string {
	var result []byte
	for i, v := range dual {
		result = append(result, []byte(fmt.Sprintf("%d:%.6f;", i, v))...)
	}
	return QuickHash(result)
}

// BuildSolveKey builds the cache key for a solve result, identified by the
// graph's structural hash, the dual vector's hash, and any active branch
// decision's signature (empty when there is none).
func BuildSolveKey(graphHash, dualHash, branchSignature string) string {
	if branchSignature == "" {
		return fmt.Sprintf("solve:%s:%s", graphHash, dualHash)
	}
	return fmt.Sprintf("solve:%s:%s:%s", graphHash, dualHash, branchSignature)
}

// BranchSignature builds a deterministic signature for a branch decision,
// for inclusion in a solve cache key.
func BranchSignature(from, to, value int) string {
	return fmt.Sprintf("b:%d:%d:%d", from, to, value)
}

// QuickHash is a full-length SHA-256 hex digest of arbitrary data.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash is a 16-character SHA-256 prefix of arbitrary data.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
