// Package bench loads Solomon-style benchmark instances and synthesizes
// the dual vectors used to drive repeated Engine.Solve calls, the
// "benchmark adapter" described in spec.md §6.
package bench

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"espprc/pkg/apperror"
	"espprc/pkg/domain"
)

// customerRecord is one entry of the instance file's "all_customers" map.
type customerRecord struct {
	X           int `json:"x_coord"`
	Y           int `json:"y_coord"`
	Demand      int `json:"demand"`
	ReadyTime   int `json:"ready_time"`
	DueTime     int `json:"due_time"`
	ServiceTime int `json:"service_time"`
}

// instanceFile is the on-disk shape of a benchmark instance document.
type instanceFile struct {
	AllCustomers map[string]customerRecord `json:"all_customers"`
}

// Instance is a parsed benchmark instance, ready to become a domain.Graph.
type Instance struct {
	Nodes     []domain.Node
	Adjacency [][]domain.Edge
}

// Graph builds a domain.Graph from the parsed instance.
func (inst *Instance) Graph() (*domain.Graph, error) {
	return domain.Construct(inst.Nodes, inst.Adjacency)
}

// arcCostFactorMin and arcCostFactorMax bound the random per-arc cost
// multiplier applied to the floored Euclidean distance between two nodes,
// matching src/test/LabelSettingTest.py's randint(1, 5).
const (
	arcCostFactorMin = 1
	arcCostFactorMax = 5

	// routingTimeFactor is the fixed multiplier applied to the floored
	// Euclidean distance to get an arc's routing time, matching
	// src/test/LabelSettingTest.py's `15 * euclidean_distance`.
	routingTimeFactor = 15
)

// Load parses a Solomon-style instance document and builds the first
// nodeCount customers (by ascending numeric key) into an Instance, with
// arcs derived the way src/test/LabelSettingTest.py derives them: cost is
// the floored Euclidean distance times a random factor in
// [arcCostFactorMin, arcCostFactorMax], routing time is the same distance
// times the fixed routingTimeFactor. rng supplies the per-arc cost factor;
// pass a seeded *rand.Rand for reproducible instances. Node 0 is the
// source, node nodeCount-1 is the sink and gets no outgoing arcs.
func Load(data []byte, nodeCount int, rng *rand.Rand) (*Instance, error) {
	if nodeCount < 2 {
		return nil, apperror.New(apperror.CodeInstanceParse, "nodeCount must be at least 2").
			WithDetails("node_count", nodeCount)
	}

	var file instanceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInstanceParse, "failed to parse instance document")
	}

	nodes := make([]domain.Node, nodeCount)
	for i := 0; i < nodeCount; i++ {
		rec, ok := file.AllCustomers[strconv.Itoa(i)]
		if !ok {
			return nil, apperror.New(apperror.CodeInstanceParse, "instance is missing a required customer record").
				WithDetails("index", i)
		}
		nodes[i] = domain.Node{
			ID:          i,
			X:           rec.X,
			Y:           rec.Y,
			Demand:      rec.Demand,
			Earliest:    rec.ReadyTime,
			Latest:      rec.DueTime,
			ServiceTime: rec.ServiceTime,
		}
	}

	adjacency := make([][]domain.Edge, nodeCount)
	for i := 0; i < nodeCount-1; i++ {
		var edges []domain.Edge
		for j := 1; j < nodeCount; j++ {
			if i == j {
				continue
			}
			dist := euclideanDistance(nodes[i], nodes[j])
			factor := arcCostFactorMin + rng.Intn(arcCostFactorMax-arcCostFactorMin+1)
			edges = append(edges, domain.Edge{
				From:        i,
				To:          j,
				Cost:        float64(factor * dist),
				RoutingTime: routingTimeFactor * dist,
			})
		}
		adjacency[i] = edges
	}
	adjacency[nodeCount-1] = nil

	return &Instance{Nodes: nodes, Adjacency: adjacency}, nil
}

// euclideanDistance returns the straight-line distance between two nodes'
// coordinates, floored to an int (src/test/LabelSettingTest.py's
// `_cal_euclidean_distance`, which truncates via int(math.sqrt(...))).
func euclideanDistance(a, b domain.Node) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// SortedCustomerIDs returns the numeric customer keys present in an
// instance document, ascending. Mostly useful for diagnostics: reporting
// how many customers an instance file actually carries versus the
// nodeCount a caller asked Load to slice out of it.
func SortedCustomerIDs(data []byte) ([]int, error) {
	var file instanceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInstanceParse, "failed to parse instance document")
	}
	ids := make([]int, 0, len(file.AllCustomers))
	for k := range file.AllCustomers {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, apperror.New(apperror.CodeInstanceParse, fmt.Sprintf("non-numeric customer key %q", k))
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
