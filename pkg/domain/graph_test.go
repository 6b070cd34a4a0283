package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espprc/pkg/apperror"
)

// threeNodeGraph builds the "three-node trivial" scenario from spec.md §8.
func threeNodeGraph(t *testing.T) *Graph {
	t.Helper()
	nodes := []Node{
		{ID: 0, Earliest: 0, Latest: 1000},
		{ID: 1, Earliest: 0, Latest: 100, ServiceTime: 5, Demand: 10},
		{ID: 2, Earliest: 0, Latest: 1000},
	}
	adjacency := [][]Edge{
		{
			{From: 0, To: 1, Cost: 10, RoutingTime: 10},
			{From: 0, To: 2, Cost: 100, RoutingTime: 10},
		},
		{
			{From: 1, To: 2, Cost: 20, RoutingTime: 10},
		},
		{},
	}
	g, err := Construct(nodes, adjacency)
	require.NoError(t, err)
	return g
}

func TestConstructShapeMismatch(t *testing.T) {
	_, err := Construct([]Node{{ID: 0}}, [][]Edge{})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeShapeMismatch, apperror.Code(err))
}

func TestConstructPopulatesCostMaps(t *testing.T) {
	g := threeNodeGraph(t)

	original, ok := g.OriginalCost(0, 1)
	require.True(t, ok)
	assert.Equal(t, 10.0, original)

	revised, ok := g.RevisedCost(0, 1)
	require.True(t, ok)
	assert.Equal(t, 10.0, revised)

	_, ok = g.OriginalCost(2, 0)
	assert.False(t, ok)
}

func TestSourceAndSinkIDs(t *testing.T) {
	g := threeNodeGraph(t)
	assert.Equal(t, 0, g.SourceID())
	assert.Equal(t, 2, g.SinkID())
	assert.Equal(t, 3, g.NodeCount())
}

func TestOutgoingReturnsCopy(t *testing.T) {
	g := threeNodeGraph(t)
	edges := g.Outgoing(0)
	require.Len(t, edges, 2)
	edges[0].Cost = 99999
	// mutating the returned slice must not affect the graph
	original, _ := g.OriginalCost(0, 1)
	assert.Equal(t, 10.0, original)
}

func TestReviseCostsZeroDualLeavesCostsUnchanged(t *testing.T) {
	g := threeNodeGraph(t)
	g.ReviseCosts([]float64{0, 0, 0})

	for _, key := range []EdgeKey{{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 2}} {
		original, _ := g.OriginalCost(key.From, key.To)
		revised, _ := g.RevisedCost(key.From, key.To)
		assert.Equal(t, original, revised)
	}
}

func TestReviseCostsSubtractsDualAtTail(t *testing.T) {
	g := threeNodeGraph(t)
	g.ReviseCosts([]float64{0, 25, 0})

	revised, ok := g.RevisedCost(0, 1)
	require.True(t, ok)
	assert.Equal(t, 10.0, revised) // dual at tail 0, not head 1

	g.ReviseCosts([]float64{0, 0, 0})
	g.ReviseCosts([]float64{10, 0, 0})
	revised, _ = g.RevisedCost(0, 1)
	assert.Equal(t, 0.0, revised)
	revised, _ = g.RevisedCost(0, 2)
	assert.Equal(t, 90.0, revised)
}

func TestApplyBranchForbidArc(t *testing.T) {
	g := threeNodeGraph(t)
	g.ApplyBranch(0, 1, 0)

	edges := g.Outgoing(0)
	require.Len(t, edges, 1)
	assert.Equal(t, 2, edges[0].To)

	// idempotent when already absent
	g.ApplyBranch(0, 1, 0)
	assert.Len(t, g.Outgoing(0), 1)
}

func TestApplyBranchForceArc(t *testing.T) {
	g := threeNodeGraph(t)
	g.ApplyBranch(0, 2, 1)

	edges := g.Outgoing(0)
	require.Len(t, edges, 1)
	assert.Equal(t, 2, edges[0].To)
}

func TestOriginalCostOfPath(t *testing.T) {
	g := threeNodeGraph(t)
	assert.Equal(t, 30.0, g.OriginalCostOfPath([]int{0, 1, 2}))
	assert.Equal(t, 100.0, g.OriginalCostOfPath([]int{0, 2}))
	assert.Equal(t, 0.0, g.OriginalCostOfPath([]int{0}))
}

func TestCloneIsIndependent(t *testing.T) {
	g := threeNodeGraph(t)
	clone := g.Clone()

	clone.ApplyBranch(0, 1, 0)
	assert.Len(t, clone.Outgoing(0), 1)
	assert.Len(t, g.Outgoing(0), 2)

	clone.ReviseCosts([]float64{0, 1000, 0})
	originalRevised, _ := g.RevisedCost(0, 2)
	assert.Equal(t, 100.0, originalRevised)
}

func TestSortOutgoingOrdersByRevisedCost(t *testing.T) {
	g := threeNodeGraph(t)
	g.SortOutgoing()
	edges := g.Outgoing(0)
	require.Len(t, edges, 2)
	assert.Equal(t, 1, edges[0].To) // cost 10 < cost 100
	assert.Equal(t, 2, edges[1].To)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	nodes := []Node{
		{ID: 0, Earliest: 10, Latest: 1},
		{ID: 1, Demand: -1},
	}
	adjacency := [][]Edge{
		{{From: 0, To: 0}},
		{{From: 1, To: 5}},
	}
	g, err := Construct(nodes, adjacency)
	require.NoError(t, err)

	result := g.Validate()
	assert.True(t, result.HasErrors())
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestValidateOnCleanGraph(t *testing.T) {
	g := threeNodeGraph(t)
	result := g.Validate()
	assert.False(t, result.HasErrors())
}
