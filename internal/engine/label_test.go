package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reachAll(n int) bitset { return newBitsetAll(n) }

func TestLabelDominatesOffSink(t *testing.T) {
	r := reachAll(5)
	a := label{node: 1, reducedCost: 5, routingTime: 5, demand: 5, reach: r}
	b := label{node: 1, reducedCost: 6, routingTime: 6, demand: 5, reach: r}
	assert.True(t, a.dominates(b, false))
	assert.False(t, b.dominates(a, false))
}

func TestLabelDominatesRequiresReachSuperset(t *testing.T) {
	full := reachAll(5)
	partial := full.clone()
	partial.clear(3)

	a := label{node: 1, reducedCost: 1, routingTime: 1, demand: 1, reach: partial}
	b := label{node: 1, reducedCost: 1, routingTime: 1, demand: 1, reach: full}
	// a has fewer reachable nodes than b, so a cannot dominate b
	assert.False(t, a.dominates(b, false))
	// b has every node a has (and more), so b dominates a
	assert.True(t, b.dominates(a, false))
}

func TestLabelDominatesAtSinkIgnoresResources(t *testing.T) {
	a := label{node: 9, reducedCost: -1, routingTime: 1000, demand: 1000}
	b := label{node: 9, reducedCost: 0, routingTime: 0, demand: 0}
	assert.True(t, a.dominates(b, true))
	assert.False(t, b.dominates(a, true))
}

func TestLabelEqual(t *testing.T) {
	arena := []label{
		{node: 0, pred: -1},          // 0: seed
		{node: 1, pred: 0},           // 1
		{node: 2, demand: 5, routingTime: 5, pred: 1}, // 2
		{node: 2, demand: 5, routingTime: 5, pred: 1}, // 3: identical chain
		{node: 2, demand: 6, routingTime: 5, pred: 1}, // 4: different demand
	}
	assert.True(t, arena[2].equal(arena[3], arena))
	assert.False(t, arena[2].equal(arena[4], arena))
}

func TestLabelEqualDivergingChain(t *testing.T) {
	arena := []label{
		{node: 0, pred: -1},
		{node: 1, pred: 0},
		{node: 5, pred: 0},
		{node: 2, demand: 1, routingTime: 1, pred: 1},
		{node: 2, demand: 1, routingTime: 1, pred: 2},
	}
	assert.False(t, arena[3].equal(arena[4], arena))
}

func TestLabelLess(t *testing.T) {
	a := label{reducedCost: 1, routingTime: 5, demand: 5, seq: 0}
	b := label{reducedCost: 2, routingTime: 0, demand: 0, seq: 1}
	assert.True(t, a.less(b))

	c := label{reducedCost: 1, routingTime: 3, demand: 5, seq: 2}
	assert.True(t, c.less(a))

	d := label{reducedCost: 1, routingTime: 5, demand: 5, seq: 9}
	e := label{reducedCost: 1, routingTime: 5, demand: 5, seq: 10}
	assert.True(t, d.less(e))
}

func TestVisitedPath(t *testing.T) {
	arena := []label{
		{node: 0, pred: -1},
		{node: 1, pred: 0},
		{node: 2, pred: 1},
	}
	assert.Equal(t, []int{0, 1, 2}, visitedPath(2, arena))
	assert.Equal(t, []int{0}, visitedPath(0, arena))
}
