// Package engine implements the label-setting search for the Elementary
// Shortest Path Problem with Resource Constraints: a monotone best-first
// search over partial paths (labels) enriched with a per-label reachability
// set, pruned by dominance (Boland, Dethridge & Dumitrescu, 2006; Feillet et
// al.'s reachable-set tightening).
package engine

import (
	"container/heap"
	"log/slog"
	"time"

	"espprc/pkg/domain"
)

// Engine is the label-setting search over a single working Graph. It is a
// single-owner object per Solve: Solve runs synchronously to completion and
// must not be called concurrently on the same Engine (spec.md §5).
type Engine struct {
	graph    *domain.Graph
	capacity int
	sink     int

	arena   []label
	buckets [][]int
	fr      frontier
	seq     int
	maxPops int

	pendingBranch *BranchDecision
	metrics       MetricsSink
	logger        *slog.Logger
}

// New builds an Engine over a deep copy of graph, so branching and cost
// revisions never touch the caller's Graph (spec.md §5, §9). The optional
// WithBranch decision is applied once, here.
func New(graph *domain.Graph, capacity int, opts ...Option) *Engine {
	e := &Engine{
		graph:    graph.Clone(),
		capacity: capacity,
		metrics:  NopMetrics{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pendingBranch != nil {
		b := e.pendingBranch
		e.graph.ApplyBranch(b.From, b.To, b.Value)
	}
	e.sink = e.graph.SinkID()
	e.ensureBuckets()
	return e
}

func (e *Engine) ensureBuckets() {
	n := e.graph.NodeCount()
	if len(e.buckets) != n {
		e.buckets = make([][]int, n)
	}
}

// Reset restores internal search state — arena, buckets, frontier,
// sequence counter — but leaves the working graph (and any branch already
// applied) untouched (spec.md §6).
func (e *Engine) Reset() {
	e.ensureBuckets()
	for i := range e.buckets {
		e.buckets[i] = e.buckets[i][:0]
	}
	e.arena = e.arena[:0]
	e.fr = e.fr[:0]
	e.seq = 0
}

// Solve runs one complete label-setting search against dual, a vector of
// length N supplying the column-generation dual values, and returns the
// best elementary, resource-feasible source-to-sink path under the
// revised reduced cost, or a Path with Found == false when the sink
// bucket is empty after the frontier drains (spec.md §4.3).
func (e *Engine) Solve(dual []float64) domain.Path {
	start := time.Now()
	e.Reset()
	e.graph.ReviseCosts(dual)

	n := e.graph.NodeCount()
	if n == 0 {
		return domain.Path{Found: false}
	}

	seed := label{
		node:        0,
		reducedCost: 0,
		routingTime: 0,
		demand:      0,
		pred:        -1,
		seq:         e.nextSeq(),
	}
	seed.reach = e.computeReach(newBitsetAll(n), seed.node, seed.demand, seed.routingTime)
	handle := e.newLabelHandle(seed)
	e.buckets[0] = append(e.buckets[0], handle)
	e.metrics.LabelCreated()
	e.pushFrontier(handle, seed)

	inexact := false
	popped := 0
	for e.fr.Len() > 0 {
		if e.maxPops > 0 && popped >= e.maxPops {
			inexact = true
			break
		}
		item := heap.Pop(&e.fr).(*frontierItem)
		popped++
		cur := e.arena[item.handle]
		if cur.node == e.sink {
			continue
		}
		live := false
		for _, h := range e.buckets[cur.node] {
			if h == item.handle {
				live = true
				break
			}
		}
		if !live {
			continue
		}
		for _, edge := range e.graph.Outgoing(cur.node) {
			e.extend(item.handle, cur, edge)
		}
		e.metrics.FrontierSize(e.fr.Len())
	}

	elapsed := time.Since(start)
	e.metrics.SolveDuration(elapsed)
	result := e.extractResult(inexact)

	status := "no_path"
	if result.Found {
		status = "found"
	}
	e.logger.Info("solve completed",
		"status", status,
		"reduced_cost", result.ReducedCost,
		"path_length", len(result.Nodes),
		"popped", popped,
		"inexact", result.Inexact,
		"elapsed", elapsed,
	)
	return result
}

// extend attempts to extend label cur (at handle curHandle) along edge,
// producing a successor label and submitting it to dominance (spec.md
// §4.3 "Extension").
func (e *Engine) extend(curHandle int, cur label, edge domain.Edge) {
	if !cur.reach.test(edge.To) {
		return
	}
	head, ok := e.graph.Node(edge.To)
	if !ok {
		return
	}

	d2 := cur.demand + head.Demand
	tRaw := cur.routingTime + head.ServiceTime + edge.RoutingTime
	t2 := tRaw
	if tRaw < head.Earliest {
		t2 = head.Earliest
	}

	revised, ok := e.graph.RevisedCost(cur.node, edge.To)
	if !ok {
		return
	}
	c2 := cur.reducedCost + revised

	next := label{
		node:        edge.To,
		reducedCost: c2,
		routingTime: t2,
		demand:      d2,
		pred:        curHandle,
		seq:         e.nextSeq(),
	}
	next.reach = e.computeReach(cur.reach, next.node, next.demand, next.routingTime)

	handle := e.newLabelHandle(next)
	e.metrics.LabelCreated()
	e.dominance(handle, next)
}

// computeReach derives a successor's reachability bitset from its
// predecessor's (prev), clearing the node the successor just arrived at
// and any node it can no longer reach feasibly under its own accumulated
// resources (spec.md §3, §4.3 step 8). The same derivation serves both the
// seed label (prev = all-true, newNode = source) and ordinary extensions.
func (e *Engine) computeReach(prev bitset, newNode, newDemand, newRoutingTime int) bitset {
	next := prev.clone()
	next.clear(newNode)
	for _, edge := range e.graph.Outgoing(newNode) {
		if !next.test(edge.To) {
			continue
		}
		w, ok := e.graph.Node(edge.To)
		if !ok {
			continue
		}
		if newDemand+w.Demand > e.capacity {
			next.clear(edge.To)
			continue
		}
		arrival := newRoutingTime + w.ServiceTime + edge.RoutingTime
		if arrival > w.Latest {
			next.clear(edge.To)
		}
	}
	return next
}

// dominance runs the single-pass partition of spec.md §4.3/§9 against the
// processed-label bucket at cand's node: it simultaneously discards bucket
// members that cand strictly covers, short-circuits on an exact duplicate,
// and detects whether cand itself is dominated. A bucket member examined
// after the scan stops on a dominating match is left out of the rebuilt
// bucket — this mirrors the scan-and-stop behavior of the reference
// dominance routine exactly, not a partial optimization.
func (e *Engine) dominance(candHandle int, cand label) {
	node := cand.node
	bucket := e.buckets[node]
	isSink := node == e.sink

	survivorMayBeDominated := true
	keep := make([]int, 0, len(bucket)+1)
	dominated := false

	for _, qHandle := range bucket {
		q := e.arena[qHandle]
		if cand.dominates(q, isSink) {
			if survivorMayBeDominated && cand.equal(q, e.arena) {
				e.metrics.LabelDiscardedDuplicate()
				return
			}
			survivorMayBeDominated = false
			e.metrics.LabelDiscardedDominated()
		} else {
			keep = append(keep, qHandle)
		}
		if survivorMayBeDominated && q.dominates(cand, isSink) {
			dominated = true
			break
		}
	}

	if !dominated {
		keep = append(keep, candHandle)
		if node != e.sink {
			e.pushFrontier(candHandle, cand)
		}
	} else {
		e.metrics.LabelDiscardedDominated()
	}
	e.buckets[node] = keep
	e.metrics.BucketSize(node, len(keep))
}

func (e *Engine) newLabelHandle(l label) int {
	e.arena = append(e.arena, l)
	return len(e.arena) - 1
}

func (e *Engine) nextSeq() int {
	s := e.seq
	e.seq++
	return s
}

func (e *Engine) pushFrontier(handle int, l label) {
	heap.Push(&e.fr, &frontierItem{
		handle:      handle,
		reducedCost: l.reducedCost,
		routingTime: l.routingTime,
		demand:      l.demand,
		seq:         l.seq,
	})
}

// extractResult picks the first surviving sink label — by the sink
// dominance rule every survivor shares the minimum reduced cost, so any
// tie-break is acceptable (spec.md §4.3 "Termination and extraction").
func (e *Engine) extractResult(inexact bool) domain.Path {
	bucket := e.buckets[e.sink]
	if len(bucket) == 0 {
		return domain.Path{Found: false, Inexact: inexact}
	}
	best := e.arena[bucket[0]]
	path := visitedPath(bucket[0], e.arena)
	return domain.Path{
		Nodes:        path,
		ReducedCost:  best.reducedCost,
		OriginalCost: e.graph.OriginalCostOfPath(path),
		Found:        true,
		Inexact:      inexact,
	}
}
