package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"espprc/pkg/domain"
)

// SolverCache memoizes Engine.Solve results keyed by graph state, dual
// vector, and active branch decision, so repeated column-generation
// iterations over an unchanged subproblem skip the label-setting search.
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult is the JSON-serializable form of a domain.Path.
type CachedSolveResult struct {
	Nodes        []int     `json:"nodes"`
	ReducedCost  float64   `json:"reduced_cost"`
	OriginalCost float64   `json:"original_cost"`
	Found        bool      `json:"found"`
	Inexact      bool      `json:"inexact"`
	ComputedAt   time.Time `json:"computed_at"`
}

// NewSolverCache wraps cache with solve-result-specific key construction.
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get looks up a cached solve result for the given graph, dual vector, and
// branch signature (pass "" when there is no active branch decision).
// A corrupt cache entry is treated as a miss and evicted.
func (sc *SolverCache) Get(ctx context.Context, graph *domain.Graph, dual []float64, branchSignature string) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(GraphHash(graph), DualHash(dual), branchSignature)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a solve result under the given graph/dual/branch key.
func (sc *SolverCache) Set(ctx context.Context, graph *domain.Graph, dual []float64, branchSignature string, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSolveKey(GraphHash(graph), DualHash(dual), branchSignature)
	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// SetFromPath stores the result of an engine.Solve call.
func (sc *SolverCache) SetFromPath(ctx context.Context, graph *domain.Graph, dual []float64, branchSignature string, path domain.Path, ttl time.Duration) error {
	result := &CachedSolveResult{
		Nodes:        append([]int(nil), path.Nodes...),
		ReducedCost:  path.ReducedCost,
		OriginalCost: path.OriginalCost,
		Found:        path.Found,
		Inexact:      path.Inexact,
	}
	return sc.Set(ctx, graph, dual, branchSignature, result, ttl)
}

// ToPath converts a cached result back into a domain.Path.
func (r *CachedSolveResult) ToPath() domain.Path {
	return domain.Path{
		Nodes:        r.Nodes,
		ReducedCost:  r.ReducedCost,
		OriginalCost: r.OriginalCost,
		Found:        r.Found,
		Inexact:      r.Inexact,
	}
}

// Invalidate removes every cached solve result for the given graph,
// regardless of dual vector or branch signature.
func (sc *SolverCache) Invalidate(ctx context.Context, graph *domain.Graph) error {
	pattern := fmt.Sprintf("solve:%s:*", GraphHash(graph))
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll removes every cached solve result.
func (sc *SolverCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}
