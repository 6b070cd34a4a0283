// Package main is the entry point for espprc-cli.
//
// espprc-cli loads a Solomon-style benchmark instance, builds a Graph, and
// drives the label-setting engine over one or more dual vectors, printing
// the resulting path (or "no improving path") for each.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: ESPPRC_)
//  2. Config file (config.yaml in standard locations, or $CONFIG_PATH)
//  3. Defaults from pkg/config/loader.go
//
// # Usage
//
//	espprc-cli -instance solomon.json -nodes 25 -capacity 200
//	espprc-cli -instance solomon.json -nodes 25 -capacity 200 -random-duals 5 -seed 7
//	espprc-cli -instance solomon.json -nodes 25 -capacity 200 -branch 0:3:0
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"espprc/internal/bench"
	"espprc/internal/engine"
	"espprc/pkg/apperror"
	"espprc/pkg/cache"
	"espprc/pkg/config"
	"espprc/pkg/domain"
	"espprc/pkg/logger"
	"espprc/pkg/metrics"
)

func main() {
	flags := parseFlags()

	// =========================================================================
	// Configuration Loading
	// =========================================================================
	var loaderOpts []config.LoaderOption
	if flags.configPath != "" {
		loaderOpts = append(loaderOpts, config.WithConfigPaths(flags.configPath))
	}
	cfg, err := config.NewLoader(loaderOpts...).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if flags.capacity > 0 {
		cfg.Solver.Capacity = flags.capacity
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	// =========================================================================
	// Logger Initialization
	// =========================================================================
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	runID := uuid.New().String()
	logger.Log = logger.Log.With("run_id", runID)

	// =========================================================================
	// Metrics Initialization (Prometheus)
	// =========================================================================
	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.App.Name)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	if flags.metricsAddr != "" {
		cfg.Metrics.Addr = flags.metricsAddr
	}
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Addr); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
		logger.Info("metrics server listening", "addr", cfg.Metrics.Addr)
	}

	// =========================================================================
	// Cache Initialization
	// =========================================================================
	var solverCache *cache.SolverCache
	cacheDriver := flags.cacheDriver
	if cacheDriver == "" {
		cacheDriver = cfg.Cache.Driver
	}
	if cacheDriver != "none" && (cfg.Cache.Enabled || flags.cacheDriver != "") {
		cacheCfg := cfg.Cache
		cacheCfg.Driver = cacheDriver
		opts := cache.FromConfig(&cacheCfg)
		baseCache, err := cache.New(opts)
		if err != nil {
			logger.Warn("failed to create cache, continuing without cache", "error", err)
		} else {
			solverCache = cache.NewSolverCache(baseCache, cfg.Cache.DefaultTTL)
			logger.Info("solve cache initialized", "driver", cacheDriver, "ttl", cfg.Cache.DefaultTTL)
		}
	}

	// =========================================================================
	// Instance Loading
	// =========================================================================
	graph, err := loadGraph(flags)
	if err != nil {
		logger.Fatal("failed to load instance", "error", err)
	}
	if cfg.Solver.SortArcs {
		graph.SortOutgoing()
	}

	stats := domain.CalculateStatistics(graph)
	m.RecordGraphSize("load", stats.NodeCount, stats.EdgeCount)
	graphTag := cache.ShortHash([]byte(cache.GraphHash(graph)))
	logger.Info("instance loaded",
		"graph_id", graphTag, "nodes", stats.NodeCount, "edges", stats.EdgeCount,
		"avg_out_degree", stats.AverageDegree, "sink_reachable", stats.SinkReachable)
	if !stats.SinkReachable {
		logger.Warn("sink is not reachable from source; every solve will report no path")
	}

	if solverCache != nil && flags.invalidateCache {
		n, err := solverCache.InvalidateAll(context.Background())
		if err != nil {
			logger.Warn("failed to invalidate cache", "error", err)
		} else {
			logger.Info("cache invalidated", "entries_removed", n)
		}
	} else if solverCache != nil && flags.invalidateGraph {
		if err := solverCache.Invalidate(context.Background(), graph); err != nil {
			logger.Warn("failed to invalidate cached entries for this graph", "error", err)
		} else {
			logger.Info("cached entries for this graph invalidated", "graph_id", graphTag)
		}
	}

	// =========================================================================
	// Engine Options
	// =========================================================================
	// Each dual vector below gets its own Engine over its own Graph clone
	// (engine.New clones graph internally), so independent solves can run
	// concurrently — spec.md §5 explicitly allows this as long as no single
	// Engine's Solve is called from more than one goroutine.
	opts := []engine.Option{
		engine.WithMetrics(m),
		engine.WithLogger(logger.Log),
	}
	if cfg.Solver.MaxPops > 0 {
		opts = append(opts, engine.WithBudget(cfg.Solver.MaxPops))
	}
	if flags.branchFrom >= 0 {
		opts = append(opts, engine.WithBranch(engine.BranchDecision{
			From: flags.branchFrom, To: flags.branchTo, Value: flags.branchValue,
		}))
	}

	// =========================================================================
	// Dual Vectors
	// =========================================================================
	duals, err := loadDuals(flags, graph.NodeCount())
	if err != nil {
		logger.Fatal("failed to build dual vectors", "error", err)
	}

	branchSig := ""
	if flags.branchFrom >= 0 {
		branchSig = cache.BranchSignature(flags.branchFrom, flags.branchTo, flags.branchValue)
	}

	concurrency := flags.concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	tracker := m.NewSolveTracker()
	results := make([]solveOutcome, len(duals))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for i, dual := range duals {
		i, dual := i, dual
		g.Go(func() error {
			label := fmt.Sprintf("dual-%d", i)
			tracker.Start(label)
			defer tracker.End(label)

			timer := m.NewRequestTimer("cli_total")
			path, fromCache := solveOne(ctx, graph, cfg.Solver.Capacity, opts, solverCache, dual, branchSig)
			timer.ObserveDuration()

			status := "no_path"
			if path.Found {
				status = "found"
			}
			m.RecordSolveOutcome(status, path.ReducedCost)
			results[i] = solveOutcome{path: path, fromCache: fromCache}
			return nil
		})
	}
	_ = g.Wait() // solveOne never returns an error; every slot is populated

	for i, r := range results {
		printResult(i, r.path, r.fromCache)
	}
}

type solveOutcome struct {
	path      domain.Path
	fromCache bool
}

// solveOne runs a single Solve against its own cloned Graph and Engine, so
// it is safe to call concurrently for different dual vectors over the same
// shared graph (spec.md §5).
func solveOne(ctx context.Context, graph *domain.Graph, capacity int, opts []engine.Option, solverCache *cache.SolverCache, dual []float64, branchSig string) (domain.Path, bool) {
	local := graph.Clone()
	local.ReviseCosts(dual)

	if solverCache != nil {
		if cached, found, err := solverCache.Get(ctx, local, dual, branchSig); err == nil && found {
			return cached.ToPath(), true
		}
	}

	eng := engine.New(graph, capacity, opts...)
	path := eng.Solve(dual)

	if solverCache != nil {
		if err := solverCache.SetFromPath(ctx, local, dual, branchSig, path, 0); err != nil {
			logger.Warn("failed to cache solve result", "error", err)
		}
	}
	return path, false
}

func printResult(i int, path domain.Path, fromCache bool) {
	if !path.Found {
		fmt.Printf("solve %d: no improving path\n", i)
		return
	}
	note := ""
	if fromCache {
		note = " (cached)"
	}
	if path.Inexact {
		note += " (inexact: budget exceeded)"
	}
	fmt.Printf("solve %d: reduced_cost=%.4f original_cost=%.4f path=%v%s\n",
		i, path.ReducedCost, path.OriginalCost, path.Nodes, note)
}

func loadGraph(flags cliFlags) (*domain.Graph, error) {
	data, err := os.ReadFile(flags.instance)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInstanceParse, "failed to read instance file")
	}

	if ids, err := bench.SortedCustomerIDs(data); err == nil && len(ids) < flags.nodes {
		logger.Warn("instance file carries fewer customers than requested",
			"available", len(ids), "requested", flags.nodes)
	}

	var rng *rand.Rand
	if flags.seed != 0 {
		rng = rand.New(rand.NewSource(flags.seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	inst, err := bench.Load(data, flags.nodes, rng)
	if err != nil {
		return nil, err
	}
	return inst.Graph()
}

func loadDuals(flags cliFlags, nodeCount int) ([][]float64, error) {
	if flags.dualsFile != "" {
		data, err := os.ReadFile(flags.dualsFile)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidDuals, "failed to read duals file")
		}
		var duals [][]float64
		if err := json.Unmarshal(data, &duals); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidDuals, "failed to parse duals file")
		}
		return duals, nil
	}

	count := flags.randomDuals
	if count <= 0 {
		count = 1
	}
	rng := rand.New(rand.NewSource(flags.seed))
	duals := make([][]float64, count)
	for i := range duals {
		if flags.seed == 0 {
			duals[i] = bench.RandomDuals(nodeCount, rand.New(rand.NewSource(time.Now().UnixNano())))
			continue
		}
		duals[i] = bench.RandomDuals(nodeCount, rng)
	}
	return duals, nil
}

type cliFlags struct {
	instance        string
	nodes           int
	capacity        int
	branchFrom      int
	branchTo        int
	branchValue     int
	dualsFile       string
	randomDuals     int
	seed            int64
	configPath      string
	logLevel        string
	metricsAddr     string
	cacheDriver     string
	concurrency     int
	invalidateCache bool
	invalidateGraph bool
}

func parseFlags() cliFlags {
	var f cliFlags
	var branch string

	flag.StringVar(&f.instance, "instance", "", "path to a Solomon-style benchmark instance JSON file")
	flag.IntVar(&f.nodes, "nodes", 0, "number of nodes to load from the instance (node 0 = source, last = sink)")
	flag.IntVar(&f.capacity, "capacity", 0, "vehicle capacity resource limit (overrides config when > 0)")
	flag.StringVar(&branch, "branch", "", "branch-and-price decision \"from:to:value\" applied once before solving")
	flag.StringVar(&f.dualsFile, "duals", "", "path to a JSON array of dual vectors, one solve per vector")
	flag.IntVar(&f.randomDuals, "random-duals", 0, "number of synthetic random dual vectors to solve against")
	flag.Int64Var(&f.seed, "seed", 0, "random seed for instance arc costs and synthetic duals (0 = time-based)")
	flag.StringVar(&f.configPath, "config", "", "path to a config.yaml file")
	flag.StringVar(&f.logLevel, "log-level", "", "debug, info, warn, or error (overrides config)")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "address to serve /metrics on, e.g. :9090 (overrides config)")
	flag.StringVar(&f.cacheDriver, "cache", "", "memory, redis, or none (overrides config)")
	flag.IntVar(&f.concurrency, "concurrency", 4, "max number of dual vectors solved concurrently")
	flag.BoolVar(&f.invalidateCache, "invalidate-cache", false, "clear every cached solve result before solving")
	flag.BoolVar(&f.invalidateGraph, "invalidate-graph-cache", false, "clear cached solve results for this instance's graph before solving")
	flag.Parse()

	if f.instance == "" || f.nodes == 0 {
		fmt.Fprintln(os.Stderr, "usage: espprc-cli -instance <path> -nodes <N> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if branch != "" {
		from, to, value, err := parseBranch(branch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -branch: %v\n", err)
			os.Exit(2)
		}
		f.branchFrom, f.branchTo, f.branchValue = from, to, value
	} else {
		f.branchFrom = -1
	}

	return f
}

func parseBranch(s string) (from, to, value int, err error) {
	n, err := fmt.Sscanf(s, "%d:%d:%d", &from, &to, &value)
	if err != nil || n != 3 {
		return 0, 0, 0, errors.New("expected format from:to:value")
	}
	return from, to, value, nil
}
