package engine

import "log/slog"

// BranchDecision models a single branch-and-price arc decision applied once
// at engine construction (spec.md §6): Value 0 forbids arc (From, To);
// Value 1 forces it as the only arc leaving From.
type BranchDecision struct {
	From, To, Value int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBranch applies a branching decision to the engine's working graph
// copy once, before the first Solve.
func WithBranch(d BranchDecision) Option {
	return func(e *Engine) {
		e.pendingBranch = &d
	}
}

// WithMetrics wires a MetricsSink to receive inner-loop instrumentation.
func WithMetrics(m MetricsSink) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the structured logger used for solve-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBudget caps the number of labels popped from the frontier per Solve.
// When the cap is reached before the frontier drains, Solve returns the
// best-so-far sink label (if any) with Path.Inexact set (spec.md §5, §7).
// A value of 0 (the default) means unlimited.
func WithBudget(maxPops int) Option {
	return func(e *Engine) {
		e.maxPops = maxPops
	}
}
