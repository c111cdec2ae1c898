// Package v8lens is a library and CLI for analyzing V8 heap snapshots:
// dominator trees, retained sizes, duplicate detection, hidden-class
// bucketing, and retention-path queries over snapshots with millions of
// nodes.
package v8lens

// Version is the current release version of the v8lens module.
const Version = "0.1.0-dev"

// ProgressFunc is the injected progress-reporting hook long passes
// (dominator computation, retained-size folding) accept: a plain
// function rather than a channel, called synchronously from the same
// goroutine doing the work (spec.md §5: the core has no suspension
// points and no internal concurrency of its own). phase names the
// pass boundary ("dominators_dfs", "dominators_done", "chk_relax",
// "chk_done", "retained_size_preorder", "retained_size_done"); done/total
// are in whatever unit that phase counts in (nodes visited, typically).
// A nil ProgressFunc is always a valid no-op choice for callers that
// don't want progress reporting.
type ProgressFunc func(phase string, done, total int)

