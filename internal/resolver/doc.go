// Package resolver maps MCP server launch specs to the packages and
// binaries behind them.
//
// Three strategies exist:
//
//   - [Dynamic] rewrites npx dispatches to direct binary calls by querying
//     the npm global root and reading the installed package's manifest.
//     Used by `mcpdock convert`. Failures are non-fatal; the original entry
//     is kept.
//   - [Patterns] derives a [Set] of packages from the argument conventions
//     of npx, uvx and `python -m`. Default strategy for `mcpdock generate`.
//   - [Table] derives a [Set] from a fixed command-to-package mapping of
//     well-known server binaries.
//
// Patterns and Table answer the same question with different heuristics and
// the caller picks exactly one per run; their results are never merged.
package resolver
