// Package solo provides explicit single-instance (singleton) primitives for Go.
//
// This repository explores a progression of small, opinionated patterns for one
// recurring need: construct a value exactly once per process and hand out the
// same instance on every access.
//
//   - v1: Holder[T] + Group: explicit holders with introspection, coordinated
//     warm-up (InitAll) and test reset (ResetAll)
//   - v2: package-level accessors (Func/MustFunc), the classic Instance() shape
//     without exposing a holder
//   - v3: code-generated accessors (sologen): a tiny *.single.json spec plus
//     go:generate produce the accessor boilerplate
//
// The goal is to keep instance ownership explicit (usually at your composition
// root or package level), avoid reflection-based containers, and keep the
// surface area intentionally small. There is no dependency graph, no injection
// and no lifecycle phases here, only construction-at-most-once and reference
// identity.
//
// Start with the examples in the repo for end-to-end usage.
//
// See subpackages:
//   - solo: the library package used by the examples / generator output
//   - cmd/sologen: code generator for v3 style accessors
//   - examples/*: runnable examples for each version
package solo
