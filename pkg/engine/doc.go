// Package engine computes reachability, requirement resolution, and
// actionable next steps over a game's entity and thread graph.
//
// All computation is pure with respect to a Snapshot: one read pass over
// the store produces an immutable value, and every function of a fixed
// snapshot returns identical results on every call. The engine holds no
// state between calls, so concurrent invocations need no coordination and
// callers may freely discard superseded results.
package engine
