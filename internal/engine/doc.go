// Package engine exposes the client's campaign and session controllers.
//
// A controller owns one "current" entity at a time: opening an entity sets
// the cache target, closing tears it down, and every lifecycle action
// validates locally, calls the remote API through the orchestrator, and
// folds the result into the snapshot cache. Derived values (effective role,
// access mode, eligibility) are recomputed from the snapshot on every read.
package engine
