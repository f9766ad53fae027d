// Package domain holds client-side copies of server-owned entities.
//
// The remote API server is the owning authority for every type here; the
// engine keeps disposable snapshots and never invents identifiers.
package domain
