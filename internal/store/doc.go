// Package store provides SQLite-backed persistence for a rent round.
//
// The store holds two tables:
//   - submissions: named valuation vectors in insertion order
//   - splits: every computed split, keyed by its content fingerprint
//
// Submissions are keyed by nothing but insertion order (seq). Names are
// unique under Unicode case folding, so "Alice" and "ALICE" collide.
// Resetting a round clears submissions and keeps split history.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// All queries order by seq so results are deterministic.
package store
