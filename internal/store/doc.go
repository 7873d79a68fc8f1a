// Package store provides SQLite-backed durable storage for recorded text
// series, and exposes it as a source.Source.
//
// The store is an append-only event log:
//   - Events: one row per recorded tensor (run, tag, step, payload)
//   - Plugin assets: legacy sidecar files ingested alongside their run
//
// Ordering is deterministic: every read path uses ORDER BY step ASC,
// seq ASC, where seq is the monotonically assigned rowid. Wall times are
// stored but never used for ordering.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
