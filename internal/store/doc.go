// Package store provides SQLite-backed archival for batch query runs.
//
// The archive is append-only:
//   - Runs: one row per batch invocation, keyed by run ID
//   - Envelopes: one row per executed query, holding the full
//     request/response envelope as JSON
//
// Writes are idempotent: re-archiving a (run, output file) pair is a
// silent no-op, so a re-run of the same batch never duplicates rows.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
