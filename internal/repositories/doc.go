// Package repositories implements SQLite persistence for the analysis history.
//
// Key Implementations:
//   - [AnalysisRepository] : counts-only audit of completed analyses, newest first
//
// Sequence numbers provide stable, human-readable ordering (e.g., analysis #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
