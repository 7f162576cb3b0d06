// Package metrics provides lock-free counters and latency histograms for
// client observability.
//
// # Design
//
// Counters are stored in cache-line-padded uint64 slots and incremented
// atomically via [sync/atomic.AddUint64]. Histograms use 8 fixed buckets
// (≤5ms … +Inf). Both are allocation-free on the write path.
//
// # Architecture boundaries
//
// This package owns metric storage and snapshot creation. Which operations
// are counted — dispatch outcomes, refresh outcomes, session lifecycle — is
// decided by the aurum Client.
//
// # What this package must NOT do
//
//   - Perform I/O or network calls.
//   - Import aurum or any sibling package.
//   - Expose global metric registries.
package metrics
