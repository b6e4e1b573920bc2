// Package reindex provides the operator remedy for a domain whose
// metadata store and vector index have diverged.
//
// Verify compares chunk row count against index length and reports the
// mismatch. Rebuild re-embeds every chunk row in offset order into a
// fresh index and persists it atomically, restoring the positional
// correspondence after a partial ingestion. Progress is tracked and
// embedding calls are retried with exponential backoff.
package reindex
