// Package query drives the retrieval path of a domain.
//
// The Coordinator reverses the positional mapping the ingestion side
// established: it embeds the question, searches the vector index for
// the nearest offsets, and resolves those offsets back to chunk rows in
// the metadata store. A vector offset with no matching chunk row is an
// integrity fault, reported as BrokenInvariantError rather than served
// as stale or fabricated content.
//
// Queries are read-only and may run concurrently with each other and
// with an in-flight ingestion, since staged vectors are invisible until
// published.
package query
