// Package store provides SQLite-backed durable storage for whole JSON
// documents, addressed by their typed identifier and guarded by optimistic
// concurrency control.
//
// Each document is one row: the id string and the serialized body. The body
// carries the "_id" and "_version" envelope, and both write predicates read
// those fields out of the blob being written rather than trusting separate
// parameters:
//
//   - a first save (version 0) inserts only if no row with that id exists
//   - a later save updates only if the stored "_version" still equals the
//     version the document had before this save bumped it
//
// Either way, zero affected rows means another writer won; the transaction
// rolls back and the save fails with ErrConcurrentModification (or
// ErrDuplicateDocument on a fresh insert). The caller's in-memory document
// keeps its bumped version, so after a conflict it must be reloaded or
// discarded, never re-saved as is. The store never retries; a retry is a new
// load-apply-save round in the calling layer.
//
// The engine (Documents) runs over a single connection. Pool provides the
// same contract over a shared *sql.DB, checking one connection out per call.
package store
