// Package ids provides collision-resistant, sortable, entity-typed
// identifiers.
//
// An identifier is 128 bits: a nanosecond wall-clock stamp followed by a
// random word, so natural ordering is chronological with a random tie-break.
// The text form is a fixed-width 26-character base32 string whose alphabet
// preserves byte order under lexicographic comparison; typed identifiers add
// an entity prefix separated by a dot.
//
// Typed identifiers carry their entity as a type parameter only. Two ids with
// the same underlying value but different entity tags are distinct types, so
// cross-entity mixups fail at compile time rather than in the store.
package ids
