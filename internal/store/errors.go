package store

import (
	"errors"
	"fmt"
)

var (
	// ErrConcurrentModification is returned when a save affects zero rows
	// because another writer advanced the stored version first. The losing
	// document must be reloaded before any retry.
	ErrConcurrentModification = errors.New("docstore: document was modified concurrently")

	// ErrDuplicateDocument is returned when a never-saved document's insert
	// finds an existing row with the same id: an identifier collision or a
	// client reusing an id. It wraps ErrConcurrentModification, so callers
	// that treat every lost write as "please retry" need only one errors.Is.
	ErrDuplicateDocument = fmt.Errorf("docstore: document already exists: %w", ErrConcurrentModification)

	// ErrNotFound is returned by operations that require an existing
	// document, such as applying a state transition by id.
	ErrNotFound = errors.New("docstore: document not found")
)
