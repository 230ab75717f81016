package docs

import (
	"github.com/quill-works/docstore/internal/ids"
)

// Version counts successful saves of a document. The zero value means the
// document has never been saved; every successful save increments it by one.
type Version uint64

// IsNew reports whether the version marks a never-saved document.
func (v Version) IsNew() bool {
	return v == 0
}

// DocMeta is the identity and version envelope embedded in every persisted
// document. Embedding it flattens "_id" and "_version" into the document's
// JSON object, where the store's write predicates read them back.
type DocMeta[E ids.Entity] struct {
	ID      ids.ID[E] `json:"_id"`
	Version Version   `json:"_version"`
}

// NewMeta returns the envelope for a fresh, never-saved document.
func NewMeta[E ids.Entity](id ids.ID[E]) DocMeta[E] {
	return DocMeta[E]{ID: id}
}

// CurrentVersion returns the document's in-memory version.
func (m *DocMeta[E]) CurrentVersion() Version {
	return m.Version
}

// IncrementVersion bumps the in-memory version by one.
func (m *DocMeta[E]) IncrementVersion() {
	m.Version++
}

// HasMeta is satisfied by a pointer to any document embedding DocMeta. The
// store engine uses it to read and bump the version while serializing the
// whole document as one blob.
type HasMeta interface {
	CurrentVersion() Version
	IncrementVersion()
}
