package ids

import (
	"errors"
	"fmt"
	"strings"
)

// divider separates the entity prefix from the id body in the typed text
// form. It may not appear inside a prefix.
const divider = "."

var (
	// ErrInvalidPrefix is returned when a typed id string is too short or
	// does not start with the entity's prefix.
	ErrInvalidPrefix = errors.New("ids: invalid prefix")

	// ErrUnparseable is returned when the divider is missing or the id body
	// is not a well-formed 26-character encoding.
	ErrUnparseable = errors.New("ids: unparseable id")
)

// Entity is implemented by any type addressable in the store. The prefix
// must be non-empty, must not contain the divider, and must be unique among
// all entities sharing a store; uniqueness is by convention, not enforced.
type Entity interface {
	IDPrefix() string
}

// ID is an UntypedID tagged with an entity. The tag has no runtime
// representation; it only selects the prefix used in the text form and keeps
// ids of different entities from being interchangeable.
type ID[E Entity] struct {
	inner UntypedID
}

// Generate returns a fresh id for the given entity.
func Generate[E Entity](g *Generator) ID[E] {
	return ID[E]{inner: g.Untyped()}
}

// HashedID is Hashed with an entity tag applied.
func HashedID[E Entity](v any) ID[E] {
	return ID[E]{inner: Hashed(v)}
}

// Typed tags an untyped id with an entity.
func Typed[E Entity](src UntypedID) ID[E] {
	return ID[E]{inner: src}
}

// Untyped strips the entity tag.
func (id ID[E]) Untyped() UntypedID {
	return id.inner
}

// Compare orders ids like their untyped values.
func (id ID[E]) Compare(other ID[E]) int {
	return id.inner.Compare(other.inner)
}

// String returns "<prefix>.<body>".
func (id ID[E]) String() string {
	var e E
	return e.IDPrefix() + divider + id.inner.String()
}

// ParseID parses the typed text form "<prefix>.<body>".
func ParseID[E Entity](src string) (ID[E], error) {
	var e E
	prefix := e.IDPrefix()

	if len(src) < len(prefix)+len(divider) {
		return ID[E]{}, fmt.Errorf("%w: %q", ErrInvalidPrefix, src)
	}
	if !strings.HasPrefix(src, prefix) {
		return ID[E]{}, fmt.Errorf("%w: %q", ErrInvalidPrefix, src)
	}
	rest := src[len(prefix):]
	if rest[:len(divider)] != divider {
		return ID[E]{}, fmt.Errorf("%w: %q", ErrUnparseable, src)
	}

	inner, err := decodeBody(rest[len(divider):])
	if err != nil {
		return ID[E]{}, err
	}
	return ID[E]{inner: inner}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID[E]) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID[E]) UnmarshalText(text []byte) error {
	parsed, err := ParseID[E](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
