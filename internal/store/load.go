package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quill-works/docstore/internal/docs"
	"github.com/quill-works/docstore/internal/ids"
)

// Storage is the load/save contract consumers depend on. Documents and Pool
// both implement it; domain code takes a Storage so tests can pass either.
type Storage interface {
	LoadRaw(ctx context.Context, key string) (json.RawMessage, error)
	Save(ctx context.Context, doc docs.HasMeta) error
}

// OutboxSource yields document bodies whose outbox is non-empty.
type OutboxSource interface {
	NextUnsentRaw(ctx context.Context) (json.RawMessage, error)
}

// Load fetches and decodes the document stored under id. It returns
// (nil, nil) when no such document exists.
func Load[D any, E ids.Entity](ctx context.Context, s Storage, id ids.ID[E]) (*D, error) {
	raw, err := s.LoadRaw(ctx, id.String())
	if err != nil || raw == nil {
		return nil, err
	}

	doc := new(D)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return doc, nil
}

// NextUnsent fetches and decodes some document with pending outgoing
// messages, or (nil, nil) when none is pending.
func NextUnsent[D any](ctx context.Context, s OutboxSource) (*D, error) {
	raw, err := s.NextUnsentRaw(ctx)
	if err != nil || raw == nil {
		return nil, err
	}

	doc := new(D)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode unsent document: %w", err)
	}
	return doc, nil
}
