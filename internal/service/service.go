// Package service composes pure state transitions with the store's
// load/save plumbing. Anything that can receive a request and produce a
// response is a Handler; OnDocument lifts a transition on a single document
// into a Handler that loads by id, applies, and saves, inheriting the
// store's optimistic concurrency semantics without the transition knowing
// about persistence at all.
package service

import (
	"context"
	"fmt"

	"github.com/quill-works/docstore/internal/docs"
	"github.com/quill-works/docstore/internal/ids"
	"github.com/quill-works/docstore/internal/store"
)

// Handler receives a request and produces a response.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Handle implements Handler.
func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// Identified addresses a request at one document.
type Identified[E ids.Entity, Req any] struct {
	ID  ids.ID[E]
	Req Req
}

// Persistable constrains a document pointer to the store's envelope
// capability.
type Persistable[D any] interface {
	*D
	docs.HasMeta
}

// OnDocument wraps an in-memory state transition in load/save plumbing: the
// returned handler loads the addressed document, applies the transition to
// it, persists the result, and returns the transition's response.
//
// A missing document fails with store.ErrNotFound. A transition error skips
// the save entirely. A save conflict surfaces as the store's concurrency
// error; retrying means handling the request again from the load.
func OnDocument[D ids.Entity, PD Persistable[D], Req, Resp any](
	st store.Storage,
	apply func(ctx context.Context, doc PD, req Req) (Resp, error),
) Handler[Identified[D, Req], Resp] {
	return HandlerFunc[Identified[D, Req], Resp](func(ctx context.Context, ireq Identified[D, Req]) (Resp, error) {
		var zero Resp

		doc, err := store.Load[D, D](ctx, st, ireq.ID)
		if err != nil {
			return zero, err
		}
		if doc == nil {
			return zero, fmt.Errorf("%w: %s", store.ErrNotFound, ireq.ID)
		}

		resp, err := apply(ctx, PD(doc), ireq.Req)
		if err != nil {
			return zero, err
		}

		if err := st.Save(ctx, PD(doc)); err != nil {
			return zero, err
		}
		return resp, nil
	})
}
