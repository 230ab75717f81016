// Package polls is the store's canonical consumer: a small voting domain
// whose state lives entirely in versioned documents. It contains no storage
// logic of its own; everything flows through the store.Storage contract and
// the service composition layer.
package polls

import (
	"context"

	"github.com/quill-works/docstore/internal/docs"
	"github.com/quill-works/docstore/internal/ids"
	"github.com/quill-works/docstore/internal/service"
	"github.com/quill-works/docstore/internal/store"
)

// Poll is one poll document. Its tallies and its pending outgoing messages
// are saved atomically with the rest of the body.
type Poll struct {
	docs.DocMeta[Poll]
	docs.MailBox[VoteRecorded]
	Name    string            `json:"name"`
	Tallies map[string]uint64 `json:"tallies,omitempty"`
}

// IDPrefix implements ids.Entity.
func (Poll) IDPrefix() string { return "poll" }

// VoteRecorded is emitted through the poll's outbox once per distinct
// (poll, subject) vote transition, for delivery by an external dispatcher.
type VoteRecorded struct {
	Poll    ids.ID[Poll] `json:"poll"`
	Subject string       `json:"subject"`
	Total   uint64       `json:"total"`
}

// CreatePoll requests a new poll.
type CreatePoll struct {
	Name string
}

// CastVote records one vote for a subject within a poll.
type CastVote struct {
	Subject string
}

// VoteReceipt reports the tally after a vote.
type VoteReceipt struct {
	Poll    ids.ID[Poll]
	Subject string
	Total   uint64
}

// Polls serves poll commands over any Storage.
type Polls struct {
	store store.Storage
	gen   *ids.Generator
	vote  service.Handler[service.Identified[Poll, CastVote], VoteReceipt]
}

// New creates the polls service.
func New(gen *ids.Generator, st store.Storage) *Polls {
	p := &Polls{store: st, gen: gen}
	p.vote = service.OnDocument[Poll, *Poll](st, p.applyVote)
	return p
}

// CreatePoll generates an id, persists a fresh poll, and returns its id.
func (p *Polls) CreatePoll(ctx context.Context, req CreatePoll) (ids.ID[Poll], error) {
	doc := &Poll{
		DocMeta: docs.NewMeta(ids.Generate[Poll](p.gen)),
		Name:    req.Name,
	}
	if err := p.store.Save(ctx, doc); err != nil {
		return ids.ID[Poll]{}, err
	}
	return doc.ID, nil
}

// CastVote applies a vote to the identified poll. A concurrency error from
// the underlying save means the vote was not recorded; the caller should
// retry the whole command.
func (p *Polls) CastVote(ctx context.Context, id ids.ID[Poll], req CastVote) (VoteReceipt, error) {
	return p.vote.Handle(ctx, service.Identified[Poll, CastVote]{ID: id, Req: req})
}

func (p *Polls) applyVote(_ context.Context, doc *Poll, req CastVote) (VoteReceipt, error) {
	if doc.Tallies == nil {
		doc.Tallies = make(map[string]uint64)
	}
	doc.Tallies[req.Subject]++
	total := doc.Tallies[req.Subject]

	doc.Send(VoteRecorded{Poll: doc.ID, Subject: req.Subject, Total: total})

	return VoteReceipt{Poll: doc.ID, Subject: req.Subject, Total: total}, nil
}
