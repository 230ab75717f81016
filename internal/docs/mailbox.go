package docs

// MailBox holds a document's not-yet-delivered outgoing messages. It rides
// inside the owning document's body under "_outgoing", so pending messages
// commit or roll back atomically with the document itself.
//
// Send is idempotent: the outgoing collection is a set, kept in insertion
// order. A dispatcher outside this package polls for documents with pending
// messages and clears delivered entries through the same save path as any
// other writer.
type MailBox[M comparable] struct {
	Outgoing []M `json:"_outgoing"`
}

// Send queues a message for delivery. Sending a message already pending is a
// no-op.
func (mb *MailBox[M]) Send(msg M) {
	for _, m := range mb.Outgoing {
		if m == msg {
			return
		}
	}
	mb.Outgoing = append(mb.Outgoing, msg)
}

// Drain removes and returns all pending messages.
func (mb *MailBox[M]) Drain() []M {
	out := mb.Outgoing
	mb.Outgoing = nil
	return out
}

// Pending returns the number of queued messages.
func (mb *MailBox[M]) Pending() int {
	return len(mb.Outgoing)
}
