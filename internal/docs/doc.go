// Package docs defines the envelope every persisted document carries: its
// identity and version under the reserved keys "_id" and "_version", and an
// optional outbox of pending messages under "_outgoing".
//
// Document types embed DocMeta (and MailBox if they emit messages) so the
// envelope flattens into the document's own JSON object. The version field
// doubles as the store's compare-and-swap token; see the store package.
package docs
