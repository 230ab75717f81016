package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quill-works/docstore/internal/docs"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id   TEXT PRIMARY KEY,
	body TEXT NOT NULL CHECK (json_valid(body))
);
`

// The write predicates derive the row key and the expected version from the
// serialized body itself, never from out-of-band parameters, so the indexed
// id column and the "_id" field inside the blob cannot drift apart.
const (
	loadSQL = `SELECT body FROM documents WHERE id = ?1`

	insertSQL = `
		INSERT INTO documents (id, body)
		SELECT json_extract(?1, '$._id'), json(?1)
		WHERE NOT EXISTS (
			SELECT 1 FROM documents d WHERE d.id = json_extract(?1, '$._id')
		)`

	updateSQL = `
		UPDATE documents
		SET body = json(?1)
		WHERE id = json_extract(?1, '$._id')
		  AND json_extract(body, '$._version') = ?2`

	nextUnsentSQL = `
		SELECT body FROM documents
		WHERE json_array_length(body, '$._outgoing') > 0
		LIMIT 1`

	pendingIDsSQL = `
		SELECT id FROM documents
		WHERE json_array_length(body, '$._outgoing') > 0
		ORDER BY id`
)

// Conn is the slice of database/sql behaviour the engine needs. Both *sql.DB
// and a checked-out *sql.Conn satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

// Documents is the document engine bound to a single connection.
type Documents struct {
	conn    Conn
	metrics *Metrics
}

// NewDocuments creates an engine over the given connection.
func NewDocuments(conn Conn) *Documents {
	return &Documents{conn: conn}
}

func newDocuments(conn Conn, m *Metrics) *Documents {
	return &Documents{conn: conn, metrics: m}
}

// SetMetrics attaches collectors for save/load outcomes. Nil disables them.
func (d *Documents) SetMetrics(m *Metrics) {
	d.metrics = m
}

// Setup creates the documents table. Idempotent.
func (d *Documents) Setup(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Save persists the document under its embedded id.
//
// The in-memory version is incremented before the write is attempted, and
// stays incremented even when the save fails; a failed save consumes the
// attempt, and the caller must reload rather than blindly re-save. A fresh
// document (version 0) is inserted only if its id is unused; any other
// version is a conditional update keyed on the pre-increment version. Zero
// affected rows rolls the transaction back and fails with
// ErrDuplicateDocument or ErrConcurrentModification respectively.
func (d *Documents) Save(ctx context.Context, doc docs.HasMeta) error {
	start := time.Now()

	current := doc.CurrentVersion()
	doc.IncrementVersion()

	body, err := json.Marshal(doc)
	if err != nil {
		d.metrics.observeSave(outcomeError, start)
		return fmt.Errorf("save document: encode body: %w", err)
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		d.metrics.observeSave(outcomeError, start)
		return fmt.Errorf("save document: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var res sql.Result
	if current.IsNew() {
		res, err = tx.ExecContext(ctx, insertSQL, string(body))
	} else {
		res, err = tx.ExecContext(ctx, updateSQL, string(body), int64(current))
	}
	if err != nil {
		d.metrics.observeSave(outcomeError, start)
		return fmt.Errorf("save document: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		d.metrics.observeSave(outcomeError, start)
		return fmt.Errorf("save document: rows affected: %w", err)
	}
	slog.Debug("save modified rows", "rows", rows, "fresh", current.IsNew())

	if rows == 0 {
		d.metrics.observeSave(outcomeConflict, start)
		if current.IsNew() {
			return ErrDuplicateDocument
		}
		return ErrConcurrentModification
	}

	if err := tx.Commit(); err != nil {
		d.metrics.observeSave(outcomeError, start)
		return fmt.Errorf("save document: commit: %w", err)
	}

	d.metrics.observeSave(outcomeOK, start)
	return nil
}

// LoadRaw fetches the body stored under the given id string, or nil if no
// such document exists. There is no version check on reads.
func (d *Documents) LoadRaw(ctx context.Context, key string) (json.RawMessage, error) {
	var body []byte
	err := d.conn.QueryRowContext(ctx, loadSQL, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		d.metrics.observeLoad(outcomeMiss)
		return nil, nil
	}
	if err != nil {
		d.metrics.observeLoad(outcomeError)
		return nil, fmt.Errorf("load document %q: %w", key, err)
	}
	d.metrics.observeLoad(outcomeHit)
	return json.RawMessage(body), nil
}

// NextUnsentRaw returns the body of some document with a non-empty outbox,
// or nil if none is pending. Dispatchers poll this, deliver, then clear the
// outbox through the ordinary save path; they may race the original writer
// and must retry on a concurrency error.
func (d *Documents) NextUnsentRaw(ctx context.Context) (json.RawMessage, error) {
	var body []byte
	err := d.conn.QueryRowContext(ctx, nextUnsentSQL).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load next unsent: %w", err)
	}
	return json.RawMessage(body), nil
}

// PendingIDs lists the id strings of every document with a non-empty outbox.
func (d *Documents) PendingIDs(ctx context.Context) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, pendingIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list pending: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return out, nil
}

// Ping probes the underlying connection.
func (d *Documents) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}
