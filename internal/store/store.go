package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quill-works/docstore/internal/docs"
)

// Pool shares a document store between callers. Every operation checks one
// connection out of the underlying pool for its own duration and returns it
// on all paths; no connection affinity survives across calls, and no
// document locks are held between them.
type Pool struct {
	db      *sql.DB
	metrics *Metrics
}

// Open creates or opens the database at the given path, applies the
// required pragmas and the schema, and returns a shared Pool.
//
// The database is configured with WAL mode for concurrent reads during
// writes, NORMAL synchronous mode, a 5-second busy timeout for lock
// contention, and foreign key enforcement. Idempotent.
func Open(path string) (*Pool, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	p := &Pool{db: db}
	if err := NewDocuments(db).Setup(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return p, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (p *Pool) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// DB returns the underlying sql.DB so callers can tune pool limits.
// Prefer the Pool methods for storage operations.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// SetMetrics attaches collectors used by every engine the pool hands out.
// Nil disables them.
func (p *Pool) SetMetrics(m *Metrics) {
	p.metrics = m
}

// checkout acquires a connection and an engine bound to it. The caller must
// invoke the returned release function.
func (p *Pool) checkout(ctx context.Context) (*Documents, func(), error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("checkout connection: %w", err)
	}
	return newDocuments(conn, p.metrics), func() { conn.Close() }, nil
}

// Save persists a document on a checked-out connection. See Documents.Save.
func (p *Pool) Save(ctx context.Context, doc docs.HasMeta) error {
	d, release, err := p.checkout(ctx)
	if err != nil {
		return err
	}
	defer release()
	return d.Save(ctx, doc)
}

// LoadRaw fetches a body on a checked-out connection. See Documents.LoadRaw.
func (p *Pool) LoadRaw(ctx context.Context, key string) (json.RawMessage, error) {
	d, release, err := p.checkout(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return d.LoadRaw(ctx, key)
}

// NextUnsentRaw returns some document body with a pending outbox, or nil.
func (p *Pool) NextUnsentRaw(ctx context.Context) (json.RawMessage, error) {
	d, release, err := p.checkout(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return d.NextUnsentRaw(ctx)
}

// PendingIDs lists documents with pending outboxes.
func (p *Pool) PendingIDs(ctx context.Context) ([]string, error) {
	d, release, err := p.checkout(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return d.PendingIDs(ctx)
}

// Ping checks a connection out and probes it, delegating to the driver's
// native health check.
func (p *Pool) Ping(ctx context.Context) error {
	d, release, err := p.checkout(ctx)
	if err != nil {
		return err
	}
	defer release()
	return d.Ping(ctx)
}
