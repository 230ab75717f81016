package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quill-works/docstore/internal/docs"
	"github.com/quill-works/docstore/internal/ids"
)

var idgen = ids.NewGenerator()

type aDocument struct {
	docs.DocMeta[aDocument]
	Name string `json:"name"`
}

func (aDocument) IDPrefix() string { return "adocument" }

type aMessage struct {
	Note string `json:"note"`
}

type chattyDoc struct {
	docs.DocMeta[chattyDoc]
	docs.MailBox[aMessage]
}

func (chattyDoc) IDPrefix() string { return "chatty" }

// createTestPool creates a store in a temp directory for testing.
func createTestPool(t *testing.T) *Pool {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	p, err := Open(path)
	require.NoError(t, err, "Open()")
	t.Cleanup(func() { p.Close() })
	return p
}

func newADocument(name string) *aDocument {
	return &aDocument{
		DocMeta: docs.NewMeta(ids.Generate[aDocument](idgen)),
		Name:    name,
	}
}

func newChattyDoc() *chattyDoc {
	return &chattyDoc{DocMeta: docs.NewMeta(ids.Generate[chattyDoc](idgen))}
}
