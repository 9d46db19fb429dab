// Package store persists assembled screenplay documents. The conversion
// core never touches it; the CLI wires the two together.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"fdc/fdx"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	author     TEXT NOT NULL,
	draft_info TEXT NOT NULL,
	saved_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS elements (
	document_key   TEXT NOT NULL REFERENCES documents(key) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	id             TEXT NOT NULL,
	type           TEXT NOT NULL,
	text           TEXT NOT NULL,
	scene_number   TEXT NOT NULL DEFAULT '',
	revision_color TEXT NOT NULL DEFAULT '',
	revision_id    TEXT NOT NULL DEFAULT '',
	omitted        INTEGER NOT NULL DEFAULT 0,
	page_number    TEXT NOT NULL DEFAULT '',
	page_eighths   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (document_key, position)
);
`

// Store keeps documents in a single SQLite database file.
type Store struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// Entry is a single row of the store listing.
type Entry struct {
	Key      string
	Title    string
	Elements int
}

func Open(path string, log *zap.Logger) (*Store, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open document store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		err = fmt.Errorf("unable to prepare document store schema: %w", err)
		return nil, multierr.Append(err, conn.Close())
	}
	return &Store{conn: conn, log: log}, nil
}

func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Key derives the stable store key for a document. Untitled documents get a
// random one.
func Key(doc *fdx.Document) string {
	if key := slug.Make(doc.Title); key != "" {
		return key
	}
	return uuid.NewString()
}

// Save upserts the document and all its elements, returning the store key.
func (s *Store) Save(doc *fdx.Document) (key string, err error) {
	key = Key(doc)

	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Execute(s.conn,
		`DELETE FROM elements WHERE document_key = ?`,
		&sqlitex.ExecOptions{Args: []any{key}}); err != nil {
		return "", fmt.Errorf("unable to clear previous elements: %w", err)
	}
	if err = sqlitex.Execute(s.conn,
		`INSERT INTO documents (key, title, author, draft_info, saved_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET title=excluded.title, author=excluded.author, draft_info=excluded.draft_info, saved_at=excluded.saved_at`,
		&sqlitex.ExecOptions{Args: []any{key, doc.Title, doc.Author, doc.DraftInfo, time.Now().UTC().Format(time.RFC3339)}}); err != nil {
		return "", fmt.Errorf("unable to save document %q: %w", key, err)
	}

	for i := range doc.Elements {
		el := &doc.Elements[i]
		if err = sqlitex.Execute(s.conn,
			`INSERT INTO elements (document_key, position, id, type, text, scene_number, revision_color, revision_id, omitted, page_number, page_eighths)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{
				key, i, el.ID, string(el.Type), el.Text, el.SceneNumber,
				el.RevisionColor, el.RevisionID, el.IsOmitted, el.PageNumber, el.PageEighths,
			}}); err != nil {
			return "", fmt.Errorf("unable to save element %d of %q: %w", i, key, err)
		}
	}

	s.log.Debug("Document saved", zap.String("key", key), zap.Int("elements", len(doc.Elements)))
	return key, nil
}

// Load reads a document back in element order.
func (s *Store) Load(key string) (*fdx.Document, error) {
	var doc *fdx.Document
	err := sqlitex.Execute(s.conn,
		`SELECT title, author, draft_info FROM documents WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				doc = &fdx.Document{
					Title:     stmt.ColumnText(0),
					Author:    stmt.ColumnText(1),
					DraftInfo: stmt.ColumnText(2),
				}
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to load document %q: %w", key, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found", key)
	}

	err = sqlitex.Execute(s.conn,
		`SELECT id, type, text, scene_number, revision_color, revision_id, omitted, page_number, page_eighths
		 FROM elements WHERE document_key = ? ORDER BY position`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				doc.Elements = append(doc.Elements, fdx.ParsedElement{
					ID:            stmt.ColumnText(0),
					Type:          fdx.ElementType(stmt.ColumnText(1)),
					Text:          stmt.ColumnText(2),
					SceneNumber:   stmt.ColumnText(3),
					RevisionColor: stmt.ColumnText(4),
					RevisionID:    stmt.ColumnText(5),
					IsOmitted:     stmt.ColumnInt(6) != 0,
					PageNumber:    stmt.ColumnText(7),
					PageEighths:   stmt.ColumnInt(8),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to load elements of %q: %w", key, err)
	}
	return doc, nil
}

// List returns all stored documents, newest first.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := sqlitex.Execute(s.conn,
		`SELECT d.key, d.title, COUNT(e.position)
		 FROM documents d LEFT JOIN elements e ON e.document_key = d.key
		 GROUP BY d.key ORDER BY d.saved_at DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entries = append(entries, Entry{
					Key:      stmt.ColumnText(0),
					Title:    stmt.ColumnText(1),
					Elements: stmt.ColumnInt(2),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to list documents: %w", err)
	}
	return entries, nil
}

// Describe renders a short human readable listing line.
func (e Entry) Describe() string {
	title := e.Title
	if title == "" {
		title = "<untitled>"
	}
	return strings.TrimSpace(fmt.Sprintf("%s  %q  %d elements", e.Key, title, e.Elements))
}
