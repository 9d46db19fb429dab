package store

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"fdc/fdx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "fdc.db"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDocument() *fdx.Document {
	return &fdx.Document{
		Title:     "The Long Night",
		Author:    "Jane Doe",
		DraftInfo: "2026-08-01 - Blue Draft",
		Elements: []fdx.ParsedElement{
			{ID: "e1", Type: fdx.ElementGeneral, Text: "The Long Night"},
			{ID: "e2", Type: fdx.ElementSceneHeading, Text: "INT. OFFICE - DAY", SceneNumber: "1", PageEighths: 10},
			{ID: "e3", Type: fdx.ElementAction, Text: "He sits.", RevisionColor: "Blue", RevisionID: "2"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	key, err := s.Save(sampleDocument())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if key != "the-long-night" {
		t.Fatalf("unexpected key: %q", key)
	}

	loaded, err := s.Load(key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Title != "The Long Night" || loaded.Author != "Jane Doe" || loaded.DraftInfo != "2026-08-01 - Blue Draft" {
		t.Fatalf("metadata mismatch: %+v", loaded)
	}
	if len(loaded.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(loaded.Elements))
	}
	heading := loaded.Elements[1]
	if heading.Type != fdx.ElementSceneHeading || heading.SceneNumber != "1" || heading.PageEighths != 10 {
		t.Fatalf("heading not preserved: %+v", heading)
	}
	action := loaded.Elements[2]
	if action.RevisionColor != "Blue" || action.RevisionID != "2" {
		t.Fatalf("revision attrs not preserved: %+v", action)
	}
}

func TestSaveOverwritesPreviousVersion(t *testing.T) {
	s := openTestStore(t)

	doc := sampleDocument()
	if _, err := s.Save(doc); err != nil {
		t.Fatalf("first save: %v", err)
	}
	doc.Elements = doc.Elements[:1]
	key, err := s.Save(doc)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := s.Load(key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Elements) != 1 {
		t.Fatalf("stale elements survived overwrite: %d", len(loaded.Elements))
	}
}

func TestLoadMissingDocument(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load("no-such-key"); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Save(sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	other := &fdx.Document{Title: "Another One"}
	if _, err := s.Save(other); err != nil {
		t.Fatalf("save other: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	found := map[string]int{}
	for _, e := range entries {
		found[e.Key] = e.Elements
	}
	if found["the-long-night"] != 3 || found["another-one"] != 0 {
		t.Fatalf("unexpected listing: %+v", entries)
	}
}

func TestEntryDescribe(t *testing.T) {
	if got := (Entry{Key: "a-key", Title: "A Title", Elements: 2}).Describe(); got != `a-key  "A Title"  2 elements` {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := (Entry{Key: "a-key"}).Describe(); got != `a-key  "<untitled>"  0 elements` {
		t.Fatalf("unexpected untitled description: %q", got)
	}
}

func TestKeyForUntitledDocument(t *testing.T) {
	a, b := Key(&fdx.Document{}), Key(&fdx.Document{})
	if a == "" || a == b {
		t.Fatalf("untitled documents need distinct non-empty keys: %q %q", a, b)
	}
}
