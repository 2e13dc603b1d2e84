package store

import (
	"path/filepath"
	"testing"
	"time"

	"declex/config"
	"declex/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "symbols.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDocRoundTrip(t *testing.T) {
	s := newTestStore(t)

	doc := domain.Document{
		ID:      "doc1",
		Path:    "/src/character.h",
		ModTime: time.Unix(1700000000, 0),
		Lang:    "cpp",
	}
	if err := s.PutDoc(doc); err != nil {
		t.Fatalf("PutDoc failed: %v", err)
	}

	got, err := s.GetDoc("doc1")
	if err != nil {
		t.Fatalf("GetDoc failed: %v", err)
	}
	if got.Path != doc.Path || got.Lang != doc.Lang || !got.ModTime.Equal(doc.ModTime) {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	if _, err := s.GetDoc("missing"); err == nil {
		t.Error("expected error for missing document")
	}

	docs, err := s.ListDocs()
	if err != nil || len(docs) != 1 {
		t.Errorf("expected 1 doc, got %d (err %v)", len(docs), err)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	s := newTestStore(t)

	tree := &domain.SymbolTree{
		Root: domain.Declaration{
			Kind: domain.DeclNamespace,
			Namespace: &domain.Namespace{
				Decls: []domain.Declaration{
					{
						Kind: domain.DeclClass,
						Name: "Foo",
						Class: &domain.Class{
							Tag: "class",
							Members: []domain.Member{
								{Access: domain.AccessPublic, Decl: domain.Declaration{
									Kind:     domain.DeclFunction,
									Name:     "bar",
									Function: &domain.Function{ReturnType: "int"},
								}},
							},
						},
					},
				},
			},
		},
	}

	if err := s.PutTree("doc1", tree); err != nil {
		t.Fatalf("PutTree failed: %v", err)
	}
	got, err := s.GetTree("doc1")
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	cls := got.Root.Namespace.Decls[0]
	if cls.Name != "Foo" || cls.Class == nil || len(cls.Class.Members) != 1 {
		t.Errorf("tree round-trip mismatch: %+v", cls)
	}
	if cls.Class.Members[0].Decl.Function.ReturnType != "int" {
		t.Error("member function lost in round-trip")
	}

	if _, err := s.GetTree("missing"); err == nil {
		t.Error("expected error for missing tree")
	}
}

func TestSymbolsAndSearch(t *testing.T) {
	s := newTestStore(t)

	symbols := []domain.Symbol{
		{ID: "s1", Name: "getValue", Qualified: "game::SimpleClass::getValue", Kind: "method", DocID: "doc1", Line: 10},
		{ID: "s2", Name: "setValue", Qualified: "game::SimpleClass::setValue", Kind: "method", DocID: "doc1", Line: 11},
		{ID: "s3", Name: "SimpleClass", Qualified: "game::SimpleClass", Kind: "class", DocID: "doc1", Line: 5},
	}
	if err := s.PutSymbols("doc1", symbols); err != nil {
		t.Fatalf("PutSymbols failed: %v", err)
	}

	got, err := s.GetSymbolsByDoc("doc1")
	if err != nil || len(got) != 3 {
		t.Fatalf("expected 3 symbols, got %d (err %v)", len(got), err)
	}

	// Substring match is case-insensitive on the short name.
	hits, err := s.FindSymbols("value", false)
	if err != nil || len(hits) != 2 {
		t.Errorf("expected 2 substring hits, got %d (err %v)", len(hits), err)
	}

	// Exact match compares short and qualified names.
	hits, _ = s.FindSymbols("game::SimpleClass", true)
	if len(hits) != 1 || hits[0].ID != "s3" {
		t.Errorf("expected exact hit on s3, got %v", hits)
	}
	hits, _ = s.FindSymbols("getValue", true)
	if len(hits) != 1 || hits[0].ID != "s1" {
		t.Errorf("expected exact hit on s1, got %v", hits)
	}

	if err := s.DeleteSymbolsByDoc("doc1"); err != nil {
		t.Fatalf("DeleteSymbolsByDoc failed: %v", err)
	}
	got, _ = s.GetSymbolsByDoc("doc1")
	if len(got) != 0 {
		t.Errorf("expected no symbols after delete, got %d", len(got))
	}
	hits, _ = s.FindSymbols("value", false)
	if len(hits) != 0 {
		t.Errorf("expected no hits after delete, got %d", len(hits))
	}
}

func TestDiagnosticsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	diags := []domain.Diagnostic{
		{Kind: domain.DiagUnbalancedDelimiter, Severity: domain.SeverityError, Pos: domain.Position{Line: 3, Column: 1}, Message: "missing brace"},
	}
	if err := s.PutDiagnostics("doc1", diags); err != nil {
		t.Fatalf("PutDiagnostics failed: %v", err)
	}
	got, err := s.GetDiagnostics("doc1")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d (err %v)", len(got), err)
	}
	if got[0].Kind != domain.DiagUnbalancedDelimiter || got[0].Pos.Line != 3 {
		t.Errorf("diagnostic round-trip mismatch: %+v", got[0])
	}

	got, err = s.GetDiagnostics("clean")
	if err != nil || len(got) != 0 {
		t.Errorf("expected no diagnostics for unknown doc, got %v (err %v)", got, err)
	}
}

func TestDeleteDocRemovesTreeAndDiags(t *testing.T) {
	s := newTestStore(t)

	s.PutDoc(domain.Document{ID: "doc1", Path: "/a.h"})
	s.PutTree("doc1", &domain.SymbolTree{})
	s.PutDiagnostics("doc1", []domain.Diagnostic{{Kind: domain.DiagLexicalMismatch}})

	if err := s.DeleteDoc("doc1"); err != nil {
		t.Fatalf("DeleteDoc failed: %v", err)
	}
	if _, err := s.GetDoc("doc1"); err == nil {
		t.Error("expected document gone")
	}
	if _, err := s.GetTree("doc1"); err == nil {
		t.Error("expected tree gone")
	}
	diags, _ := s.GetDiagnostics("doc1")
	if len(diags) != 0 {
		t.Error("expected diagnostics gone")
	}
}

func TestSchemaAndRebuild(t *testing.T) {
	s := newTestStore(t)
	cfg := config.DefaultConfig()

	// Fresh database: nothing recorded, no rebuild needed.
	rebuild, _, err := s.NeedsRebuild(cfg)
	if err != nil {
		t.Fatalf("NeedsRebuild failed: %v", err)
	}
	if rebuild {
		t.Error("fresh database must not need a rebuild")
	}

	if err := s.MarkCurrent(cfg); err != nil {
		t.Fatalf("MarkCurrent failed: %v", err)
	}
	rebuild, _, _ = s.NeedsRebuild(cfg)
	if rebuild {
		t.Error("unchanged config must not need a rebuild")
	}

	// Changing the macro table invalidates the stored trees.
	changed := config.DefaultConfig()
	changed.Macros.Declaration = []string{"Q_PROPERTY"}
	rebuild, reason, _ := s.NeedsRebuild(changed)
	if !rebuild {
		t.Error("changed macro table must trigger a rebuild")
	}
	if reason == "" {
		t.Error("expected a reason")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	cfg := config.DefaultConfig()

	s.PutDoc(domain.Document{ID: "doc1", Path: "/a.h"})
	s.PutSymbols("doc1", []domain.Symbol{{ID: "s1", Name: "x", DocID: "doc1"}})
	s.MarkCurrent(cfg)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	docs, _ := s.ListDocs()
	if len(docs) != 0 {
		t.Error("expected docs cleared")
	}
	hits, _ := s.FindSymbols("x", false)
	if len(hits) != 0 {
		t.Error("expected symbols cleared")
	}

	// Schema metadata survives a clear.
	info, _ := s.GetSchemaInfo()
	if info.Version != CurrentSchemaVersion {
		t.Errorf("expected schema version kept, got %d", info.Version)
	}
}
