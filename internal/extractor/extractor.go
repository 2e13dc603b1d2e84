// Package extractor converts a C++ token stream into a symbol tree. It is a
// best-effort declaration parser: reflection-macro call sites (UCLASS,
// UPROPERTY, GENERATED_BODY, ...) are captured as opaque attributes instead
// of being expanded, function bodies are recorded as byte ranges but never
// descended into, and malformed constructs produce diagnostics and a resync
// rather than aborting the parse.
package extractor

import (
	"context"

	"declex/internal/domain"
)

// MacroTable is the set of reflection-macro names the extractor recognizes.
// Declaration macros annotate the declaration that follows them; body macros
// (GENERATED_BODY and friends) appear inside a class body and attach to the
// enclosing class. Safe for concurrent use once built.
type MacroTable struct {
	decl map[string]bool
	body map[string]bool
}

// NewMacroTable builds a table from explicit name lists.
func NewMacroTable(declaration, body []string) MacroTable {
	t := MacroTable{
		decl: make(map[string]bool, len(declaration)),
		body: make(map[string]bool, len(body)),
	}
	for _, name := range declaration {
		t.decl[name] = true
	}
	for _, name := range body {
		t.body[name] = true
	}
	return t
}

// DefaultMacroTable returns the Unreal-Engine-style macro set.
func DefaultMacroTable() MacroTable {
	return NewMacroTable(
		[]string{"UCLASS", "USTRUCT", "UINTERFACE", "UENUM", "UPROPERTY", "UFUNCTION"},
		[]string{"GENERATED_BODY", "GENERATED_UCLASS_BODY", "GENERATED_USTRUCT_BODY"},
	)
}

// Known reports whether name is a configured macro of either flavor.
func (t MacroTable) Known(name string) bool {
	return t.decl[name] || t.body[name]
}

// IsBody reports whether name is a body macro.
func (t MacroTable) IsBody(name string) bool {
	return t.body[name]
}

// Extractor parses token streams into symbol trees. One Extractor may be
// shared by any number of goroutines; each Extract call owns its own cursor,
// diagnostics, and in-progress tree.
type Extractor struct {
	macros         MacroTable
	maxDepth       int
	attachComments bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMacroTable replaces the default reflection-macro table, e.g. to
// recognize Qt's Q_OBJECT/Q_PROPERTY instead of the Unreal set.
func WithMacroTable(t MacroTable) Option {
	return func(e *Extractor) { e.macros = t }
}

// WithMaxDepth bounds scope nesting; deeper input is reported as an
// unknown construct and skipped.
func WithMaxDepth(n int) Option {
	return func(e *Extractor) { e.maxDepth = n }
}

// WithComments controls whether the comment preceding a declaration is
// attached as its doc text.
func WithComments(enabled bool) Option {
	return func(e *Extractor) { e.attachComments = enabled }
}

// New creates an Extractor with the default macro table.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		macros:         DefaultMacroTable(),
		maxDepth:       64,
		attachComments: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the token stream into a symbol tree plus diagnostics. The
// returned error is non-nil only when ctx was canceled; even then the
// partial tree and the diagnostics collected so far are returned. Parse
// problems never surface as errors, only as diagnostics.
func (e *Extractor) Extract(ctx context.Context, tokens []domain.Token) (*domain.SymbolTree, []domain.Diagnostic, error) {
	classified := e.classify(tokens)

	p := &parser{
		ext:    e,
		ctx:    ctx,
		tokens: classified,
	}
	decls := p.parseScope(0)

	return buildTree(decls), p.diags, p.err
}
