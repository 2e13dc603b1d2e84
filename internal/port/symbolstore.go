package port

import "declex/internal/domain"

// SymbolStore persists extraction results: documents, their symbol trees,
// the flattened symbol records, and the diagnostics collected per document.
type SymbolStore interface {
	PutDoc(doc domain.Document) error

	GetDoc(id string) (domain.Document, error)

	DeleteDoc(id string) error

	ListDocs() ([]domain.Document, error)

	PutTree(docID string, tree *domain.SymbolTree) error

	GetTree(docID string) (*domain.SymbolTree, error)

	PutSymbols(docID string, symbols []domain.Symbol) error

	GetSymbolsByDoc(docID string) ([]domain.Symbol, error)

	DeleteSymbolsByDoc(docID string) error

	FindSymbols(name string, exact bool) ([]domain.Symbol, error)

	PutDiagnostics(docID string, diags []domain.Diagnostic) error

	GetDiagnostics(docID string) ([]domain.Diagnostic, error)

	Close() error
}
