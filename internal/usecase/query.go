package usecase

import (
	"fmt"
	"sort"

	"declex/internal/domain"
	"declex/internal/port"
)

// QueryUseCase answers lookups against a populated symbol store.
type QueryUseCase struct {
	store port.SymbolStore
}

// NewQueryUseCase creates a new query use case.
func NewQueryUseCase(store port.SymbolStore) *QueryUseCase {
	return &QueryUseCase{store: store}
}

// SymbolHit pairs a symbol with the path of its defining document.
type SymbolHit struct {
	Symbol domain.Symbol
	Path   string
}

// Find looks symbols up by name. With exact=false the match is a
// case-insensitive substring match. A non-empty kind restricts hits to
// that symbol kind (class, method, field, ...). Hits come back sorted by
// qualified name, then by path.
func (u *QueryUseCase) Find(name string, exact bool, kind string) ([]SymbolHit, error) {
	symbols, err := u.store.FindSymbols(name, exact)
	if err != nil {
		return nil, fmt.Errorf("failed to search symbols: %w", err)
	}

	hits := make([]SymbolHit, 0, len(symbols))
	for _, sym := range symbols {
		if kind != "" && sym.Kind != kind {
			continue
		}
		hit := SymbolHit{Symbol: sym}
		if doc, err := u.store.GetDoc(sym.DocID); err == nil {
			hit.Path = doc.Path
		}
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Symbol.Qualified != hits[j].Symbol.Qualified {
			return hits[i].Symbol.Qualified < hits[j].Symbol.Qualified
		}
		return hits[i].Path < hits[j].Path
	})
	return hits, nil
}

// Outline returns the stored symbol tree for a file path.
func (u *QueryUseCase) Outline(path string) (*domain.SymbolTree, error) {
	return u.store.GetTree(GenerateDocID(path))
}

// Diagnostics returns the stored diagnostics for a file path.
func (u *QueryUseCase) Diagnostics(path string) ([]domain.Diagnostic, error) {
	return u.store.GetDiagnostics(GenerateDocID(path))
}
