// Package memstore is the in-memory SymbolStore, used in tests and by the
// library example. Not persistent.
package memstore

import (
	"fmt"
	"strings"
	"sync"

	"declex/internal/domain"
)

type MemoryStore struct {
	mu         sync.RWMutex
	docs       map[string]domain.Document
	trees      map[string]*domain.SymbolTree
	symbols    map[string]domain.Symbol
	docSymbols map[string][]string
	diags      map[string][]domain.Diagnostic
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:       make(map[string]domain.Document),
		trees:      make(map[string]*domain.SymbolTree),
		symbols:    make(map[string]domain.Symbol),
		docSymbols: make(map[string][]string),
		diags:      make(map[string][]domain.Diagnostic),
	}
}

func (s *MemoryStore) PutDoc(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}

func (s *MemoryStore) DeleteDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	delete(s.trees, id)
	delete(s.diags, id)
	return nil
}

func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MemoryStore) PutTree(docID string, tree *domain.SymbolTree) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[docID] = tree
	return nil
}

func (s *MemoryStore) GetTree(docID string) (*domain.SymbolTree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree, ok := s.trees[docID]
	if !ok {
		return nil, fmt.Errorf("tree not found for document: %s", docID)
	}
	return tree, nil
}

func (s *MemoryStore) PutSymbols(docID string, symbols []domain.Symbol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		s.symbols[sym.ID] = sym
		ids = append(ids, sym.ID)
	}
	s.docSymbols[docID] = ids
	return nil
}

func (s *MemoryStore) GetSymbolsByDoc(docID string) ([]domain.Symbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.docSymbols[docID]
	symbols := make([]domain.Symbol, 0, len(ids))
	for _, id := range ids {
		if sym, ok := s.symbols[id]; ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}

func (s *MemoryStore) DeleteSymbolsByDoc(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.docSymbols[docID] {
		delete(s.symbols, id)
	}
	delete(s.docSymbols, docID)
	return nil
}

func (s *MemoryStore) FindSymbols(name string, exact bool) ([]domain.Symbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []domain.Symbol
	nameLower := strings.ToLower(name)
	for _, sym := range s.symbols {
		if exact {
			if sym.Name == name || sym.Qualified == name {
				matches = append(matches, sym)
			}
		} else if strings.Contains(strings.ToLower(sym.Name), nameLower) {
			matches = append(matches, sym)
		}
	}
	return matches, nil
}

func (s *MemoryStore) PutDiagnostics(docID string, diags []domain.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags[docID] = diags
	return nil
}

func (s *MemoryStore) GetDiagnostics(docID string) ([]domain.Diagnostic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diags[docID], nil
}

func (s *MemoryStore) Close() error {
	return nil
}
