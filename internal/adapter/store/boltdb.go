// Package store persists extraction results in a bbolt database.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"declex/internal/domain"
)

var (
	bucketDocs       = []byte("docs")
	bucketTrees      = []byte("trees")
	bucketSymbols    = []byte("symbols")
	bucketDocSymbols = []byte("doc_symbols")
	bucketDiags      = []byte("diagnostics")
	bucketMeta       = []byte("meta")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketTrees, bucketSymbols, bucketDocSymbols, bucketDiags, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type docMeta struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
	Lang    string `json:"lang"`
}

func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := docMeta{
			Path:    doc.Path,
			ModTime: doc.ModTime.Unix(),
			Lang:    doc.Lang,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocs).Put([]byte(doc.ID), data)
	})
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = domain.Document{
			ID:      id,
			Path:    meta.Path,
			ModTime: time.Unix(meta.ModTime, 0),
			Lang:    meta.Lang,
		}
		return nil
	})
	return doc, err
}

func (s *BoltStore) DeleteDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketDocs).Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTrees).Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(bucketDiags).Delete([]byte(id))
	})
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocs)
		return b.ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, domain.Document{
				ID:      string(k),
				Path:    meta.Path,
				ModTime: time.Unix(meta.ModTime, 0),
				Lang:    meta.Lang,
			})
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) PutTree(docID string, tree *domain.SymbolTree) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(tree)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketTrees).Put([]byte(docID), data)
	})
}

func (s *BoltStore) GetTree(docID string) (*domain.SymbolTree, error) {
	var tree *domain.SymbolTree
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTrees).Get([]byte(docID))
		if data == nil {
			return fmt.Errorf("tree not found for document: %s", docID)
		}
		tree = &domain.SymbolTree{}
		return json.Unmarshal(data, tree)
	})
	return tree, err
}

func (s *BoltStore) PutSymbols(docID string, symbols []domain.Symbol) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		symbolBucket := tx.Bucket(bucketSymbols)
		docSymbolsBucket := tx.Bucket(bucketDocSymbols)

		symbolIDs := make([]string, 0, len(symbols))
		for _, sym := range symbols {
			data, err := json.Marshal(sym)
			if err != nil {
				return err
			}
			if err := symbolBucket.Put([]byte(sym.ID), data); err != nil {
				return err
			}
			symbolIDs = append(symbolIDs, sym.ID)
		}

		idsData, err := json.Marshal(symbolIDs)
		if err != nil {
			return err
		}
		return docSymbolsBucket.Put([]byte(docID), idsData)
	})
}

func (s *BoltStore) GetSymbolsByDoc(docID string) ([]domain.Symbol, error) {
	var symbols []domain.Symbol
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocSymbols).Get([]byte(docID))
		if data == nil {
			return nil
		}
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		symbolBucket := tx.Bucket(bucketSymbols)
		for _, id := range ids {
			symData := symbolBucket.Get([]byte(id))
			if symData != nil {
				var sym domain.Symbol
				if err := json.Unmarshal(symData, &sym); err == nil {
					symbols = append(symbols, sym)
				}
			}
		}
		return nil
	})
	return symbols, err
}

func (s *BoltStore) DeleteSymbolsByDoc(docID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docSymbolsBucket := tx.Bucket(bucketDocSymbols)
		data := docSymbolsBucket.Get([]byte(docID))
		if data == nil {
			return nil
		}
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		symbolBucket := tx.Bucket(bucketSymbols)
		for _, id := range ids {
			symbolBucket.Delete([]byte(id))
		}
		return docSymbolsBucket.Delete([]byte(docID))
	})
}

// FindSymbols scans all symbols for a name match. Exact matching compares
// both the short and the qualified name; otherwise a case-insensitive
// substring match on the short name applies.
func (s *BoltStore) FindSymbols(name string, exact bool) ([]domain.Symbol, error) {
	var matches []domain.Symbol
	nameLower := strings.ToLower(name)

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSymbols)
		return b.ForEach(func(k, v []byte) error {
			var sym domain.Symbol
			if err := json.Unmarshal(v, &sym); err != nil {
				return nil
			}
			if exact {
				if sym.Name == name || sym.Qualified == name {
					matches = append(matches, sym)
				}
			} else if strings.Contains(strings.ToLower(sym.Name), nameLower) {
				matches = append(matches, sym)
			}
			return nil
		})
	})
	return matches, err
}

func (s *BoltStore) PutDiagnostics(docID string, diags []domain.Diagnostic) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(diags)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDiags).Put([]byte(docID), data)
	})
}

func (s *BoltStore) GetDiagnostics(docID string) ([]domain.Diagnostic, error) {
	var diags []domain.Diagnostic
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDiags).Get([]byte(docID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &diags)
	})
	return diags, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
