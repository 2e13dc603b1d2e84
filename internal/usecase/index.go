package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"declex/internal/adapter/fs"
	"declex/internal/domain"
	"declex/internal/extractor"
	"declex/internal/port"
)

// IndexUseCase walks a source tree, extracts declarations from every
// matching file and persists the results.
type IndexUseCase struct {
	store    port.SymbolStore
	walker   port.FileWalker
	extract  *ExtractUseCase
	progress func(processed, total int, path string)
}

// NewIndexUseCase creates a new index use case.
func NewIndexUseCase(store port.SymbolStore, walker port.FileWalker, extract *ExtractUseCase) *IndexUseCase {
	return &IndexUseCase{
		store:   store,
		walker:  walker,
		extract: extract,
	}
}

// OnProgress registers a callback invoked once per processed file.
func (u *IndexUseCase) OnProgress(fn func(processed, total int, path string)) {
	u.progress = fn
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	FilesIndexed int
	FilesSkipped int
	FilesDeleted int
	SymbolsFound int
	Diagnostics  int
	Errors       []string
}

// Index indexes files under root. Unchanged files (by modification time)
// are skipped; files that disappeared since the last run are removed from
// the store. Per-file failures are collected, not fatal.
func (u *IndexUseCase) Index(ctx context.Context, root string) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}

	existingMap := make(map[string]domain.Document)
	for _, doc := range existingDocs {
		existingMap[doc.Path] = doc
	}

	seenPaths := make(map[string]bool)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		seenPaths[file.Path] = true

		if existing, ok := existingMap[file.Path]; ok {
			if existing.ModTime.Unix() >= file.ModTime {
				result.FilesSkipped++
				if u.progress != nil {
					u.progress(i+1, len(files), file.Path)
				}
				continue
			}
			if err := u.deleteDocument(existing.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to delete old data for %s: %v", file.Path, err))
			}
		}

		if err := u.indexFile(ctx, file, result); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Errors = append(result.Errors, fmt.Sprintf("failed to index %s: %v", file.Path, err))
		} else {
			result.FilesIndexed++
		}
		if u.progress != nil {
			u.progress(i+1, len(files), file.Path)
		}
	}

	// Remove documents whose files no longer exist.
	for path, doc := range existingMap {
		if !seenPaths[path] {
			if err := u.deleteDocument(doc.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			} else {
				result.FilesDeleted++
			}
		}
	}

	return result, nil
}

// indexFile extracts and stores a single file.
func (u *IndexUseCase) indexFile(ctx context.Context, file port.FileInfo, result *IndexResult) error {
	content, err := fs.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tree, diags, err := u.extract.Extract(ctx, content)
	if err != nil {
		return err
	}

	docID := GenerateDocID(file.Path)
	doc := domain.Document{
		ID:      docID,
		Path:    file.Path,
		ModTime: time.Unix(file.ModTime, 0),
		Lang:    detectLanguage(file.Path),
	}

	if err := u.store.PutDoc(doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	if err := u.store.PutTree(docID, tree); err != nil {
		return fmt.Errorf("failed to store tree: %w", err)
	}

	symbols := extractor.Flatten(tree, docID)
	if err := u.store.PutSymbols(docID, symbols); err != nil {
		return fmt.Errorf("failed to store symbols: %w", err)
	}
	if err := u.store.PutDiagnostics(docID, diags); err != nil {
		return fmt.Errorf("failed to store diagnostics: %w", err)
	}

	result.SymbolsFound += len(symbols)
	result.Diagnostics += len(diags)
	return nil
}

// deleteDocument deletes a document and all its associated data.
func (u *IndexUseCase) deleteDocument(docID string) error {
	if err := u.store.DeleteSymbolsByDoc(docID); err != nil {
		return err
	}
	return u.store.DeleteDoc(docID)
}

// GenerateDocID creates a unique ID for a document based on its path.
func GenerateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

// detectLanguage detects the language based on file extension.
func detectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".c":
		return "c"
	case ".h", ".hh", ".hpp", ".hxx", ".cpp", ".cc", ".cxx":
		return "cpp"
	default:
		return "unknown"
	}
}
