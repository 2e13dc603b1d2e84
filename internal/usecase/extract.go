package usecase

import (
	"context"
	"fmt"

	"declex/internal/adapter/cache"
	"declex/internal/adapter/fs"
	"declex/internal/domain"
	"declex/internal/extractor"
	"declex/internal/port"
)

// ExtractUseCase runs the lexer and extractor over a single source, with an
// optional content-addressed cache in front.
type ExtractUseCase struct {
	lexer     port.Lexer
	extractor *extractor.Extractor
	cache     *cache.ParseCache
}

// NewExtractUseCase creates a new extract use case. cache may be nil.
func NewExtractUseCase(lexer port.Lexer, ext *extractor.Extractor, parseCache *cache.ParseCache) *ExtractUseCase {
	return &ExtractUseCase{
		lexer:     lexer,
		extractor: ext,
		cache:     parseCache,
	}
}

// Extract parses source text into a symbol tree plus diagnostics.
func (u *ExtractUseCase) Extract(ctx context.Context, source string) (*domain.SymbolTree, []domain.Diagnostic, error) {
	var key string
	if u.cache != nil {
		key = cache.Key(source)
		if tree, diags, hit := u.cache.Get(key); hit {
			return tree, diags, nil
		}
	}

	tokens := u.lexer.Tokenize(source)
	tree, diags, err := u.extractor.Extract(ctx, tokens)
	if err != nil {
		return tree, diags, err
	}

	if u.cache != nil {
		u.cache.Put(key, tree, diags)
	}
	return tree, diags, nil
}

// ExtractFile parses the file at path.
func (u *ExtractUseCase) ExtractFile(ctx context.Context, path string) (*domain.SymbolTree, []domain.Diagnostic, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return u.Extract(ctx, content)
}
