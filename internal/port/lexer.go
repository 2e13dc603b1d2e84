package port

import "declex/internal/domain"

// Lexer turns raw source text into the token stream the extractor consumes.
// The extractor itself never reads bytes or files.
type Lexer interface {
	Tokenize(source string) []domain.Token
}
