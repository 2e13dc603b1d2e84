// Package lexer tokenizes C++ source text into the token stream consumed by
// the extractor. It is deliberately shallow: identifiers come out unclassified
// (keyword and macro recognition belong to the extractor), comments are kept
// as tokens so doc comments can be attached to declarations, and preprocessor
// lines are skipped wholesale.
package lexer

import (
	"strings"
	"unicode"

	"declex/internal/domain"
)

type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []domain.Token
}

// New creates a lexer. One lexer may tokenize any number of sources, one
// at a time.
func New() *Lexer {
	return &Lexer{line: 1, column: 1}
}

// Tokenize processes the entire input and returns all tokens, terminated by
// a single EOF token.
func (l *Lexer) Tokenize(input string) []domain.Token {
	l.input = input
	l.pos = 0
	l.line = 1
	l.column = 1
	l.tokens = nil

	for l.pos < len(l.input) {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		ch := l.input[l.pos]

		switch {
		case ch == '/' && (l.peek() == '/' || l.peek() == '*'):
			l.readComment()
		case ch == '"' || ch == '\'':
			l.readString(ch)
		case ch == '#':
			l.skipPreprocessor()
		case unicode.IsLetter(rune(ch)) || ch == '_':
			l.readIdentifier()
		case unicode.IsDigit(rune(ch)):
			l.readNumber()
		default:
			l.readPunct()
		}
	}

	l.tokens = append(l.tokens, domain.Token{Kind: domain.TokenEOF, Pos: l.position()})
	return l.tokens
}

func (l *Lexer) position() domain.Position {
	return domain.Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

func (l *Lexer) readComment() {
	start := l.position()
	from := l.pos

	if l.peek() == '/' {
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.advance()
		}
	} else {
		l.advance() // /
		l.advance() // *
		for l.pos < len(l.input) {
			if l.input[l.pos] == '*' && l.peek() == '/' {
				l.advance()
				l.advance()
				break
			}
			l.advance()
		}
	}

	l.tokens = append(l.tokens, domain.Token{
		Kind: domain.TokenComment,
		Text: l.input[from:l.pos],
		Pos:  start,
	})
}

func (l *Lexer) skipPreprocessor() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		// Line continuation keeps the directive going.
		if l.input[l.pos] == '\\' && l.peek() == '\n' {
			l.advance()
			l.advance()
			continue
		}
		l.advance()
	}
}

func (l *Lexer) readString(quote byte) {
	start := l.position()
	var sb strings.Builder
	sb.WriteByte(quote)
	l.advance() // opening quote

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			sb.WriteByte(ch)
			l.advance()
			if l.pos < len(l.input) {
				sb.WriteByte(l.input[l.pos])
				l.advance()
			}
		} else if ch == quote {
			sb.WriteByte(ch)
			l.advance()
			break
		} else if ch == '\n' {
			break // unterminated
		} else {
			sb.WriteByte(ch)
			l.advance()
		}
	}

	l.tokens = append(l.tokens, domain.Token{
		Kind: domain.TokenLiteral,
		Text: sb.String(),
		Pos:  start,
	})
}

func (l *Lexer) readIdentifier() {
	start := l.position()
	from := l.pos

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	l.tokens = append(l.tokens, domain.Token{
		Kind: domain.TokenIdentifier,
		Text: l.input[from:l.pos],
		Pos:  start,
	})
}

func (l *Lexer) readNumber() {
	start := l.position()
	from := l.pos

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsDigit(rune(ch)) || ch == '.' || ch == 'x' || ch == 'X' ||
			(ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') ||
			ch == 'u' || ch == 'U' || ch == 'l' || ch == 'L' {
			l.advance()
		} else {
			break
		}
	}

	l.tokens = append(l.tokens, domain.Token{
		Kind: domain.TokenLiteral,
		Text: l.input[from:l.pos],
		Pos:  start,
	})
}

// readPunct emits one punctuation token. Only "::" and "->" are combined;
// declaration grammar never needs other compound operators, and keeping '<'
// and '>' as single characters sidesteps the '>>' template-closing problem.
func (l *Lexer) readPunct() {
	start := l.position()

	if l.pos+1 < len(l.input) {
		two := l.input[l.pos : l.pos+2]
		if two == "::" || two == "->" {
			l.advance()
			l.advance()
			l.tokens = append(l.tokens, domain.Token{
				Kind: domain.TokenPunct,
				Text: two,
				Pos:  start,
			})
			return
		}
	}

	text := string(l.input[l.pos])
	l.advance()
	l.tokens = append(l.tokens, domain.Token{
		Kind: domain.TokenPunct,
		Text: text,
		Pos:  start,
	})
}
