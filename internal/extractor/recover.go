package extractor

import (
	"fmt"

	"declex/internal/domain"
)

func (p *parser) report(kind domain.DiagnosticKind, sev domain.Severity, pos domain.Position, format string, args ...interface{}) {
	p.diags = append(p.diags, domain.Diagnostic{
		Kind:     kind,
		Severity: sev,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// expect consumes the given punctuation, reporting a mismatch when it is
// absent. The caller decides whether to resync.
func (p *parser) expect(text string) bool {
	if p.accept(text) {
		return true
	}
	p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected %q, found %q", text, p.cur().Text)
	return false
}

// expectClose consumes a closing delimiter. Hitting end of input instead is
// the one unrecoverable condition: the enclosing block cannot be finished,
// so the parse stops after recording what it has.
func (p *parser) expectClose(text string) bool {
	if p.accept(text) {
		return true
	}
	if p.atEOF() {
		p.report(domain.DiagUnbalancedDelimiter, domain.SeverityError, p.lastEnd, "missing %q at end of input", text)
		p.fatal = true
		return false
	}
	p.report(domain.DiagUnbalancedDelimiter, domain.SeverityWarning, p.cur().Pos, "expected %q, found %q", text, p.cur().Text)
	return false
}

// syncDecl skips forward to the next point where a declaration can start:
// just past a ';', just past a balanced '{...}' block, or right before the
// '}' that closes the current scope. Delimiters opened along the way are
// closed before a terminator counts.
func (p *parser) syncDecl() {
	for !p.atEOF() {
		switch p.cur().Text {
		case ";":
			p.advance()
			return
		case "{":
			p.skipBalancedBraces()
			p.accept(";")
			return
		case "}":
			return
		case "(":
			p.skipBalancedParens()
		case "[":
			p.skipBalancedBrackets()
		default:
			p.advance()
		}
	}
}

// skipBalancedBraces consumes a '{...}' block, returning the position just
// past the closing brace. An unterminated block at end of input is fatal.
func (p *parser) skipBalancedBraces() (domain.Position, bool) {
	open := p.cur().Pos
	depth := 0
	for !p.atEOF() {
		switch p.cur().Text {
		case "{":
			depth++
		case "}":
			depth--
		}
		p.advance()
		if depth == 0 {
			return p.lastEnd, true
		}
	}
	p.report(domain.DiagUnbalancedDelimiter, domain.SeverityError, open, "unterminated block opened here")
	p.fatal = true
	return p.lastEnd, false
}

func (p *parser) skipBalancedParens() bool {
	return p.skipBalanced("(", ")")
}

func (p *parser) skipBalancedBrackets() bool {
	return p.skipBalanced("[", "]")
}

func (p *parser) skipBalanced(open, close string) bool {
	at := p.cur().Pos
	depth := 0
	for !p.atEOF() {
		switch p.cur().Text {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
		if depth == 0 {
			return true
		}
	}
	p.report(domain.DiagUnbalancedDelimiter, domain.SeverityError, at, "unterminated %q group", open)
	p.fatal = true
	return false
}
