package extractor

import (
	"strings"

	"declex/internal/domain"
)

// macroAttr is one captured macro call site, tagged with whether it is a
// body macro. Callers split the run themselves so source order survives.
type macroAttr struct {
	domain.Attribute
	body bool
}

// collectAttributes captures the run of reflection-macro call sites in front
// of the cursor, in source order. className is the enclosing class when
// parsing members: its own name in declarator position is a constructor,
// not an annotation, even when the name is macro-shaped. Arguments are
// captured as raw text, never interpreted.
func (p *parser) collectAttributes(className string) []macroAttr {
	var out []macroAttr
	for {
		p.skipTrivia()
		t := p.cur()
		if t.Kind != domain.TokenMacro && t.Kind != domain.TokenUnknownMacro {
			return out
		}
		if t.Kind == domain.TokenUnknownMacro && t.Text == className {
			return out
		}
		p.advance()

		var args []string
		if p.is("(") {
			var ok bool
			args, ok = p.captureMacroArgs(t)
			if !ok {
				continue
			}
		}

		// An unknown macro-shaped call that forms a full statement on its
		// own (UE_LOG(...);) is code, not an annotation.
		if t.Kind == domain.TokenUnknownMacro && p.is(";") {
			p.advance()
			continue
		}

		out = append(out, macroAttr{
			Attribute: domain.Attribute{Name: t.Text, Args: args},
			body:      p.ext.macros.IsBody(t.Text),
		})
	}
}

// captureMacroArgs consumes a macro's '(...)' argument list, splitting on
// top-level commas. Each argument is its tokens' text joined with single
// spaces, so `Category = "Character"` round-trips as one argument.
func (p *parser) captureMacroArgs(macro domain.Token) ([]string, bool) {
	p.advance() // '('
	depth := 1
	var args []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			args = append(args, strings.Join(cur, " "))
			cur = nil
		}
	}

	for {
		t := p.cur()
		if p.atEOF() {
			p.report(domain.DiagMacroArgumentMalformed, domain.SeverityError, macro.Pos, "unterminated argument list for %s", macro.Text)
			p.fatal = true
			return nil, false
		}

		switch t.Text {
		case "(":
			depth++
			cur = append(cur, t.Text)
		case ")":
			depth--
			if depth == 0 {
				p.advance()
				flush()
				return args, true
			}
			cur = append(cur, t.Text)
		case ",":
			if depth == 1 {
				flush()
			} else {
				cur = append(cur, t.Text)
			}
		case ";", "}":
			// The closing paren never came; give up on this annotation and
			// leave the cursor at a statement boundary.
			p.report(domain.DiagMacroArgumentMalformed, domain.SeverityWarning, macro.Pos, "unbalanced parentheses in %s argument list", macro.Text)
			if t.Text == ";" {
				p.advance()
			}
			return nil, false
		default:
			if t.Kind != domain.TokenComment {
				cur = append(cur, t.Text)
			}
		}
		p.advance()
	}
}
