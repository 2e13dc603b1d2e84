package extractor

import (
	"strings"

	"declex/internal/domain"
)

// typeKeywords are keywords that may appear inside a type specifier.
var typeKeywords = map[string]bool{
	"const": true, "unsigned": true, "signed": true, "long": true,
	"short": true, "int": true, "char": true, "float": true,
	"double": true, "bool": true, "void": true, "auto": true,
	"wchar_t": true, "typename": true,
}

// parseFuncOrVar handles the token sequences that begin neither with a
// structural keyword nor an access label: functions, variables, constructors
// and destructors. The two are told apart by lookahead at the declarator
// name: a name immediately followed by '(' is a function, anything else a
// variable.
func (p *parser) parseFuncOrVar(className string, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	var quals domain.FuncQualifiers
	leadingConst := false

	for {
		switch {
		case p.isKw("virtual"):
			quals.Virtual = true
			p.advance()
		case p.isKw("static"):
			quals.Static = true
			p.advance()
		case p.isKw("explicit"):
			quals.Explicit = true
			p.advance()
		case p.isKw("inline"), p.isKw("constexpr"), p.isKw("mutable"), p.isKw("volatile"), p.isKw("extern"):
			p.advance()
		default:
			goto scan
		}
		p.skipTrivia()
	}

scan:
	// Destructor inside a class body: [virtual] ~Name(...)
	if p.is("~") && p.peekSig(1).Kind == domain.TokenIdentifier && p.peekSig(2).Text == "(" {
		p.advance()
		name := "~" + p.cur().Text
		p.advance()
		return p.parseFunctionRest(name, "", quals, attrs, doc, start)
	}

	// Constructor: the class name in declarator position, directly followed
	// by its parameter list. All-caps class names arrive as unknown-macro
	// tokens, so both kinds count here.
	if className != "" &&
		(p.cur().Kind == domain.TokenIdentifier || p.cur().Kind == domain.TokenUnknownMacro) &&
		p.cur().Text == className && p.peekSig(1).Text == "(" {
		p.advance()
		return p.parseFunctionRest(className, "", quals, attrs, doc, start)
	}

	var typeToks []string
	for {
		if p.atEOF() {
			p.report(domain.DiagUnknownConstruct, domain.SeverityWarning, start, "incomplete declaration at end of input")
			return nil, false
		}
		t := p.cur()
		switch {
		case t.Kind == domain.TokenKeyword && typeKeywords[t.Text]:
			if t.Text == "const" && len(typeToks) == 0 {
				leadingConst = true
			}
			typeToks = append(typeToks, t.Text)
			p.advance()
		case t.Text == "*" || t.Text == "&":
			typeToks = append(typeToks, t.Text)
			p.advance()
		case t.Kind == domain.TokenKeyword && t.Text == "operator":
			// Operator overloads are not modeled; skip the whole statement.
			p.syncDecl()
			return nil, true
		case t.Kind == domain.TokenIdentifier:
			name := p.parseTypeName()
			switch p.cur().Text {
			case "(":
				return p.parseFunctionRest(name, joinParts(typeToks), quals, attrs, doc, start)
			case ";", "=", "[", "{", ",", ":":
				return p.parseVariableRest(name, typeToks, quals, leadingConst, attrs, doc, start)
			}
			// Still inside the type specifier.
			typeToks = append(typeToks, name)
		default:
			p.report(domain.DiagUnknownConstruct, domain.SeverityWarning, t.Pos, "unexpected token %q in declaration", t.Text)
			p.syncDecl()
			return nil, false
		}
		p.skipTrivia()
	}
}

func (p *parser) parseFunctionRest(name, returnType string, quals domain.FuncQualifiers, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}

	fn := &domain.Function{ReturnType: returnType, Params: params, Qualifiers: quals}

	for {
		switch {
		case p.isKw("const"):
			fn.Qualifiers.Const = true
			p.advance()
		case p.isKw("override"):
			fn.Qualifiers.Override = true
			p.advance()
		case p.isKw("final"):
			p.advance()
		case p.isKw("noexcept"):
			p.advance()
			if p.is("(") {
				p.skipBalancedParens()
			}
		case p.is("&"):
			p.advance()
		default:
			goto tail
		}
	}

tail:
	if p.accept("=") {
		switch p.cur().Text {
		case "0":
			fn.Pure = true
			fn.Qualifiers.Virtual = true
			p.advance()
		case "default", "delete":
			p.advance()
		default:
			p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected 0, default or delete after '='")
			p.syncDecl()
			return nil, false
		}
	}

	// Constructor initializer list; consumed, not modeled. Each item is
	// "name(expr)" or "name{expr}", so the braces of a brace-init member
	// never get mistaken for the function body.
	if p.accept(":") {
		for !p.atEOF() && !p.is(";") {
			if p.cur().Kind == domain.TokenIdentifier {
				p.parseTypeName()
			}
			switch {
			case p.is("("):
				p.skipBalancedParens()
			case p.is("{"):
				p.skipBalancedBraces()
			}
			if !p.accept(",") {
				break
			}
			p.skipTrivia()
		}
	}

	switch {
	case p.accept(";"):
	case p.is("{"):
		bodyStart := p.cur().Pos
		end, closed := p.skipBalancedBraces()
		if closed {
			fn.Body = domain.SourceRange{Start: bodyStart, End: end}
			fn.IsDefinition = true
		}
		p.accept(";")
	case p.atEOF():
		p.report(domain.DiagUnknownConstruct, domain.SeverityWarning, start, "incomplete function declaration at end of input")
	default:
		p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected ';' or function body, found %q", p.cur().Text)
		p.syncDecl()
		return nil, false
	}

	return &domain.Declaration{
		Kind:       domain.DeclFunction,
		Name:       name,
		Doc:        doc,
		Attributes: attrs,
		Range:      p.rangeFrom(start),
		Function:   fn,
	}, true
}

// parseParams consumes a balanced parameter list starting at '('. Parameters
// are split on top-level commas; default arguments are dropped.
func (p *parser) parseParams() ([]domain.Param, bool) {
	if !p.expect("(") {
		p.syncDecl()
		return nil, false
	}

	var params []domain.Param
	for {
		p.skipTrivia()
		if p.is(")") || p.atEOF() {
			break
		}
		toks := p.readParamTokens()
		if param, ok := makeParam(toks); ok {
			params = append(params, param)
		}
		if !p.accept(",") {
			break
		}
	}

	if !p.accept(")") {
		if p.atEOF() {
			p.report(domain.DiagUnbalancedDelimiter, domain.SeverityError, p.lastEnd, "unclosed parameter list at end of input")
			p.fatal = true
		} else {
			p.report(domain.DiagUnbalancedDelimiter, domain.SeverityWarning, p.cur().Pos, "expected ')' in parameter list, found %q", p.cur().Text)
			p.syncDecl()
		}
		return params, false
	}
	return params, true
}

// readParamTokens collects one parameter's tokens, stopping before a
// top-level ',' or ')'. Nested parens, angle groups and brace initializers
// are kept balanced so their commas do not split the parameter.
func (p *parser) readParamTokens() []domain.Token {
	var toks []domain.Token
	paren, angle, brace := 0, 0, 0
	var prev domain.Token

	for !p.atEOF() {
		t := p.cur()
		if paren == 0 && angle == 0 && brace == 0 {
			switch t.Text {
			case ",", ")":
				return toks
			case ";", "}":
				// The closing paren never came; leave the terminator for
				// the caller to diagnose.
				return toks
			}
		}
		switch t.Text {
		case "(":
			paren++
		case ")":
			paren--
		case "{":
			brace++
		case "}":
			brace--
		case "<":
			// Only identifier< opens a template argument list; a bare '<'
			// in a default expression stays an operator.
			if prev.Kind == domain.TokenIdentifier {
				angle++
			}
		case ">":
			if angle > 0 {
				angle--
			}
		}
		if t.Kind != domain.TokenComment {
			toks = append(toks, t)
			prev = t
		}
		p.advance()
	}
	return toks
}

// makeParam derives a Param from one parameter's tokens. The name is the
// trailing identifier when one exists; everything before it is the type.
// Returns false for empty parameters and the lone "void" marker.
func makeParam(toks []domain.Token) (domain.Param, bool) {
	// Drop the default argument.
	for i, t := range toks {
		if t.Text == "=" {
			toks = toks[:i]
			break
		}
	}
	if len(toks) == 0 {
		return domain.Param{}, false
	}
	if len(toks) == 1 && toks[0].Text == "void" {
		return domain.Param{}, false
	}

	// Variadic marker "..." arrives as three '.' tokens.
	if allDots(toks) {
		return domain.Param{Type: "..."}, true
	}

	last := toks[len(toks)-1]
	if len(toks) >= 2 && last.Kind == domain.TokenIdentifier && toks[len(toks)-2].Text != "::" {
		return domain.Param{Name: last.Text, Type: typeText(toks[:len(toks)-1])}, true
	}
	return domain.Param{Type: typeText(toks)}, true
}

func allDots(toks []domain.Token) bool {
	for _, t := range toks {
		if t.Text != "." {
			return false
		}
	}
	return len(toks) > 0
}

func (p *parser) parseVariableRest(name string, typeToks []string, quals domain.FuncQualifiers, leadingConst bool, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	v := &domain.Variable{
		Qualifiers: domain.VarQualifiers{Static: quals.Static, Const: leadingConst},
	}

	typ := joinParts(typeToks)
	if leadingConst {
		typ = strings.TrimPrefix(typ, "const ")
	}

	for p.is("[") {
		p.skipBalancedBrackets()
		typ += "[]"
	}
	v.Type = typ

	// Bitfield width; consumed, not modeled.
	if p.accept(":") {
		for !p.atEOF() && !p.is(";") && !p.is(",") && !p.is("=") {
			p.advance()
		}
	}

	if p.is("=") || p.is("{") {
		initStart := p.cur().Pos
		if p.is("=") {
			p.advance()
		}
		for !p.atEOF() && !p.is(";") && !p.is(",") {
			switch {
			case p.is("("):
				p.skipBalancedParens()
			case p.is("{"):
				p.skipBalancedBraces()
			case p.is("["):
				p.skipBalancedBrackets()
			default:
				p.advance()
			}
		}
		v.Init = domain.SourceRange{Start: initStart, End: p.lastEnd}
	}

	// Extra declarators in the same statement are consumed but only the
	// first is modeled.
	if p.is(",") {
		p.syncDecl()
	} else if !p.accept(";") {
		if p.atEOF() {
			p.report(domain.DiagUnknownConstruct, domain.SeverityWarning, start, "incomplete variable declaration at end of input")
		} else {
			p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected ';' after variable declaration, found %q", p.cur().Text)
			p.syncDecl()
		}
	}

	return &domain.Declaration{
		Kind:       domain.DeclVariable,
		Name:       name,
		Doc:        doc,
		Attributes: attrs,
		Range:      p.rangeFrom(start),
		Variable:   v,
	}, true
}

// typeText renders tokens back into readable type syntax.
func typeText(toks []domain.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return joinParts(parts)
}

var noSpaceBefore = map[string]bool{
	"::": true, "<": true, ">": true, "*": true, "&": true,
	",": true, "(": true, ")": true, "[": true, "]": true, ".": true,
}

var noSpaceAfter = map[string]bool{
	"::": true, "<": true, "~": true, "(": true, "[": true, ".": true,
}

func joinParts(parts []string) string {
	var sb strings.Builder
	prev := ""
	for i, part := range parts {
		if i > 0 && !noSpaceAfter[prev] && !noSpaceBefore[part] {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
		prev = part
	}
	return sb.String()
}
