package extractor

import (
	"context"
	"strings"

	"declex/internal/domain"
)

// parser is the recursive-descent engine. Each Extract call owns one parser;
// there is no shared mutable state between parses.
type parser struct {
	ext     *Extractor
	ctx     context.Context
	tokens  []domain.Token
	pos     int
	lastEnd domain.Position
	doc     string
	diags   []domain.Diagnostic
	fatal   bool
	err     error
}

func (p *parser) cur() domain.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return domain.Token{Kind: domain.TokenEOF, Pos: p.lastEnd}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.Kind != domain.TokenEOF {
			p.lastEnd = endOf(t)
		}
		p.pos++
	}
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Kind == domain.TokenEOF
}

func (p *parser) is(text string) bool {
	t := p.cur()
	return t.Kind != domain.TokenEOF && t.Text == text
}

func (p *parser) isKw(text string) bool {
	t := p.cur()
	return t.Kind == domain.TokenKeyword && t.Text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.advance()
		return true
	}
	return false
}

// peekSig returns the n-th significant (non-comment) token at or after the
// cursor; n=0 is the current token.
func (p *parser) peekSig(n int) domain.Token {
	seen := 0
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Kind == domain.TokenComment {
			continue
		}
		if seen == n {
			return p.tokens[i]
		}
		seen++
	}
	return domain.Token{Kind: domain.TokenEOF, Pos: p.lastEnd}
}

// skipTrivia consumes comment tokens, remembering the last one as the doc
// candidate for the next declaration.
func (p *parser) skipTrivia() {
	for p.cur().Kind == domain.TokenComment {
		if p.ext.attachComments {
			p.doc = p.cur().Text
		}
		p.advance()
	}
}

// takeDoc claims the pending doc comment, cleaned of comment markers.
func (p *parser) takeDoc() string {
	doc := p.doc
	p.doc = ""
	return cleanComment(doc)
}

func (p *parser) canceled() bool {
	return p.ctx != nil && p.ctx.Err() != nil
}

func endOf(t domain.Token) domain.Position {
	return domain.Position{
		Offset: t.Pos.Offset + len(t.Text),
		Line:   t.Pos.Line,
		Column: t.Pos.Column + len(t.Text),
	}
}

func (p *parser) rangeFrom(start domain.Position) domain.SourceRange {
	end := p.lastEnd
	if end.Offset <= start.Offset {
		end = endOf(domain.Token{Text: " ", Pos: start})
	}
	return domain.SourceRange{Start: start, End: end}
}

// parseScope parses declarations until the closing brace of the current
// scope (or end of stream, for the global scope).
func (p *parser) parseScope(depth int) []domain.Declaration {
	var decls []domain.Declaration
	for {
		if p.canceled() {
			p.err = p.ctx.Err()
			return decls
		}
		p.skipTrivia()
		if p.atEOF() {
			return decls
		}
		if p.is("}") {
			if depth > 0 {
				return decls
			}
			// No scope to close at the global level; the parse goes on.
			p.report(domain.DiagUnbalancedDelimiter, domain.SeverityWarning, p.cur().Pos, "unmatched '}' at global scope")
			p.advance()
			continue
		}

		// extern "C" { ... } contributes to the current scope.
		if p.isKw("extern") && p.peekSig(1).Kind == domain.TokenLiteral {
			p.advance()
			p.advance()
			if p.accept("{") {
				decls = append(decls, p.parseScope(depth+1)...)
				p.expectClose("}")
			}
			continue
		}

		// Outside a class body there is no class to attach body macros to;
		// they stay ordinary attributes on whatever follows, in source order.
		var attrs []domain.Attribute
		for _, a := range p.collectAttributes("") {
			attrs = append(attrs, a.Attribute)
		}
		p.skipTrivia()

		d, ok := p.parseDeclaration(depth, "", attrs)
		if d != nil {
			decls = append(decls, *d)
		}
		if !ok && p.fatal {
			return decls
		}
	}
}

// parseDeclaration dispatches on the next significant token. className is
// the enclosing class name when parsing members, empty elsewhere; it is
// what makes positional constructor/destructor recognition possible.
// A nil, true return means the construct was consumed without producing a
// declaration (forward declarations, using directives, stray semicolons).
func (p *parser) parseDeclaration(depth int, className string, attrs []domain.Attribute) (*domain.Declaration, bool) {
	doc := p.takeDoc()
	start := p.cur().Pos

	if depth > p.ext.maxDepth {
		p.report(domain.DiagUnknownConstruct, domain.SeverityError, start, "nesting exceeds maximum depth %d", p.ext.maxDepth)
		p.syncDecl()
		return nil, false
	}

	switch {
	case p.isKw("namespace"):
		return p.parseNamespace(depth, attrs, doc, start)
	case p.isKw("class"), p.isKw("struct"):
		return p.parseClass(depth, attrs, doc, start)
	case p.isKw("template"):
		return p.parseTemplate(depth, className, attrs, doc, start)
	case p.isKw("enum"):
		return p.parseEnum(attrs, doc, start)
	case p.isKw("using"), p.isKw("typedef"), p.isKw("friend"), p.isKw("static_assert"):
		p.syncDecl()
		return nil, true
	case p.is(";"):
		p.advance()
		return nil, true
	default:
		return p.parseFuncOrVar(className, attrs, doc, start)
	}
}

func (p *parser) parseNamespace(depth int, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	p.advance() // namespace
	p.skipTrivia()

	name := ""
	if p.cur().Kind == domain.TokenIdentifier {
		name = p.cur().Text
		p.advance()
		// C++17 nested shorthand: namespace A::B { ... }
		for p.is("::") {
			p.advance()
			if p.cur().Kind == domain.TokenIdentifier {
				name += "::" + p.cur().Text
				p.advance()
			}
		}
	}

	if !p.expect("{") {
		p.syncDecl()
		return nil, false
	}
	decls := p.parseScope(depth + 1)
	p.expectClose("}")

	return &domain.Declaration{
		Kind:       domain.DeclNamespace,
		Name:       name,
		Doc:        doc,
		Attributes: attrs,
		Range:      p.rangeFrom(start),
		Namespace:  &domain.Namespace{Decls: decls},
	}, true
}

func (p *parser) parseClass(depth int, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	tag := p.cur().Text // "class" or "struct"
	p.advance()
	p.skipTrivia()

	// The class name is the last identifier before ':', '{' or ';'. This
	// steps over DLL-export macros like MYGAME_API in
	// "class MYGAME_API AUnrealCharacter".
	name := ""
	for p.cur().Kind == domain.TokenIdentifier || p.cur().Kind == domain.TokenUnknownMacro {
		isMacro := p.cur().Kind == domain.TokenUnknownMacro
		name = p.cur().Text
		p.advance()
		if isMacro && p.is("(") {
			p.skipBalancedParens()
			name = ""
		}
		p.skipTrivia()
	}
	if name == "" {
		p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, start, "expected %s name", tag)
		p.syncDecl()
		return nil, false
	}

	// Forward declaration: nothing to record.
	if p.accept(";") {
		return nil, true
	}

	p.accept("final")

	defaultAccess := domain.AccessPrivate
	if tag == "struct" {
		defaultAccess = domain.AccessPublic
	}

	var bases []domain.Base
	if p.accept(":") {
		for {
			p.skipTrivia()
			b := domain.Base{Access: defaultAccess}
			for {
				switch {
				case p.isKw("public"), p.isKw("protected"), p.isKw("private"):
					b.Access = domain.Access(p.cur().Text)
					p.advance()
				case p.isKw("virtual"):
					b.Virtual = true
					p.advance()
				default:
					goto baseName
				}
			}
		baseName:
			b.Name = p.parseTypeName()
			if b.Name == "" {
				p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected base class name")
				break
			}
			bases = append(bases, b)
			if !p.accept(",") {
				break
			}
		}
	}

	if !p.expect("{") {
		p.syncDecl()
		return nil, false
	}

	cls := &domain.Class{Tag: tag, Bases: bases}
	classAttrs := attrs
	active := defaultAccess

	for {
		if p.canceled() {
			p.err = p.ctx.Err()
			break
		}
		p.skipTrivia()
		if p.is("}") {
			break
		}
		if p.atEOF() {
			break
		}

		// Access section header switches the active section.
		if (p.isKw("public") || p.isKw("protected") || p.isKw("private")) && p.peekSig(1).Text == ":" {
			active = domain.Access(p.cur().Text)
			p.advance()
			p.advance()
			continue
		}

		// GENERATED_BODY and friends annotate the class itself, not the
		// next member; the generated members stay invisible to this parser.
		var memberAttrs []domain.Attribute
		sawBody := false
		for _, a := range p.collectAttributes(name) {
			if a.body {
				classAttrs = append(classAttrs, a.Attribute)
				sawBody = true
			} else {
				memberAttrs = append(memberAttrs, a.Attribute)
			}
		}
		if len(memberAttrs) == 0 && sawBody {
			continue
		}
		p.skipTrivia()
		if p.is("}") || p.atEOF() {
			break
		}

		d, ok := p.parseDeclaration(depth+1, name, memberAttrs)
		if d != nil {
			cls.Members = append(cls.Members, domain.Member{Access: active, Decl: *d})
		}
		if !ok && p.fatal {
			break
		}
	}

	p.expectClose("}")
	p.accept(";")

	for i := range cls.Members {
		m := &cls.Members[i]
		if m.Decl.Kind == domain.DeclFunction && m.Decl.Function.Qualifiers.Virtual {
			cls.Polymorphic = true
			break
		}
	}

	return &domain.Declaration{
		Kind:       domain.DeclClass,
		Name:       name,
		Doc:        doc,
		Attributes: classAttrs,
		Range:      p.rangeFrom(start),
		Class:      cls,
	}, true
}

func (p *parser) parseTemplate(depth int, className string, attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	var params []domain.TemplateParam

	// Stacked parameter lists (template<...> template<...>) collapse into
	// one node with a concatenated parameter list.
	for p.isKw("template") {
		p.advance()
		if !p.expect("<") {
			p.syncDecl()
			return nil, false
		}
		for {
			p.skipTrivia()
			if p.is(">") || p.atEOF() {
				break
			}
			tp, ok := p.parseTemplateParam()
			if ok {
				params = append(params, tp)
			}
			if !p.accept(",") {
				break
			}
		}
		if !p.expectClose(">") {
			p.syncDecl()
			return nil, false
		}
		p.skipTrivia()
	}

	inner, ok := p.parseDeclaration(depth, className, nil)
	if inner == nil {
		return nil, ok
	}

	return &domain.Declaration{
		Kind:       domain.DeclTemplate,
		Name:       inner.Name,
		Doc:        doc,
		Attributes: attrs,
		Range:      p.rangeFrom(start),
		Template:   &domain.Template{Params: params, Decl: inner},
	}, true
}

func (p *parser) parseTemplateParam() (domain.TemplateParam, bool) {
	if p.isKw("typename") || p.isKw("class") {
		p.advance()
		tp := domain.TemplateParam{Kind: "type"}
		if p.cur().Kind == domain.TokenIdentifier {
			tp.Name = p.cur().Text
			p.advance()
		}
		if p.is("=") {
			p.skipToParamEnd()
		}
		return tp, true
	}

	// Value parameter: TYPE NAME [= default]
	var toks []domain.Token
	for !p.atEOF() && !p.is(",") && !p.is(">") && !p.is("=") {
		toks = append(toks, p.cur())
		p.advance()
	}
	if p.is("=") {
		p.skipToParamEnd()
	}
	if len(toks) == 0 {
		p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected template parameter")
		return domain.TemplateParam{}, false
	}

	tp := domain.TemplateParam{Kind: "value"}
	last := toks[len(toks)-1]
	if last.Kind == domain.TokenIdentifier && len(toks) > 1 {
		tp.Name = last.Text
		tp.Type = typeText(toks[:len(toks)-1])
	} else {
		tp.Type = typeText(toks)
	}
	return tp, true
}

// skipToParamEnd consumes a template-parameter default up to ',' or '>'.
func (p *parser) skipToParamEnd() {
	for !p.atEOF() && !p.is(",") && !p.is(">") {
		if p.is("(") {
			p.skipBalancedParens()
			continue
		}
		p.advance()
	}
}

func (p *parser) parseEnum(attrs []domain.Attribute, doc string, start domain.Position) (*domain.Declaration, bool) {
	p.advance() // enum
	p.skipTrivia()

	e := &domain.Enum{}
	if p.isKw("class") || p.isKw("struct") {
		e.Scoped = true
		p.advance()
		p.skipTrivia()
	}

	name := ""
	if p.cur().Kind == domain.TokenIdentifier {
		name = p.cur().Text
		p.advance()
	}

	if p.accept(":") {
		var toks []domain.Token
		for !p.atEOF() && !p.is("{") && !p.is(";") {
			toks = append(toks, p.cur())
			p.advance()
		}
		e.Underlying = typeText(toks)
	}

	// Opaque declaration: enum class E : uint8;
	if p.accept(";") {
		return nil, true
	}

	if !p.expect("{") {
		p.syncDecl()
		return nil, false
	}

	for {
		p.skipTrivia()
		if p.is("}") || p.atEOF() {
			break
		}
		if p.cur().Kind != domain.TokenIdentifier {
			p.report(domain.DiagLexicalMismatch, domain.SeverityWarning, p.cur().Pos, "expected enumerator name, found %q", p.cur().Text)
			p.skipEnumerator()
			continue
		}
		e.Enumerators = append(e.Enumerators, p.cur().Text)
		p.advance()
		if p.is("=") {
			p.skipEnumerator()
		}
		if !p.accept(",") {
			break
		}
	}

	p.expectClose("}")
	p.accept(";")

	return &domain.Declaration{
		Kind:       domain.DeclEnum,
		Name:       name,
		Doc:        doc,
		Attributes: attrs,
		Range:      p.rangeFrom(start),
		Enum:       e,
	}, true
}

// skipEnumerator consumes an enumerator value up to ',' or '}'.
func (p *parser) skipEnumerator() {
	for !p.atEOF() && !p.is(",") && !p.is("}") {
		if p.is("(") {
			p.skipBalancedParens()
			continue
		}
		p.advance()
	}
}

// parseTypeName reads a possibly qualified type name with template
// arguments: Ident, A::B, std::vector<T>, SimpleClass::~SimpleClass.
// Returns "" without consuming anything when no identifier is next.
func (p *parser) parseTypeName() string {
	if p.cur().Kind != domain.TokenIdentifier {
		return ""
	}
	var sb strings.Builder
	for {
		sb.WriteString(p.cur().Text)
		p.advance()
		if p.is("<") {
			sb.WriteString(p.angleGroupText())
		}
		if p.is("::") {
			p.advance()
			sb.WriteString("::")
			if p.is("~") {
				p.advance()
				sb.WriteString("~")
			}
			// An all-caps member name after '::' classifies as an unknown
			// macro (FOO::FOO()); it is still part of the qualified id.
			if p.cur().Kind == domain.TokenIdentifier || p.cur().Kind == domain.TokenUnknownMacro {
				continue
			}
			return sb.String()
		}
		return sb.String()
	}
}

// angleGroupText consumes a balanced <...> group and returns its text.
func (p *parser) angleGroupText() string {
	var toks []domain.Token
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		switch t.Text {
		case "<":
			depth++
		case ">":
			depth--
		}
		toks = append(toks, t)
		p.advance()
		if depth == 0 {
			break
		}
	}
	return typeText(toks)
}

// cleanComment strips comment markers and joins the remaining lines, the
// same normalization the doc pipeline applies to intents.
func cleanComment(comment string) string {
	if comment == "" {
		return ""
	}
	var cleaned []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		if strings.HasPrefix(line, "//") {
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimPrefix(line, "/")
			line = strings.TrimPrefix(line, "!")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, " ")
}
