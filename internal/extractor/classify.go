package extractor

import "declex/internal/domain"

// cppKeywords is the fixed keyword table used by the token classifier.
// Read-only process-wide data, safe for concurrent access.
var cppKeywords = map[string]bool{
	"class": true, "struct": true, "union": true, "namespace": true,
	"template": true, "typename": true, "enum": true, "using": true,
	"typedef": true, "friend": true, "extern": true, "operator": true,
	"public": true, "private": true, "protected": true,
	"virtual": true, "static": true, "const": true, "explicit": true,
	"override": true, "final": true, "inline": true, "constexpr": true,
	"mutable": true, "volatile": true, "noexcept": true,
	"void": true, "int": true, "char": true, "float": true, "double": true,
	"bool": true, "long": true, "short": true, "unsigned": true,
	"signed": true, "auto": true, "wchar_t": true,
	"default": true, "delete": true, "new": true, "this": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "return": true, "static_assert": true,
	"nullptr": true, "true": true, "false": true, "sizeof": true,
}

// classify maps each raw token to its refined syntactic role, using at most
// one token of lookahead. Identifiers in the configured macro table become
// macro tokens; identifiers that merely look like macro invocations
// (ALL_CAPS immediately before '(') become unknown-macro tokens so later
// stages can skip them safely. Stateless; the input tokens are not mutated.
func (e *Extractor) classify(tokens []domain.Token) []domain.Token {
	out := make([]domain.Token, len(tokens))
	for i, tok := range tokens {
		if tok.Kind != domain.TokenIdentifier {
			out[i] = tok
			continue
		}

		switch {
		case cppKeywords[tok.Text]:
			tok.Kind = domain.TokenKeyword
		case e.macros.Known(tok.Text):
			tok.Kind = domain.TokenMacro
		case macroShaped(tok.Text) && nextText(tokens, i) == "(" && prevText(tokens, i) != "~":
			// After '~' the name is a destructor, however macro-shaped.
			tok.Kind = domain.TokenUnknownMacro
		}
		out[i] = tok
	}
	return out
}

// nextText returns the text of the first non-comment token after index i.
func nextText(tokens []domain.Token, i int) string {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind != domain.TokenComment {
			return tokens[j].Text
		}
	}
	return ""
}

// prevText returns the text of the last non-comment token before index i.
func prevText(tokens []domain.Token, i int) string {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Kind != domain.TokenComment {
			return tokens[j].Text
		}
	}
	return ""
}

// macroShaped reports whether name follows the ALL_CAPS macro convention:
// uppercase letters, digits and underscores, with at least one letter.
func macroShaped(name string) bool {
	hasLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}
