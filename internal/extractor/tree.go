package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"declex/internal/domain"
)

// buildTree wraps the top-level declarations into the synthetic root
// namespace that represents the whole translation unit.
func buildTree(decls []domain.Declaration) *domain.SymbolTree {
	root := domain.Declaration{
		Kind:      domain.DeclNamespace,
		Namespace: &domain.Namespace{Decls: decls},
		Range: domain.SourceRange{
			Start: domain.Position{Line: 1, Column: 1},
			End:   domain.Position{Offset: 1, Line: 1, Column: 2},
		},
	}
	if len(decls) > 0 {
		root.Range = domain.SourceRange{
			Start: decls[0].Range.Start,
			End:   decls[len(decls)-1].Range.End,
		}
	}
	return &domain.SymbolTree{Root: root}
}

// Flatten projects a symbol tree into the flat records the store indexes:
// one Symbol per named declaration, with scope-qualified names and, for
// functions, a rendered signature.
func Flatten(tree *domain.SymbolTree, docID string) []domain.Symbol {
	if tree == nil {
		return nil
	}
	var out []domain.Symbol
	for _, d := range tree.Root.Namespace.Decls {
		flattenDecl(&d, nil, "", docID, &out)
	}
	return out
}

func flattenDecl(d *domain.Declaration, scope []string, container string, docID string, out *[]domain.Symbol) {
	if d.Kind == domain.DeclTemplate && d.Template != nil && d.Template.Decl != nil {
		flattenDecl(d.Template.Decl, scope, container, docID, out)
		return
	}
	if d.Name == "" {
		return
	}

	qualified := d.Name
	if len(scope) > 0 {
		qualified = strings.Join(scope, "::") + "::" + d.Name
	}

	sym := domain.Symbol{
		Name:      d.Name,
		Qualified: qualified,
		Kind:      symbolKind(d, container),
		DocID:     docID,
		Line:      d.Range.Start.Line,
	}
	if d.Kind == domain.DeclFunction && d.Function != nil {
		sym.Signature = signature(d.Function)
	}
	sym.ID = symbolID(docID, qualified, sym.Kind, sym.Line)
	*out = append(*out, sym)

	inner := append(scope, d.Name)
	switch d.Kind {
	case domain.DeclNamespace:
		if d.Namespace != nil {
			for i := range d.Namespace.Decls {
				flattenDecl(&d.Namespace.Decls[i], inner, "", docID, out)
			}
		}
	case domain.DeclClass:
		if d.Class != nil {
			for i := range d.Class.Members {
				flattenDecl(&d.Class.Members[i].Decl, inner, d.Name, docID, out)
			}
		}
	}
}

// symbolKind refines the declaration kind by position: functions inside a
// class become methods (or constructors/destructors), variables fields.
func symbolKind(d *domain.Declaration, container string) string {
	switch d.Kind {
	case domain.DeclFunction:
		if container == "" {
			return "function"
		}
		if d.Name == container {
			return "constructor"
		}
		if d.Name == "~"+container {
			return "destructor"
		}
		return "method"
	case domain.DeclVariable:
		if container != "" {
			return "field"
		}
		return "variable"
	default:
		return string(d.Kind)
	}
}

func signature(fn *domain.Function) string {
	parts := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		if p.Name != "" {
			parts = append(parts, p.Type+" "+p.Name)
		} else {
			parts = append(parts, p.Type)
		}
	}
	sig := "(" + strings.Join(parts, ", ") + ")"
	if fn.Qualifiers.Const {
		sig += " const"
	}
	return sig
}

func symbolID(docID, qualified, kind string, line int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s:%d", docID, qualified, kind, line)))
	return hex.EncodeToString(h[:])[:16]
}
