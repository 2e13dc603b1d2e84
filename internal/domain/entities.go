package domain

// TokenKind is the syntactic role of a token. The lexer emits the raw roles
// (identifier, punctuation, literal, comment); the extractor's classifier
// refines identifiers into keywords and macro names.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenKeyword
	TokenMacro        // configured reflection-macro name (UCLASS, UPROPERTY, ...)
	TokenUnknownMacro // macro-shaped identifier: ALL_CAPS immediately before '('
	TokenPunct
	TokenLiteral
	TokenComment
)

// Position locates a byte in the source a token stream was produced from.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceRange spans [Start, End) in source bytes.
type SourceRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the range was never set.
func (r SourceRange) IsZero() bool {
	return r.Start == Position{} && r.End == Position{}
}

// Token is one lexical token. Immutable once produced.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

// Attribute is a captured reflection-macro call site attached to the
// declaration that follows it. Arguments are raw token texts in source
// order; they are never interpreted.
type Attribute struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// DeclKind tags the variant of a Declaration.
type DeclKind string

const (
	DeclNamespace DeclKind = "namespace"
	DeclClass     DeclKind = "class"
	DeclFunction  DeclKind = "function"
	DeclVariable  DeclKind = "variable"
	DeclTemplate  DeclKind = "template"
	DeclEnum      DeclKind = "enum"
)

// Declaration is a named C++ construct. Exactly one variant pointer is
// populated, matching Kind.
type Declaration struct {
	Kind       DeclKind    `json:"kind"`
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Range      SourceRange `json:"range"`

	Namespace *Namespace `json:"namespace,omitempty"`
	Class     *Class     `json:"class,omitempty"`
	Function  *Function  `json:"function,omitempty"`
	Variable  *Variable  `json:"variable,omitempty"`
	Template  *Template  `json:"template,omitempty"`
	Enum      *Enum      `json:"enum,omitempty"`
}

// Namespace owns the declarations of one namespace scope in source order.
type Namespace struct {
	Decls []Declaration `json:"decls,omitempty"`
}

// Access is a C++ member access level.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// Base is one entry of a class's base-class list.
type Base struct {
	Name    string `json:"name"`
	Access  Access `json:"access"`
	Virtual bool   `json:"virtual,omitempty"`
}

// Member is a class member declaration together with the access section it
// was declared under. Members stay in whole-class source order; per-section
// order falls out of that.
type Member struct {
	Access Access      `json:"access"`
	Decl   Declaration `json:"decl"`
}

// Class is a class or struct definition.
type Class struct {
	Tag         string   `json:"tag"` // "class" or "struct"
	Bases       []Base   `json:"bases,omitempty"`
	Members     []Member `json:"members,omitempty"`
	Polymorphic bool     `json:"polymorphic,omitempty"`
}

// MembersIn returns the member declarations of one access section, in
// source order.
func (c *Class) MembersIn(access Access) []Declaration {
	var decls []Declaration
	for _, m := range c.Members {
		if m.Access == access {
			decls = append(decls, m.Decl)
		}
	}
	return decls
}

// Param is one function parameter.
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// FuncQualifiers are the qualifiers captured on a function.
type FuncQualifiers struct {
	Virtual  bool `json:"virtual,omitempty"`
	Static   bool `json:"static,omitempty"`
	Const    bool `json:"const,omitempty"`
	Explicit bool `json:"explicit,omitempty"`
	Override bool `json:"override,omitempty"`
}

// Function is a member function, free function, constructor, or destructor.
// Constructors have an empty return type; destructor names keep the '~'.
type Function struct {
	ReturnType   string         `json:"return_type,omitempty"`
	Params       []Param        `json:"params,omitempty"`
	Qualifiers   FuncQualifiers `json:"qualifiers"`
	Pure         bool           `json:"pure,omitempty"`
	IsDefinition bool           `json:"is_definition,omitempty"`
	Body         SourceRange    `json:"body,omitempty"` // opaque, never descended into
}

// VarQualifiers are the qualifiers captured on a variable.
type VarQualifiers struct {
	Static bool `json:"static,omitempty"`
	Const  bool `json:"const,omitempty"`
}

// Variable is a member or namespace-scope variable.
type Variable struct {
	Type       string        `json:"type"`
	Qualifiers VarQualifiers `json:"qualifiers"`
	Init       SourceRange   `json:"init,omitempty"` // opaque initializer bytes
}

// TemplateParam is one template parameter: a type parameter
// (typename/class NAME) or a value parameter (TYPE NAME).
type TemplateParam struct {
	Kind string `json:"kind"` // "type" or "value"
	Name string `json:"name"`
	Type string `json:"type,omitempty"` // value parameters only
}

// Template wraps exactly one templated declaration. The wrapped declaration
// is never itself a Template: stacked parameter lists collapse into one node.
type Template struct {
	Params []TemplateParam `json:"params"`
	Decl   *Declaration    `json:"decl"`
}

// Enum is an enum or enum class definition.
type Enum struct {
	Scoped      bool     `json:"scoped,omitempty"`
	Underlying  string   `json:"underlying,omitempty"`
	Enumerators []string `json:"enumerators,omitempty"`
}

// SymbolTree is the result of one parse: the global scope as a root
// namespace exclusively owning the declaration forest. Immutable after
// construction.
type SymbolTree struct {
	Root Declaration `json:"root"`
}

// Walk visits every declaration in the tree in source order, including
// class members and template-wrapped declarations. Returning false from fn
// stops descent into that declaration's children.
func (t *SymbolTree) Walk(fn func(d *Declaration, depth int) bool) {
	if t.Root.Namespace == nil {
		return
	}
	for i := range t.Root.Namespace.Decls {
		walkDecl(&t.Root.Namespace.Decls[i], 0, fn)
	}
}

func walkDecl(d *Declaration, depth int, fn func(d *Declaration, depth int) bool) {
	if !fn(d, depth) {
		return
	}
	switch d.Kind {
	case DeclNamespace:
		for i := range d.Namespace.Decls {
			walkDecl(&d.Namespace.Decls[i], depth+1, fn)
		}
	case DeclClass:
		for i := range d.Class.Members {
			walkDecl(&d.Class.Members[i].Decl, depth+1, fn)
		}
	case DeclTemplate:
		if d.Template.Decl != nil {
			walkDecl(d.Template.Decl, depth+1, fn)
		}
	}
}
