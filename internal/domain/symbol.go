package domain

import "time"

// Document is one indexed source file.
type Document struct {
	ID      string
	Path    string
	ModTime time.Time
	Lang    string
}

// Symbol is a flat, queryable record derived from one Declaration, used by
// the symbol store and the query use case.
type Symbol struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Qualified string `json:"qualified"`
	Kind      string `json:"kind"`
	DocID     string `json:"doc_id"`
	Line      int    `json:"line"`
	Signature string `json:"signature,omitempty"`
}

// DiagnosticKind classifies a parse problem.
type DiagnosticKind string

const (
	DiagLexicalMismatch        DiagnosticKind = "lexical-mismatch"
	DiagUnbalancedDelimiter    DiagnosticKind = "unbalanced-delimiter"
	DiagUnknownConstruct       DiagnosticKind = "unknown-construct"
	DiagMacroArgumentMalformed DiagnosticKind = "macro-argument-malformed"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic records one recoverable (or, at end of stream, fatal) parse
// problem. A parse always returns the diagnostics alongside whatever part
// of the tree was built.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Severity Severity       `json:"severity"`
	Pos      Position       `json:"pos"`
	Message  string         `json:"message"`
}
