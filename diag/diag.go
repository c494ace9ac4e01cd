// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package diag defines the diagnostic shape both the lexer and the parser
// report through: a Kind, a resolved source Position, and a free-form
// human-readable message, per SPEC_FULL.md §3.1 and spec.md §7.
package diag

import (
	"fmt"

	"github.com/archon-cnc/gscript/token"
)

// Kind classifies a diagnostic per the error taxonomy in spec.md §7.
type Kind int

const (
	// Lexical covers malformed literals, unterminated strings, illegal
	// escapes, and disallowed characters.
	Lexical Kind = iota
	// Syntactic covers parser-detected token mismatches and unterminated
	// expressions.
	Syntactic
	// SemanticInLexer covers dialect rules enforced by the lexer itself,
	// such as an EXTENDED argument missing its '='.
	SemanticInLexer
	// Resource covers allocation failures during token or node
	// construction.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case SemanticInLexer:
		return "semantic"
	case Resource:
		return "resource"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported error. It is always reported through a
// Sink and never aborts the lexer or parser; see spec.md §7.
type Diagnostic struct {
	Kind     Kind
	Position token.Position
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Position, d.Kind, d.Message)
}

// Sink receives diagnostics as they're produced. The returned bool is
// advisory per spec.md §9's open question: neither the lexer nor the parser
// looks at it. Both continue parsing after every diagnostic and log nothing
// about the returned value (see SPEC_FULL.md §3.1).
type Sink interface {
	Error(d Diagnostic) bool
}
