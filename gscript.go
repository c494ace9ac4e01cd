// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package gscript binds the lexer to the parser, per SPEC_FULL.md §2
// ("frontend (root package)"): a Frontend owns both halves of the pipeline
// and exposes the same incremental Feed/Finish/Reset contract the lexer
// does, so a caller never has to wire a TokenSink by hand.
package gscript

import (
	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/lexer"
	"github.com/archon-cnc/gscript/parser"
	"github.com/archon-cnc/gscript/token"
)

// StatementFunc adapts a plain function to parser.StatementSink.
type StatementFunc func(n *ast.Node)

// Statement implements parser.StatementSink.
func (f StatementFunc) Statement(n *ast.Node) { f(n) }

// ErrorFunc adapts a plain function to diag.Sink.
type ErrorFunc func(d diag.Diagnostic) bool

// Error implements diag.Sink.
func (f ErrorFunc) Error(d diag.Diagnostic) bool { return f(d) }

// Frontend is an incremental lexer+parser pair. A Frontend must not be used
// from more than one goroutine at a time, the same restriction the lexer
// itself carries (SPEC_FULL.md §1).
type Frontend struct {
	lex *lexer.Lexer
	p   *parser.Parser
}

// Option configures a new Frontend. Options are forwarded to lexer.New.
type Option = lexer.Option

// WithBufferCapacity forwards to lexer.WithBufferCapacity.
func WithBufferCapacity(n int) Option {
	return lexer.WithBufferCapacity(n)
}

// New creates a Frontend that delivers completed statements to stmts and
// diagnostics to errs. name identifies the source for diagnostic positions
// and may be empty.
func New(name string, stmts parser.StatementSink, errs diag.Sink, opts ...Option) *Frontend {
	file := token.NewFile(name)
	p := parser.New(file, stmts, errs)
	opts = append(opts, lexer.WithFile(file))
	lx := lexer.New(name, p, errs, opts...)
	return &Frontend{lex: lx, p: p}
}

// Feed appends data to the input and drives the pipeline as far as it can
// go without blocking. Feeding the concatenation of several calls produces
// exactly the tokens and statements that feeding it all at once would
// (the same chunk-invariance property the lexer guarantees).
func (fe *Frontend) Feed(data []byte) {
	fe.lex.Feed(data)
}

// Finish signals end of input, flushing any statement still in progress as
// if a trailing newline had been fed.
func (fe *Frontend) Finish() {
	fe.lex.Finish()
}

// Reset returns the Frontend to its initial state, discarding any partial
// statement. The underlying token.File's line table is cleared with it.
func (fe *Frontend) Reset() {
	fe.lex.Reset()
	fe.p.Reset()
}

// File returns the token.File used to resolve diagnostic positions.
func (fe *Frontend) File() *token.File {
	return fe.lex.File()
}

// Close finishes the input if it hasn't been already. It exists so a
// Frontend can be used with defer fe.Close() the way a Reader or Writer
// would be, without callers needing to remember the distinction between
// Finish (flush) and an idle Frontend that was never fed anything.
func (fe *Frontend) Close() error {
	fe.lex.Finish()
	return nil
}
