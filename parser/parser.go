// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package parser turns the lexer's token stream into an AST, one statement
// at a time. It is grounded on the teacher's precedence-climbing expression
// engine (originally parser.parseExpr/leftOp/nullOp), adapted from a
// pull model (p.l.Lex()) to a push model: the lexer calls Token as tokens
// are recognized, and Parser buffers them until an EndOfStatement arrives,
// at which point the whole statement is reduced synchronously. Buffering is
// bounded by a single statement, never by the whole input, so this remains
// an incremental parser in the same sense the lexer is incremental.
package parser

import (
	"fmt"

	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/keyword"
	"github.com/archon-cnc/gscript/token"
)

// StatementSink receives completed statements as the parser reduces them.
type StatementSink interface {
	Statement(n *ast.Node)
}

// Parser implements lexer.TokenSink: feeding it a lexer's token stream
// drives statement-at-a-time reduction.
type Parser struct {
	toks []token.Token
	pos  int

	file *token.File
	errs diag.Sink
	sink StatementSink
}

// New creates a Parser that resolves diagnostic positions against file and
// delivers reduced statements to sink.
func New(file *token.File, sink StatementSink, errs diag.Sink) *Parser {
	return &Parser{file: file, sink: sink, errs: errs}
}

// Reset discards any tokens buffered for a statement in progress, for use
// alongside lexer.Lexer.Reset when a caller abandons the current input.
func (p *Parser) Reset() {
	p.toks = p.toks[:0]
	p.pos = 0
}

// Token implements lexer.TokenSink.
func (p *Parser) Token(tok token.Token) {
	if tok.Kind == token.EndOfStatement {
		p.reduceStatement()
		return
	}
	p.toks = append(p.toks, tok)
}

func (p *Parser) reduceStatement() {
	defer func() {
		p.toks = p.toks[:0]
		p.pos = 0
	}()
	if len(p.toks) == 0 {
		return
	}
	cmd := p.toks[0]
	if cmd.Kind != token.Identifier {
		p.errorf(cmd.Pos, "expected a command name, found %s", cmd.Kind)
		return
	}
	p.pos = 1

	fields := []*ast.Node{ast.NewParameter(int(cmd.Pos), cmd.Str)}
	for p.pos < len(p.toks) {
		if !p.parseField(&fields) {
			for _, n := range fields {
				ast.Release(n)
			}
			return
		}
	}
	p.sink.Statement(ast.NewStatement(int(cmd.Pos), fields...))
}

// parseField parses one TRADITIONAL/EXTENDED field and appends it to
// fields: a KEY followed by its value chain appends as two flat siblings,
// key then value, rather than nesting the value under a call-like node,
// and a bare value chain with no key (spec.md's graceful degradation for a
// value with no preceding key) appends just the one node. This matches
// spec.md §8's worked scenarios, whose field lists are flat (e.g.
// `G1 X10 Y20.5` → [ident G1, string X, int 10, string Y, float 20.5]), and
// original_source/klippy/chelper/gcode_parser.generated.c's statement
// grammar, which conses one field onto the next with no KEY=VALUE-pairing
// nonterminal at all.
func (p *Parser) parseField(fields *[]*ast.Node) bool {
	tok := p.toks[p.pos]
	if tok.Kind == token.Identifier {
		p.pos++
		v, ok := p.parseValueChain()
		if !ok {
			return false
		}
		*fields = append(*fields, ast.NewString(int(tok.Pos), tok.Str), v)
		return true
	}
	v, ok := p.parseValueChain()
	if !ok {
		return false
	}
	*fields = append(*fields, v)
	return true
}

// parseValueChain parses one value segment, then as many Bridge-joined
// further segments as follow with no separator, folding them left into a
// chain of OpConcat nodes.
func (p *Parser) parseValueChain() (*ast.Node, bool) {
	n, ok := p.parseValueSegment()
	if !ok {
		return nil, false
	}
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Bridge {
		bridgePos := p.toks[p.pos].Pos
		p.pos++
		rhs, ok := p.parseValueSegment()
		if !ok {
			ast.Release(n)
			return nil, false
		}
		n = ast.NewOperator(int(bridgePos), ast.OpConcat, n, rhs)
	}
	return n, true
}

func (p *Parser) parseValueSegment() (*ast.Node, bool) {
	if p.pos >= len(p.toks) {
		p.errorf(p.endPos(), "expected a value")
		return nil, false
	}
	tok := p.toks[p.pos]
	switch tok.Kind {
	case token.Int:
		p.pos++
		return ast.NewInteger(int(tok.Pos), tok.Int), true
	case token.Float:
		p.pos++
		return ast.NewFloat(int(tok.Pos), tok.Float), true
	case token.String:
		p.pos++
		return ast.NewString(int(tok.Pos), tok.Str), true
	case token.Keyword:
		if tok.Keyword == keyword.LBrace {
			return p.parseBraceExpr()
		}
	}
	p.errorf(tok.Pos, "unexpected token in value position")
	return nil, false
}

func (p *Parser) parseBraceExpr() (*ast.Node, bool) {
	p.pos++ // consume LBrace
	n, err := p.parseExpr(precLowest)
	if err != nil {
		p.errorf(p.curPos(), "%v", err)
		return nil, false
	}
	if !p.expectKeyword(keyword.RBrace) {
		if n != nil {
			ast.Release(n)
		}
		p.errorf(p.curPos(), "expected '}'")
		return nil, false
	}
	return n, true
}

// peekTok returns the token at the cursor without consuming it.
func (p *Parser) peekTok() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

// expectKeyword consumes the next token if it is the keyword id.
func (p *Parser) expectKeyword(id token.ID) bool {
	tok, ok := p.peekTok()
	if !ok || tok.Kind != token.Keyword || tok.Keyword != id {
		return false
	}
	p.pos++
	return true
}

// curPos returns the position of the token at the cursor, or of the end of
// the statement if the cursor has run off the end.
func (p *Parser) curPos() token.Pos {
	if tok, ok := p.peekTok(); ok {
		return tok.Pos
	}
	return p.endPos()
}

func (p *Parser) endPos() token.Pos {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].Pos
}

// errorf reports a syntax error and aborts the current statement: the
// remaining buffered tokens are discarded by reduceStatement's deferred
// reset, which is this parser's error-recovery procedure since a statement
// is already a bounded, newline-delimited unit of work.
func (p *Parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs.Error(diag.Diagnostic{
		Kind:     diag.Syntactic,
		Position: p.file.Position(pos),
		Message:  fmt.Sprintf(format, args...),
	})
	p.pos = len(p.toks)
}
