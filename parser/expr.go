// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"math"

	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/keyword"
	"github.com/archon-cnc/gscript/token"
)

// Precedence levels for the expression grammar, lowest to highest, per
// spec.md §4.2.1's table: OR, AND, =, ~, +/-, */ /%, comparison, the
// ternary IF...ELSE, **, unary !, unary +/-, ., [. Grounded on the
// teacher's leftOp/nullOp precedence-climbing tables (parser.go) for the
// climbing technique itself; the tiers and their order are the dialect's
// own, not the teacher's C-like ladder.
const (
	precLowest = iota
	precOr
	precAnd
	precEqual
	precConcat
	precAdd
	precMul
	precCompare
	precTernary
	precPow
	precUnaryNot
	precUnarySign
	precDot
	precBracket
)

type ledSpec struct {
	prec  int
	build func(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error)
}

type nudBuild func(p *Parser, opPos token.Pos) (*ast.Node, error)

var ledTable map[token.ID]ledSpec
var nudTable map[token.ID]nudBuild

func init() {
	ledTable = map[token.ID]ledSpec{
		keyword.Or:       {precOr, binOpLed(ast.OpOr, precOr, false)},
		keyword.And:      {precAnd, binOpLed(ast.OpAnd, precAnd, false)},
		keyword.Equal:    {precEqual, binOpLed(ast.OpEquals, precEqual, false)},
		keyword.Tilde:    {precConcat, binOpLed(ast.OpConcat, precConcat, false)},
		keyword.Plus:     {precAdd, binOpLed(ast.OpAdd, precAdd, false)},
		keyword.Minus:    {precAdd, binOpLed(ast.OpSub, precAdd, false)},
		keyword.Star:     {precMul, binOpLed(ast.OpMul, precMul, false)},
		keyword.Slash:    {precMul, binOpLed(ast.OpDiv, precMul, false)},
		keyword.Percent:  {precMul, binOpLed(ast.OpMod, precMul, false)},
		keyword.Lt:       {precCompare, binOpLed(ast.OpLt, precCompare, false)},
		keyword.Gt:       {precCompare, binOpLed(ast.OpGt, precCompare, false)},
		keyword.Lte:      {precCompare, binOpLed(ast.OpLte, precCompare, false)},
		keyword.Gte:      {precCompare, binOpLed(ast.OpGte, precCompare, false)},
		keyword.If:       {precTernary, ledIf},
		keyword.StarStar: {precPow, binOpLed(ast.OpPow, precPow, true)},
		keyword.Dot:      {precDot, ledDot},
		keyword.LBracket: {precBracket, ledBracket},
		keyword.LParen:   {precBracket, ledCall},
	}
	nudTable = map[token.ID]nudBuild{
		keyword.Minus:    nudNeg,
		keyword.Plus:     nudPos,
		keyword.Bang:     nudNot,
		keyword.LParen:   nudGroup,
		keyword.True:     func(p *Parser, pos token.Pos) (*ast.Node, error) { return ast.NewBool(int(pos), true), nil },
		keyword.False:    func(p *Parser, pos token.Pos) (*ast.Node, error) { return ast.NewBool(int(pos), false), nil },
		keyword.NaN:      func(p *Parser, pos token.Pos) (*ast.Node, error) { return ast.NewFloat(int(pos), math.NaN()), nil },
		keyword.Infinity: func(p *Parser, pos token.Pos) (*ast.Node, error) { return ast.NewFloat(int(pos), math.Inf(1)), nil },
	}
}

// parseExpr is the precedence-climbing core: parse a primary, then keep
// absorbing infix/postfix operators whose precedence is at least pmin.
func (p *Parser) parseExpr(pmin int) (*ast.Node, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peekTok()
		if !ok || tok.Kind != token.Keyword {
			return lhs, nil
		}
		spec, ok := ledTable[tok.Keyword]
		if !ok || spec.prec < pmin {
			return lhs, nil
		}
		p.pos++
		lhs, err = spec.build(p, lhs, tok.Pos)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok, ok := p.peekTok()
	if !ok {
		return nil, fmt.Errorf("expected an expression")
	}
	switch tok.Kind {
	case token.Int:
		p.pos++
		return ast.NewInteger(int(tok.Pos), tok.Int), nil
	case token.Float:
		p.pos++
		return ast.NewFloat(int(tok.Pos), tok.Float), nil
	case token.String:
		p.pos++
		return ast.NewString(int(tok.Pos), tok.Str), nil
	case token.Identifier:
		p.pos++
		return ast.NewParameter(int(tok.Pos), tok.Str), nil
	case token.Keyword:
		build, ok := nudTable[tok.Keyword]
		if !ok {
			return nil, fmt.Errorf("unexpected token %q", keyword.Name(tok.Keyword))
		}
		p.pos++
		return build(p, tok.Pos)
	}
	return nil, fmt.Errorf("unexpected token")
}

func binOpLed(op ast.OpKind, prec int, rightAssoc bool) func(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
	return func(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhs, err := p.parseExpr(nextMin)
		if err != nil {
			ast.Release(lhs)
			return nil, err
		}
		return ast.NewOperator(int(opPos), op, lhs, rhs), nil
	}
}

func ledDot(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
	tok, ok := p.peekTok()
	if !ok || tok.Kind != token.Identifier {
		ast.Release(lhs)
		return nil, fmt.Errorf("expected a name after '.'")
	}
	p.pos++
	rhs := ast.NewParameter(int(tok.Pos), tok.Str)
	return ast.NewOperator(int(opPos), ast.OpLookup, lhs, rhs), nil
}

func ledBracket(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
	inner, err := p.parseExpr(precLowest)
	if err != nil {
		ast.Release(lhs)
		return nil, err
	}
	if !p.expectKeyword(keyword.RBracket) {
		ast.Release(lhs)
		ast.Release(inner)
		return nil, fmt.Errorf("expected ']'")
	}
	return ast.NewOperator(int(opPos), ast.OpLookup, lhs, inner), nil
}

func ledCall(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
	if lhs.Kind != ast.Parameter {
		ast.Release(lhs)
		return nil, fmt.Errorf("cannot call a non-function value")
	}
	name := lhs.Str

	if p.expectKeyword(keyword.RParen) {
		return ast.NewFunction(int(opPos), name), nil
	}
	var args []*ast.Node
	for {
		arg, err := p.parseExpr(precLowest)
		if err != nil {
			for _, a := range args {
				ast.Release(a)
			}
			return nil, err
		}
		args = append(args, arg)
		if p.expectKeyword(keyword.Comma) {
			continue
		}
		break
	}
	if !p.expectKeyword(keyword.RParen) {
		for _, a := range args {
			ast.Release(a)
		}
		return nil, fmt.Errorf("expected ')'")
	}
	return ast.NewFunction(int(opPos), name, args...), nil
}

// ledIf implements the "value IF condition ELSE alternative" conditional
// expression.
func ledIf(p *Parser, lhs *ast.Node, opPos token.Pos) (*ast.Node, error) {
	cond, err := p.parseExpr(precOr)
	if err != nil {
		ast.Release(lhs)
		return nil, err
	}
	if !p.expectKeyword(keyword.Else) {
		ast.Release(lhs)
		ast.Release(cond)
		return nil, fmt.Errorf("expected 'ELSE'")
	}
	alt, err := p.parseExpr(precTernary)
	if err != nil {
		ast.Release(lhs)
		ast.Release(cond)
		return nil, err
	}
	return ast.NewOperator(int(opPos), ast.OpIfElse, lhs, cond, alt), nil
}

func nudNeg(p *Parser, pos token.Pos) (*ast.Node, error) {
	operand, err := p.parseExpr(precUnarySign)
	if err != nil {
		return nil, err
	}
	return ast.NewOperator(int(pos), ast.OpNeg, operand), nil
}

func nudPos(p *Parser, pos token.Pos) (*ast.Node, error) {
	return p.parseExpr(precUnarySign)
}

func nudNot(p *Parser, pos token.Pos) (*ast.Node, error) {
	operand, err := p.parseExpr(precUnaryNot)
	if err != nil {
		return nil, err
	}
	return ast.NewOperator(int(pos), ast.OpNot, operand), nil
}

func nudGroup(p *Parser, pos token.Pos) (*ast.Node, error) {
	inner, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if !p.expectKeyword(keyword.RParen) {
		ast.Release(inner)
		return nil, fmt.Errorf("expected ')'")
	}
	return inner, nil
}
