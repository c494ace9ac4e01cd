// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

import (
	"strings"

	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/keyword"
	"github.com/archon-cnc/gscript/token"
)

// stateExprStart consumes the opening '{' of an embedded expression and
// emits it as an explicit LBrace token, so the parser's expression engine
// sees the same bracketing the source did.
func stateExprStart(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateExprStart
	case readEOF:
		return l.errorf(l.tokStart, diag.Syntactic, "unterminated expression")
	}
	if b == '{' {
		l.nextb()
	}
	l.emitKeyword(keyword.LBrace)
	return stateExprToken
}

// stateExprToken is the expression tokenizer's main loop: literals,
// identifiers/keywords and operators, until the matching '}' returns
// control to whatever was scanning the enclosing field.
func stateExprToken(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateExprToken
		case readEOF:
			return l.errorf(l.tokStart, diag.Syntactic, "unterminated expression")
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.nextb()
		case b == '\n':
			return l.errorf(l.tokStart, diag.Syntactic, "unterminated expression")
		case b == '}':
			pos := l.curPos()
			l.nextb()
			l.emit(token.Token{Kind: token.Keyword, Pos: pos, Keyword: keyword.RBrace})
			return l.popRet()
		case b == '{':
			return l.errorf(l.curPos(), diag.Syntactic, "nested '{' is not allowed in an expression")
		case b == '"':
			l.startToken()
			l.retStack = append(l.retStack, stateExprToken)
			return stateStringStart
		case b == '.':
			return exprDotOrNumber(l)
		case b >= '0' && b <= '9':
			l.startToken()
			l.numSign = 1
			l.retStack = append(l.retStack, stateExprToken)
			return stateNumberBase
		case isIdentStartByte(b):
			l.startToken()
			return stateExprIdent
		default:
			return exprPunct(l, b)
		}
	}
}

// exprDotOrNumber disambiguates a leading '.' between the member-access
// operator and a float literal like ".5".
func exprDotOrNumber(l *Lexer) stateFn {
	dotPos := l.curPos()
	l.nextb()
	b, r := l.peekb()
	switch r {
	case readSuspend:
		l.tokStart = dotPos
		return stateExprDotPending
	case readEOF:
		l.emit(token.Token{Kind: token.Keyword, Pos: dotPos, Keyword: keyword.Dot})
		return stateExprToken
	}
	if b >= '0' && b <= '9' {
		l.backup()
		l.tokStart = dotPos
		l.numSign = 1
		l.retStack = append(l.retStack, stateExprToken)
		return stateNumberBase
	}
	l.emit(token.Token{Kind: token.Keyword, Pos: dotPos, Keyword: keyword.Dot})
	return stateExprToken
}

func stateExprDotPending(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateExprDotPending
	case readEOF:
		l.emit(token.Token{Kind: token.Keyword, Pos: l.tokStart, Keyword: keyword.Dot})
		return stateExprToken
	}
	if b >= '0' && b <= '9' {
		// The '.' was consumed before the suspend, so the literal starts
		// out as a decimal fraction here instead of re-reading it.
		l.numSign = 1
		l.numBase = 10
		l.numIsFloat = true
		l.numBuf = append(l.numBuf, '.')
		l.retStack = append(l.retStack, stateExprToken)
		return stateNumberDigits
	}
	l.emit(token.Token{Kind: token.Keyword, Pos: l.tokStart, Keyword: keyword.Dot})
	return stateExprToken
}

// stateExprIdent accumulates an identifier and resolves it against the
// word-keyword table (or, and, if, else, true, false, nan, infinity),
// canonicalizing case only for that lookup; anything else is forwarded
// verbatim as an Identifier for the parser to treat as a parameter or
// function name.
func stateExprIdent(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateExprIdent
		case readEOF:
			return exprIdentDone(l)
		}
		if !isIdentByte(b) {
			return exprIdentDone(l)
		}
		l.tok = append(l.tok, b)
		l.nextb()
	}
}

func exprIdentDone(l *Lexer) stateFn {
	name := string(l.tok)
	l.tok = l.tok[:0]
	if id, ok := keyword.Lookup(strings.ToUpper(name)); ok && keyword.IsWord(id) {
		l.emitKeyword(id)
	} else {
		l.emitIdentifier(name)
	}
	return stateExprToken
}

// exprPunct scans single- and double-byte operators. '*', '<' and '>' need
// one byte of lookahead to distinguish "**"/"<="/">=" from their
// single-byte forms; stateExprPunct2 carries that lookahead across a
// possible suspend.
func exprPunct(l *Lexer, b byte) stateFn {
	pos := l.curPos()
	l.nextb()
	switch b {
	case '*', '<', '>':
		l.punctPos = pos
		l.punctFirst = b
		return stateExprPunct2
	default:
		id, ok := keyword.Lookup(string(rune(b)))
		if !ok {
			return l.errorf(pos, diag.Lexical, "unexpected character %q in expression", b)
		}
		l.emit(token.Token{Kind: token.Keyword, Pos: pos, Keyword: id})
		return stateExprToken
	}
}

func stateExprPunct2(l *Lexer) stateFn {
	var single, double token.ID
	var wantSecond byte
	switch l.punctFirst {
	case '*':
		single, double, wantSecond = keyword.Star, keyword.StarStar, '*'
	case '<':
		single, double, wantSecond = keyword.Lt, keyword.Lte, '='
	case '>':
		single, double, wantSecond = keyword.Gt, keyword.Gte, '='
	}
	b2, r := l.peekb()
	switch r {
	case readSuspend:
		return stateExprPunct2
	case readEOF:
		l.emit(token.Token{Kind: token.Keyword, Pos: l.punctPos, Keyword: single})
		return stateExprToken
	}
	if b2 == wantSecond {
		l.nextb()
		l.emit(token.Token{Kind: token.Keyword, Pos: l.punctPos, Keyword: double})
		return stateExprToken
	}
	l.emit(token.Token{Kind: token.Keyword, Pos: l.punctPos, Keyword: single})
	return stateExprToken
}
