// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/archon-cnc/gscript/diag"
)

// Numeric literal scanning is grounded on the teacher's state/num.go: a
// small chain of StateFns for sign, base prefix, digits, and exponent,
// except here every field they'd have kept as a local variable lives on
// Lexer instead, since a literal can straddle a Feed boundary at any
// point. math/big is used only to decide, once the full literal is known,
// whether it fits an int64 or needs to become a float64: it never crosses
// this package's API boundary.

// stateNumberStart consumes an optional leading sign. l.numSign doubles as
// a "have we done this yet" flag: 0 means not yet, so it is safe to
// re-enter after a suspend before any sign byte has been decided.
func stateNumberStart(l *Lexer) stateFn {
	if l.numSign == 0 {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateNumberStart
		case readEOF:
			l.numSign = 1
			return finishNumber(l)
		}
		switch b {
		case '-':
			l.numSign = -1
			l.nextb()
		case '+':
			l.numSign = 1
			l.nextb()
		default:
			l.numSign = 1
		}
	}
	return stateNumberBase
}

// stateNumberBase recognizes a "0x"/"0b"/"0o" radix prefix.
func stateNumberBase(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateNumberBase
	case readEOF:
		return finishNumber(l)
	}
	if b != '0' {
		l.numBase = 10
		return stateNumberDigits
	}
	l.nextb()
	return stateNumberAfterZero
}

func stateNumberAfterZero(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateNumberAfterZero
	case readEOF:
		l.numBuf = append(l.numBuf, '0')
		return finishNumber(l)
	}
	switch {
	case b == 'x' || b == 'X':
		l.nextb()
		l.numBase = 16
	case b == 'b' || b == 'B':
		l.nextb()
		l.numBase = 2
	case b == 'o' || b == 'O':
		l.nextb()
		l.numBase = 8
	case b >= '0' && b <= '9':
		// A bare leading zero directly followed by a digit is an octal
		// literal (spec.md §4.1.4's "0755"), not decimal: matches
		// original_source's SCAN_NUMBER_BASE default branch, which enters
		// SCAN_OCTAL on any digit after a leading zero with no prefix
		// letter at all.
		l.numBase = 8
	default:
		l.numBuf = append(l.numBuf, '0')
		l.numBase = 10
	}
	return stateNumberDigits
}

func isDigitForBase(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	default:
		return b >= '0' && b <= '9'
	}
}

// stateNumberDigits consumes the integer part (and, for base 10 and 16,
// recognizes a fractional part and exponent that turn this into a float).
func stateNumberDigits(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateNumberDigits
		case readEOF:
			return finishNumber(l)
		}
		if isDigitForBase(b, l.numBase) {
			l.numBuf = append(l.numBuf, b)
			l.nextb()
			continue
		}
		if b == '.' && !l.numIsFloat && (l.numBase == 10 || l.numBase == 16) {
			l.numIsFloat = true
			l.numBuf = append(l.numBuf, b)
			l.nextb()
			continue
		}
		if l.numBase == 10 && (b == 'e' || b == 'E') {
			l.numIsFloat = true
			l.numBuf = append(l.numBuf, b)
			l.nextb()
			return stateNumberExponentSign
		}
		if l.numBase == 16 && (b == 'p' || b == 'P') {
			l.numIsFloat = true
			l.numBuf = append(l.numBuf, b)
			l.nextb()
			return stateNumberExponentSign
		}
		break
	}
	return finishNumber(l)
}

func stateNumberExponentSign(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateNumberExponentSign
	case readEOF:
		return finishNumber(l)
	}
	if b == '+' || b == '-' {
		l.numBuf = append(l.numBuf, b)
		l.nextb()
	}
	return stateNumberExponentDigits
}

func stateNumberExponentDigits(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateNumberExponentDigits
		case readEOF:
			return finishNumber(l)
		}
		if b >= '0' && b <= '9' {
			l.numBuf = append(l.numBuf, b)
			l.nextb()
			continue
		}
		break
	}
	return finishNumber(l)
}

// finishNumber parses the accumulated digits, applies the sign, and emits
// an Int or Float token, then resumes whatever the value was for.
func finishNumber(l *Lexer) stateFn {
	sign := l.numSign
	base := l.numBase
	isFloat := l.numIsFloat
	digits := string(l.numBuf)
	l.numBuf = l.numBuf[:0]
	l.numSign = 0
	l.numBase = 0
	l.numIsFloat = false

	if digits == "" {
		digits = "0"
	}

	if isFloat {
		lit := digits
		if base == 16 {
			lit = "0x" + digits
		}
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			l.errs.Error(diag.Diagnostic{
				Kind:     diag.Lexical,
				Position: l.file.Position(l.tokStart),
				Message:  fmt.Sprintf("malformed float literal %q", lit),
			})
			v = 0
		}
		l.emitFloat(float64(sign) * v)
		return l.popRet()
	}

	bi := new(big.Int)
	if _, ok := bi.SetString(digits, base); !ok {
		l.errs.Error(diag.Diagnostic{
			Kind:     diag.Lexical,
			Position: l.file.Position(l.tokStart),
			Message:  fmt.Sprintf("malformed integer literal %q", digits),
		})
		l.emitInt(0)
		return l.popRet()
	}
	if sign < 0 {
		bi.Neg(bi)
	}
	if bi.IsInt64() {
		l.emitInt(bi.Int64())
		return l.popRet()
	}
	// Only decimal and hex licence the overflow-to-float fallback (spec.md
	// §4.1.4); binary and octal literals that exceed int64 are a lexical
	// error instead, matching original_source's SCAN_BINARY/SCAN_OCTAL
	// states (gcode_lexer.c:1296-1322).
	switch base {
	case 2:
		l.errs.Error(diag.Diagnostic{
			Kind:     diag.Lexical,
			Position: l.file.Position(l.tokStart),
			Message:  "binary literal exceeds maximum value",
		})
		l.emitInt(0)
	case 8:
		l.errs.Error(diag.Diagnostic{
			Kind:     diag.Lexical,
			Position: l.file.Position(l.tokStart),
			Message:  "octal literal exceeds maximum value",
		})
		l.emitInt(0)
	default:
		f := new(big.Float).SetInt(bi)
		fv, _ := f.Float64()
		l.emitFloat(fv)
	}
	return l.popRet()
}
