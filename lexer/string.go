// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/archon-cnc/gscript/diag"
)

// stateStringStart consumes the opening quote and resets the scratch
// buffer. It is only ever entered with a '"' as the next byte.
func stateStringStart(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateStringStart
	case readEOF:
		return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
	}
	if b == '"' {
		l.nextb()
	}
	l.strBuf = l.strBuf[:0]
	return stateStringBody
}

// stateStringBody consumes literal bytes up to the closing quote,
// diverting to stateStringEscape on a backslash.
func stateStringBody(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateStringBody
		case readEOF:
			return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
		}
		switch b {
		case '"':
			l.nextb()
			return stringDone(l)
		case '\n':
			return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
		case '\\':
			l.nextb()
			return stateStringEscape
		default:
			l.strBuf = append(l.strBuf, b)
			l.nextb()
		}
	}
}

// stateStringEscape dispatches on the character following a backslash.
// Single-character escapes resolve immediately; \x diverts to
// stateStringEscapeHexVar to accumulate a variable number of hex digits,
// \u and \U divert to stateStringEscapeHex to accumulate a fixed number of
// hex digits, and an octal digit diverts to stateStringEscapeOctal to
// accumulate up to three.
// The single-character set (\a \b \e \f \n \r \t \v \\ \' \" \?) matches
// spec.md §4.1.5 byte-for-byte (original_source's CASE_STR_ESC table,
// gcode_lexer.c:1071-1086).
func stateStringEscape(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateStringEscape
	case readEOF:
		return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
	}
	switch {
	case b == 'a':
		l.nextb()
		l.strBuf = append(l.strBuf, '\a')
		return stateStringBody
	case b == 'b':
		l.nextb()
		l.strBuf = append(l.strBuf, '\b')
		return stateStringBody
	case b == 'e':
		l.nextb()
		l.strBuf = append(l.strBuf, 0x1b)
		return stateStringBody
	case b == 'f':
		l.nextb()
		l.strBuf = append(l.strBuf, '\f')
		return stateStringBody
	case b == 'n':
		l.nextb()
		l.strBuf = append(l.strBuf, '\n')
		return stateStringBody
	case b == 'r':
		l.nextb()
		l.strBuf = append(l.strBuf, '\r')
		return stateStringBody
	case b == 't':
		l.nextb()
		l.strBuf = append(l.strBuf, '\t')
		return stateStringBody
	case b == 'v':
		l.nextb()
		l.strBuf = append(l.strBuf, '\v')
		return stateStringBody
	case b == '\\':
		l.nextb()
		l.strBuf = append(l.strBuf, '\\')
		return stateStringBody
	case b == '\'':
		l.nextb()
		l.strBuf = append(l.strBuf, '\'')
		return stateStringBody
	case b == '"':
		l.nextb()
		l.strBuf = append(l.strBuf, '"')
		return stateStringBody
	case b == '?':
		l.nextb()
		l.strBuf = append(l.strBuf, '?')
		return stateStringBody
	case b == 'x':
		l.nextb()
		l.escBuf = l.escBuf[:0]
		return stateStringEscapeHexVar
	case b == 'u':
		l.nextb()
		l.escBuf = l.escBuf[:0]
		l.escWant = 4
		return stateStringEscapeHex
	case b == 'U':
		l.nextb()
		l.escBuf = l.escBuf[:0]
		l.escWant = 8
		return stateStringEscapeHex
	case b >= '0' && b <= '7':
		l.escBuf = l.escBuf[:0]
		l.escBuf = append(l.escBuf, b)
		l.nextb()
		return stateStringEscapeOctal
	default:
		l.errs.Error(diag.Diagnostic{
			Kind:     diag.Lexical,
			Position: l.file.Position(l.curPos()),
			Message:  "unknown escape sequence '\\" + string(rune(b)) + "'",
		})
		l.strBuf = append(l.strBuf, b)
		l.nextb()
		return stateStringBody
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// stateStringEscapeHex accumulates exactly l.escWant hex digits: 4 for
// \uHHHH and 8 for \UHHHHHHHH, a Unicode code point re-encoded as UTF-8.
// \x has no fixed width and is handled separately by
// stateStringEscapeHexVar.
func stateStringEscapeHex(l *Lexer) stateFn {
	for len(l.escBuf) < l.escWant {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateStringEscapeHex
		case readEOF:
			return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
		}
		if !isHexDigit(b) {
			l.errs.Error(diag.Diagnostic{
				Kind:     diag.Lexical,
				Position: l.file.Position(l.curPos()),
				Message:  "incomplete escape sequence",
			})
			break
		}
		l.escBuf = append(l.escBuf, b)
		l.nextb()
	}
	v, _ := strconv.ParseUint(string(l.escBuf), 16, 32)
	l.strBuf = utf8.AppendRune(l.strBuf, rune(v))
	l.escBuf = l.escBuf[:0]
	return stateStringBody
}

// stateStringEscapeHexVar accumulates a \xHH... escape: one or more hex
// digits, stopping at the first non-hex byte, erroring if no digit follows
// the 'x' at all or if the accumulated value would exceed a byte. Unlike
// \u/\U (fixed-width, handled by stateStringEscapeHex), \x has no digit
// limit of its own; the byte-value ceiling is what ends it. Grounded on
// original_source's SCAN_STR_HEX state (gcode_lexer.c:1150).
func stateStringEscapeHexVar(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateStringEscapeHexVar
		case readEOF:
			return hexVarDone(l)
		}
		if !isHexDigit(b) {
			return hexVarDone(l)
		}
		l.escBuf = append(l.escBuf, b)
		l.nextb()
		v, _ := strconv.ParseUint(string(l.escBuf), 16, 32)
		if v > 0xff {
			l.errs.Error(diag.Diagnostic{
				Kind:     diag.Lexical,
				Position: l.file.Position(l.curPos()),
				Message:  "\\x escape value exceeds byte value",
			})
			l.escBuf = l.escBuf[:0]
			return stateStringBody
		}
	}
}

func hexVarDone(l *Lexer) stateFn {
	if len(l.escBuf) == 0 {
		l.errs.Error(diag.Diagnostic{
			Kind:     diag.Lexical,
			Position: l.file.Position(l.curPos()),
			Message:  "\\x escape requires at least one hex digit",
		})
		return stateStringBody
	}
	v, _ := strconv.ParseUint(string(l.escBuf), 16, 32)
	l.strBuf = append(l.strBuf, byte(v))
	l.escBuf = l.escBuf[:0]
	return stateStringBody
}

// stateStringEscapeOctal accumulates up to three octal digits (the first
// already consumed by stateStringEscape) into a single byte value, per
// spec.md §4.1.5's \NNN escape (original_source's SCAN_STR_OCTAL,
// gcode_lexer.c:1122-1135). \0 is this escape with a single digit.
func stateStringEscapeOctal(l *Lexer) stateFn {
	for len(l.escBuf) < 3 {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateStringEscapeOctal
		case readEOF:
			return l.errorf(l.tokStart, diag.Lexical, "unterminated string literal")
		}
		if b < '0' || b > '7' {
			break
		}
		l.escBuf = append(l.escBuf, b)
		l.nextb()
	}
	v, _ := strconv.ParseUint(string(l.escBuf), 8, 32)
	l.strBuf = append(l.strBuf, byte(v))
	l.escBuf = l.escBuf[:0]
	return stateStringBody
}

func stringDone(l *Lexer) stateFn {
	s := string(l.strBuf)
	l.strBuf = l.strBuf[:0]
	l.emitString(s)
	return l.popRet()
}
