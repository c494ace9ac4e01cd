// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

import (
	"strings"

	"github.com/archon-cnc/gscript/diag"
)

// beginValue records cont as the state to resume once the upcoming value
// (a number, a quoted string, or a brace expression) has been fully
// scanned, and dispatches on the next byte to pick the right scanner. cont
// is also where control returns after a Bridge token, so that
// `"a"{b}"c"` scans as three bridged segments of one field.
func beginValue(l *Lexer, cont stateFn) stateFn {
	l.valueCont = cont
	return stateDispatchValue
}

func stateDispatchValue(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateDispatchValue
	case readEOF:
		return l.errorf(l.curPos(), diag.Lexical, "expected a value before end of input")
	}
	l.startToken()
	switch {
	case b == '"':
		l.retStack = append(l.retStack, l.valueCont)
		return stateStringStart
	case b == '{':
		l.retStack = append(l.retStack, l.valueCont)
		return stateExprStart
	case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		l.retStack = append(l.retStack, l.valueCont)
		return stateNumberStart
	default:
		return l.errorf(l.curPos(), diag.Lexical, "expected a value, found %q", b)
	}
}

// stateAfterValueSegmentTraditional and stateAfterValueSegmentExtended
// implement the Bridge rule: a quote or brace immediately following a
// value, with no intervening whitespace, starts another segment of the
// same field rather than a new field (spec.md's resolution of implicit
// concatenation).
func stateAfterValueSegmentTraditional(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateAfterValueSegmentTraditional
	case readEOF:
		return finalizeStatement(l)
	}
	if b == '"' || b == '{' {
		l.startToken()
		l.emitBridge()
		return beginValue(l, stateAfterValueSegmentTraditional)
	}
	return stateArgsTraditional
}

func stateAfterValueSegmentExtended(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateAfterValueSegmentExtended
	case readEOF:
		return finalizeStatement(l)
	}
	if b == '"' || b == '{' {
		l.startToken()
		l.emitBridge()
		return beginValue(l, stateAfterValueSegmentExtended)
	}
	return stateArgsExtended
}

// stateArgsTraditional scans classic single-letter-key fields: "X10",
// "Y-5.2", each key directly abutting its value with no separating space.
func stateArgsTraditional(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateArgsTraditional
		case readEOF:
			return finalizeStatement(l)
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.nextb()
		case b == '\n':
			l.nextb()
			return finalizeStatement(l)
		case b == ';':
			l.nextb()
			return commentFollowsStatement(l)
		case b == '*':
			l.nextb()
			return stateChecksum
		case (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
			l.startToken()
			l.nextb()
			l.emitIdentifier(strings.ToUpper(string(rune(b))))
			return stateAfterTraditionalKey
		default:
			// Not a key letter: a bare value with no key (spec.md's
			// graceful-degradation rule), or, if it isn't a value start
			// either, stateDispatchValue reports the lexical error.
			return beginValue(l, stateAfterValueSegmentTraditional)
		}
	}
}

// stateAfterTraditionalKey follows a TRADITIONAL key letter: an optional
// '=' before the value (spec.md §4.1.2's "G1 X=10"), a value abutting the
// key directly, or nothing at all, which is legal and yields an empty
// string value (spec.md §8 scenario 6), matching original_source's
// SCAN_AFTER_TRADITIONAL_KEY state and end_arg_segment's "Empty value"
// path for ARG_TRADITIONAL when no value followed.
func stateAfterTraditionalKey(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateAfterTraditionalKey
	case readEOF:
		l.startToken()
		l.emitString("")
		return finalizeStatement(l)
	}
	switch {
	case b == '=':
		l.nextb()
		return beginValue(l, stateAfterValueSegmentTraditional)
	case b == '"' || b == '{' || b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		return beginValue(l, stateAfterValueSegmentTraditional)
	case b == '\n':
		l.nextb()
		l.startToken()
		l.emitString("")
		return finalizeStatement(l)
	case b == ';':
		l.nextb()
		l.startToken()
		l.emitString("")
		return commentFollowsStatement(l)
	case b == '*':
		l.nextb()
		l.startToken()
		l.emitString("")
		return stateChecksum
	default:
		// Whitespace, or a non-value byte that starts the next field (e.g.
		// another key letter): this key has no value.
		l.startToken()
		l.emitString("")
		return stateArgsTraditional
	}
}

// stateArgsExtended scans KEY=VALUE fields separated by whitespace.
func stateArgsExtended(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateArgsExtended
		case readEOF:
			return finalizeStatement(l)
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.nextb()
		case b == '\n':
			l.nextb()
			return finalizeStatement(l)
		case b == ';':
			l.nextb()
			return commentFollowsStatement(l)
		case b == '*':
			l.nextb()
			return stateChecksum
		case isIdentStartByte(b):
			l.startToken()
			return stateArgsExtendedKey
		default:
			return beginValue(l, stateAfterValueSegmentExtended)
		}
	}
}

func stateArgsExtendedKey(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateArgsExtendedKey
		case readEOF:
			return extendedKeyDone(l, false)
		}
		if !isIdentByte(b) {
			return extendedKeyDone(l, true)
		}
		l.tok = append(l.tok, b)
		l.nextb()
	}
}

func extendedKeyDone(l *Lexer, sawTerminator bool) stateFn {
	key := string(l.tok)
	l.tok = l.tok[:0]
	if !sawTerminator {
		return l.errorf(l.curPos(), diag.SemanticInLexer, "extended argument %q missing '='", key)
	}
	b, _ := l.peekb() // sawTerminator guarantees a buffered byte
	if b != '=' {
		return l.errorf(l.curPos(), diag.SemanticInLexer, "extended argument %q missing '='", key)
	}
	keyStart := l.tokStart
	l.nextb() // consume '='
	l.tokStart = keyStart
	l.emitIdentifier(key)
	return beginValue(l, stateAfterValueSegmentExtended)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

// stateChecksum discards the digits of a trailing "*NNN" line checksum.
// Klipper validates this sum against the raw line bytes it received over
// a transport that can drop or reorder packets; gscript's callers operate
// on an already-reliable byte stream (see DESIGN.md's checksum decision), so the
// checksum is recognized and stripped rather than verified.
func stateChecksum(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateChecksum
		case readEOF:
			return finalizeStatement(l)
		}
		switch {
		case b >= '0' && b <= '9':
			l.nextb()
		case b == ' ' || b == '\t' || b == '\r':
			l.nextb()
		case b == '\n':
			l.nextb()
			return finalizeStatement(l)
		case b == ';':
			l.nextb()
			return commentFollowsStatement(l)
		default:
			return l.errorf(l.curPos(), diag.Lexical, "unexpected character %q after checksum", b)
		}
	}
}

// stateArgsSkipLeadingSpace drops the run of spaces and tabs between the
// RAW command name and its verbatim message (e.g. "M117   Hello" yields
// "Hello").
func stateArgsSkipLeadingSpace(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateArgsSkipLeadingSpace
		case readEOF:
			return finalizeStatement(l)
		}
		if b != ' ' && b != '\t' {
			return stateArgsRawDispatch
		}
		l.nextb()
	}
}

// stateArgsRawDispatch decides whether the RAW message's first segment is a
// quoted string or embedded expression (no literal text precedes it, so no
// Bridge is emitted before it, matching the rule beginValue's other callers
// use for a field's first value segment) or literal message text.
func stateArgsRawDispatch(l *Lexer) stateFn {
	b, r := l.peekb()
	switch r {
	case readSuspend:
		return stateArgsRawDispatch
	case readEOF:
		return finalizeStatement(l)
	}
	if b == '"' || b == '{' {
		return beginValue(l, stateAfterValueSegmentRaw)
	}
	l.startToken()
	return stateRawMessage
}

// stateRawMessage accumulates literal message bytes verbatim, with no
// comment or checksum handling, until the next newline or a '"'/'{' that
// starts a nested string or embedded expression. A quote or brace mid
// message emits the literal text seen so far (if any) followed by a
// Bridge and diverts into the real value scanners, the same join rule
// TRADITIONAL/EXTENDED fields use for adjacent value segments (spec.md
// §4.1.2/§4.1.5; original_source's SCAN_ARG_VALUE, gcode_lexer.c ~L935-960).
func stateRawMessage(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateRawMessage
		case readEOF:
			return rawMessageDone(l)
		}
		switch b {
		case '\n':
			l.nextb()
			return rawMessageDone(l)
		case '"', '{':
			if len(l.tok) > 0 {
				l.emitString(string(l.tok))
				l.tok = l.tok[:0]
			}
			l.startToken()
			l.emitBridge()
			return beginValue(l, stateAfterValueSegmentRaw)
		}
		l.tok = append(l.tok, b)
		l.nextb()
	}
}

// stateAfterValueSegmentRaw resumes RAW message scanning once a bridged
// quoted string or embedded expression has finished: another immediately
// adjacent quote or brace starts a further bridged segment, and literal
// message text that follows on the same line is joined to the segment by a
// Bridge too. Whitespace right after the segment is held in l.tok until it
// is known whether more text follows; whitespace that only runs to the end
// of the line is dropped, with no Bridge.
func stateAfterValueSegmentRaw(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateAfterValueSegmentRaw
		case readEOF:
			return rawMessageDone(l)
		}
		if len(l.tok) == 0 {
			if b == '"' || b == '{' {
				l.startToken()
				l.emitBridge()
				return beginValue(l, stateAfterValueSegmentRaw)
			}
			l.startToken()
		}
		if b != ' ' && b != '\t' && b != '\r' {
			if b != '\n' {
				l.emitBridge()
			}
			return stateRawMessage
		}
		l.tok = append(l.tok, b)
		l.nextb()
	}
}

// rawMessageDone flushes any trailing literal text, trimming the
// insignificant whitespace a real line ending or Finish-injected EOF
// leaves behind. Mid-message literal segments joined by a Bridge are
// never trimmed this way, since their trailing whitespace is real content.
func rawMessageDone(l *Lexer) stateFn {
	msg := strings.TrimRight(string(l.tok), " \t\r")
	l.tok = l.tok[:0]
	if msg != "" {
		l.emitString(msg)
	}
	return finalizeStatement(l)
}

// finalizeStatement closes out the current statement at a real or
// Finish-injected end of line.
func finalizeStatement(l *Lexer) stateFn {
	if l.sawToken {
		l.emitEOS()
	}
	l.mode = modeNone
	return stateLinePrefix
}

// commentFollowsStatement closes out the current statement and discards
// the trailing line comment that triggered it.
func commentFollowsStatement(l *Lexer) stateFn {
	if l.sawToken {
		l.emitEOS()
	}
	l.mode = modeNone
	return stateSkipToEOL
}
