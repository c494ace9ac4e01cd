// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

import "strings"

// rawCommands take the remainder of the line verbatim as message text
// rather than as TRADITIONAL or EXTENDED arguments (spec.md §4.1.2,
// SUPPLEMENTED per original_source/klippy/chelper/gcode_lexer.c's
// enter_args handling of M117 and ECHO).
var rawCommands = map[string]bool{
	"M117": true,
	"ECHO": true,
}

// stateCommandName accumulates a command word: letters, digits, '_' and
// '.', e.g. "G1", "M117", "SET_VELOCITY_LIMIT", "G92.1". The number of '.'
// bytes is not limited here; isTraditionalCommand accepts at most one.
func stateCommandName(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateCommandName
		case readEOF:
			return commandNameDone(l)
		}
		if !isCommandNameByte(b) {
			return commandNameDone(l)
		}
		l.tok = append(l.tok, b)
		l.nextb()
	}
}

func isCommandNameByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// commandNameDone classifies the accumulated command word, emits it as an
// Identifier token, selects the argument mode it implies, and dispatches
// to the matching argument scanner.
func commandNameDone(l *Lexer) stateFn {
	name := string(l.tok)
	l.tok = l.tok[:0]
	upper := strings.ToUpper(name)

	// The command name is emitted uppercased regardless of how it was
	// written (spec.md §4.1.3): "g1 x10" and "G1 X10" lex identically.
	l.emitIdentifier(upper)

	switch {
	case rawCommands[upper]:
		l.mode = modeRaw
		return stateArgsSkipLeadingSpace
	case isTraditionalCommand(name):
		l.mode = modeTraditional
		return stateArgsTraditional
	default:
		l.mode = modeExtended
		return stateArgsExtended
	}
}

// isTraditionalCommand reports whether name has the classic single-letter
// prefix form: one ASCII letter, then digits, optionally followed by '.'
// and more digits (e.g. "G1", "M104", "G92.1").
func isTraditionalCommand(name string) bool {
	if len(name) == 0 {
		return false
	}
	c := name[0]
	if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	rest := name[1:]
	if rest == "" {
		return false
	}
	seenDot := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return true
}
