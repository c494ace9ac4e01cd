// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer

// stateLinePrefix scans the portion of a line before the command name:
// leading whitespace, an optional legacy line-number prefix ("N123"), a
// line comment, or a blank line. Reaching EOF here (Finish called, nothing
// pending) stops the state machine for good, since every statement the
// lexer has started is guaranteed to have been flushed by the time control
// returns here. The other states that stop at EOF (stateLineNumber,
// stateAfterLineNumber, stateSkipToEOL) likewise only run while no
// statement is waiting for its EndOfStatement.
func stateLinePrefix(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateLinePrefix
		case readEOF:
			return nil
		}
		switch b {
		case ' ', '\t', '\r':
			l.nextb()
		case '\n':
			l.nextb()
		case ';':
			l.nextb()
			return stateSkipToEOL
		case 'N', 'n':
			l.nextb()
			return stateLineNumber
		default:
			l.startToken()
			return stateCommandName
		}
	}
}

// stateLineNumber consumes the digits of a legacy "N123" line-number
// prefix. Klipper and its predecessors use this purely for transport-level
// resend/checksum bookkeeping; it carries no meaning to the expression
// language, so it is recognized and discarded rather than forwarded as a
// token (SPEC_FULL.md §5).
func stateLineNumber(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateLineNumber
		case readEOF:
			return nil
		}
		if b < '0' || b > '9' {
			break
		}
		l.nextb()
	}
	return stateAfterLineNumber
}

// stateAfterLineNumber resumes prefix scanning after a consumed line
// number, skipping a second round of line-number detection: "N5 N6 G1"
// should not treat the second N as another line number, it is simply an
// (invalid, but not the lexer's problem) command name starting with N.
func stateAfterLineNumber(l *Lexer) stateFn {
	for {
		b, r := l.peekb()
		switch r {
		case readSuspend:
			return stateAfterLineNumber
		case readEOF:
			return nil
		}
		switch b {
		case ' ', '\t', '\r':
			l.nextb()
		case '\n':
			l.nextb()
			return stateLinePrefix
		case ';':
			l.nextb()
			return stateSkipToEOL
		default:
			l.startToken()
			return stateCommandName
		}
	}
}

// stateSkipToEOL discards bytes up to and including the next newline (or
// EOF), with no tokens produced. It is shared by line comments and by the
// error-recovery procedure in errorf, both of which need to resynchronize
// at the next line boundary.
func stateSkipToEOL(l *Lexer) stateFn {
	for {
		b, r := l.nextb()
		switch r {
		case readSuspend:
			return stateSkipToEOL
		case readEOF:
			return nil
		}
		if b == '\n' {
			return stateLinePrefix
		}
	}
}
