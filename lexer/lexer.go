// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package lexer implements the byte-driven, resumable state machine that
// turns extended G-code source text into a token stream, per SPEC_FULL.md
// §2 ("Lexer") and spec.md §4.1.
//
// Unlike the teacher this package is adapted from (github.com/db47h/lex,
// whose StateFn loops pull runes from a blocking io.Reader), a Lexer here
// is driven entirely by Feed: every byte it is ever given to process
// arrives through a Feed call, and Feed must return having consumed the
// whole slice without blocking for more input. A StateFn that runs out of
// buffered bytes mid-token returns itself unchanged; the driver loop then
// simply stops calling it until the next Feed supplies more data. Nothing
// about this is special-cased per state: every StateFn only ever
// accumulates into Lexer fields (never into a local variable it could lose
// across a suspend), so re-entering the same StateFn after a suspend picks
// up exactly where it left off.
package lexer

import (
	"fmt"

	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/token"
)

// TokenSink receives tokens as the lexer recognizes them, in strict input
// order. The parser implements TokenSink directly: its Token method drives
// its own Push state machine.
type TokenSink interface {
	Token(tok token.Token)
}

// A stateFn is one state of the lexer's finite state machine. It consumes
// as many bytes as are currently available, then returns either itself
// (ran out of input, call again once Feed supplies more) or the next
// StateFn to transition to.
type stateFn func(l *Lexer) stateFn

// argMode selects how the remainder of a command line is interpreted, per
// spec.md §4.1.2.
type argMode int

const (
	modeNone argMode = iota
	modeRaw
	modeTraditional
	modeExtended
)

// Lexer is the incremental lexer state machine. A Lexer must not be used
// from more than one goroutine; see SPEC_FULL.md §1.
type Lexer struct {
	buf  []byte    // bytes fed but not yet consumed, base-relative
	pos  int       // index of the next unconsumed byte in buf
	base token.Pos // absolute offset of buf[0]

	finishing bool // Finish has been called; EOF is real, not "need more"
	finished  bool // Finish has fully drained (idempotency rests on state being nil)

	file *token.File

	state stateFn

	mode      argMode
	retStack  []stateFn // continuation stack for nested {expr} / "string"
	valueCont stateFn   // where beginValue resumes once a value finishes
	sawToken  bool      // at least one token pushed for the current statement

	tok []byte // token-accumulation buffer, reused and grown, never shrunk

	// numeric literal scan state (see number.go)
	numBuf     []byte
	numBase    int
	numIsFloat bool
	numSign    int64

	// string literal scan state (see string.go)
	strBuf  []byte
	escBuf  []byte
	escWant int

	sink TokenSink
	errs diag.Sink

	tokStart token.Pos // start position of the token currently being scanned

	// two-byte operator lookahead scratch (see state_expr.go)
	punctPos   token.Pos
	punctFirst byte
}

// Option configures a new Lexer.
type Option func(*Lexer)

// WithBufferCapacity pre-allocates the internal accumulation buffers to
// hold approximately n bytes, avoiding growth churn for lexers that expect
// long tokens (e.g. long RAW messages).
func WithBufferCapacity(n int) Option {
	return func(l *Lexer) {
		l.tok = make([]byte, 0, n)
		l.numBuf = make([]byte, 0, n)
		l.strBuf = make([]byte, 0, n)
	}
}

// WithFile makes the Lexer update f's line table instead of a File it
// allocates itself. A caller that also resolves positions elsewhere (a
// parser reporting its own diagnostics against the same source) must share
// one File between both, since AddLine calls on two separate Files would
// leave one of them with an empty line table.
func WithFile(f *token.File) Option {
	return func(l *Lexer) {
		l.file = f
	}
}

// New creates a Lexer that reports recognized tokens to sink and
// diagnostics to errs. name is used only for diagnostic positions and may
// be empty; it is ignored if WithFile is also passed.
func New(name string, sink TokenSink, errs diag.Sink, opts ...Option) *Lexer {
	l := &Lexer{
		file: token.NewFile(name),
		sink: sink,
		errs: errs,
	}
	for _, o := range opts {
		o(l)
	}
	if l.tok == nil {
		l.tok = make([]byte, 0, 64)
	}
	if l.numBuf == nil {
		l.numBuf = make([]byte, 0, 32)
	}
	if l.strBuf == nil {
		l.strBuf = make([]byte, 0, 64)
	}
	l.state = stateLinePrefix
	return l
}

// File returns the token.File the lexer uses to resolve positions. It is
// updated incrementally as Feed processes newlines.
func (l *Lexer) File() *token.File {
	return l.file
}

// Feed appends data to the lexer's input and processes as much of it as
// possible before returning. Feed may be called with chunks of any size,
// including zero-length slices; feeding the concatenation of several calls
// produces exactly the same tokens and diagnostics as feeding it all at
// once (SPEC_FULL.md §2, chunk invariance).
func (l *Lexer) Feed(data []byte) {
	if len(data) > 0 {
		l.buf = append(l.buf, data...)
	}
	l.run()
	l.compact()
}

// Finish signals end of input. If the lexer is not currently between
// statements, it behaves as if a trailing newline had been fed: any
// dangling statement (a RAW message not yet newline-terminated, a
// TRADITIONAL/EXTENDED argument list, a line comment) is flushed exactly
// as it would be by a real trailing newline. Finish is idempotent: once
// the state machine has drained, l.state goes nil and further calls (or
// Feed calls) are no-ops.
func (l *Lexer) Finish() {
	l.finishing = true
	l.run()
	l.compact()
	l.finished = true
}

// Reset returns the lexer to its initial state (line-prefix, position 1:1),
// discarding any partial token and the File's line table. It does not
// forget File's name.
func (l *Lexer) Reset() {
	l.buf = l.buf[:0]
	l.pos = 0
	l.base = 0
	l.finishing = false
	l.finished = false
	l.file.Reset()
	l.mode = modeNone
	l.retStack = l.retStack[:0]
	l.sawToken = false
	l.tok = l.tok[:0]
	l.numBuf = l.numBuf[:0]
	l.numSign = 0
	l.numBase = 0
	l.numIsFloat = false
	l.strBuf = l.strBuf[:0]
	l.state = stateLinePrefix
}

// run drives the state machine forward until either no more input is
// buffered (ordinary Feed) or the machine has fully drained (Finish).
//
// Every StateFn must obey one invariant: it may return itself unchanged
// only in response to readSuspend (no more bytes buffered, !finishing). In
// response to readEOF (finishing, no more bytes) it must make forward
// progress — transition to another state, or, once genuinely idle, return
// nil — so this loop is guaranteed to terminate once finishing is set.
func (l *Lexer) run() {
	for l.state != nil {
		if l.pos >= len(l.buf) && !l.finishing {
			return
		}
		l.state = l.state(l)
	}
}

// compact drops already-consumed bytes from the front of buf, keeping the
// buffer's size proportional to the longest in-flight token rather than to
// total input seen. Grounded on the same slide-the-window technique as
// db47h/lex's state.fill and the retrieval pack's streaming parsers
// (e.g. the IncrementalParser.Feed buffer-compaction step).
func (l *Lexer) compact() {
	if l.pos == 0 {
		return
	}
	n := copy(l.buf, l.buf[l.pos:])
	l.buf = l.buf[:n]
	l.base += token.Pos(l.pos)
	l.pos = 0
}

// --- byte-level primitives -------------------------------------------------

// result of a read attempt.
type readResult int

const (
	readByte readResult = iota
	readEOF
	readSuspend
)

// nextb consumes and returns the next byte, or reports EOF (Finish was
// called and input is exhausted) or suspend (no more bytes buffered yet,
// caller must return its StateFn unchanged and wait for more Feed calls).
func (l *Lexer) nextb() (b byte, r readResult) {
	if l.pos >= len(l.buf) {
		if l.finishing {
			return 0, readEOF
		}
		return 0, readSuspend
	}
	b = l.buf[l.pos]
	l.pos++
	if b == '\n' {
		l.file.AddLine(l.base + token.Pos(l.pos))
	}
	return b, readByte
}

// peekb looks at the next byte without consuming it.
func (l *Lexer) peekb() (b byte, r readResult) {
	if l.pos >= len(l.buf) {
		if l.finishing {
			return 0, readEOF
		}
		return 0, readSuspend
	}
	return l.buf[l.pos], readByte
}

// backup un-reads the last byte returned by nextb. It must only be called
// once per nextb call, with no other lexer state mutated in between that
// would be invalidated (tok/numBuf accumulation is fine since those are
// appended to explicitly by callers, never implicitly by nextb).
func (l *Lexer) backup() {
	l.pos--
}

// curPos returns the absolute position of the byte that would be returned
// by the next call to nextb.
func (l *Lexer) curPos() token.Pos {
	return l.base + token.Pos(l.pos)
}

// popRet pops and returns the most recently pushed continuation, for use
// by the string and expression scanners once they hit their closing
// delimiter.
func (l *Lexer) popRet() stateFn {
	n := len(l.retStack) - 1
	f := l.retStack[n]
	l.retStack = l.retStack[:n]
	return f
}

// startToken records the start position of the token currently being
// accumulated, mirroring db47h/lex's State.StartToken/TokenPos.
func (l *Lexer) startToken() {
	l.tokStart = l.curPos()
}

// emit pushes tok to the sink and marks the statement as non-empty.
func (l *Lexer) emit(tok token.Token) {
	l.sawToken = true
	l.sink.Token(tok)
}

// emitKeyword emits a zero-payload keyword token at the current token start
// position.
func (l *Lexer) emitKeyword(id token.ID) {
	l.emit(token.Token{Kind: token.Keyword, Pos: l.tokStart, Keyword: id})
}

func (l *Lexer) emitBridge() {
	l.emit(token.Token{Kind: token.Bridge, Pos: l.tokStart})
}

func (l *Lexer) emitIdentifier(s string) {
	l.emit(token.Token{Kind: token.Identifier, Pos: l.tokStart, Str: s})
}

func (l *Lexer) emitString(s string) {
	l.emit(token.Token{Kind: token.String, Pos: l.tokStart, Str: s})
}

func (l *Lexer) emitInt(v int64) {
	l.emit(token.Token{Kind: token.Int, Pos: l.tokStart, Int: v})
}

func (l *Lexer) emitFloat(v float64) {
	l.emit(token.Token{Kind: token.Float, Pos: l.tokStart, Float: v})
}

func (l *Lexer) emitEOS() {
	l.emit(token.Token{Kind: token.EndOfStatement, Pos: l.curPos()})
	l.sawToken = false
}

// errorf reports a diagnostic at pos and runs the shared error-recovery
// procedure from spec.md §4.1.8: the token buffer is discarded, any tokens
// already pushed for this statement get an EndOfStatement so the parser's
// own error production can realign (otherwise nothing is sent at all), and
// the lexer resumes scanning at the next line.
func (l *Lexer) errorf(pos token.Pos, kind diag.Kind, format string, args ...interface{}) stateFn {
	msg := fmt.Sprintf(format, args...)
	l.errs.Error(diag.Diagnostic{Kind: kind, Position: l.file.Position(pos), Message: msg})
	if l.sawToken {
		l.emitEOS()
	}
	l.tok = l.tok[:0]
	l.numBuf = l.numBuf[:0]
	l.strBuf = l.strBuf[:0]
	l.retStack = l.retStack[:0]
	l.mode = modeNone
	return stateSkipToEOL
}
