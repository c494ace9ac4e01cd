// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package token

import "fmt"

// Pos is a byte offset into a stream. It is relative to the stream's start,
// not to the current buffer window, so it stays valid across Feed calls.
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
func (p Pos) IsValid() bool {
	return p >= 0
}

// Position describes a source location in the human-readable form used for
// diagnostics.
type Position struct {
	Filename string
	Offset   int // byte offset
	Line     int // 1-based line number
	Column   int // 1-based column number (byte offset within the line)
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// File tracks the byte offset of every line start seen so far, so that a Pos
// can be resolved to a Position without rescanning the source. It is fed
// incrementally by the lexer as it crosses newlines, in step with Feed.
type File struct {
	name  string
	lines []Pos // lines[i] is the byte offset of line i+1
}

// NewFile returns a new File for diagnostics against the named source. Name
// may be empty for anonymous streams (e.g. an editor buffer).
func NewFile(name string) *File {
	return &File{name: name, lines: []Pos{0}}
}

// Name returns the file name.
func (f *File) Name() string {
	return f.name
}

// AddLine records that a new line starts at pos. pos must be strictly
// greater than the offset of the last recorded line; calls that don't
// advance the line table are ignored, which makes AddLine safe to call
// redundantly from lexer code paths that re-enter on resumption.
func (f *File) AddLine(pos Pos) {
	if l := len(f.lines); l > 0 && f.lines[l-1] >= pos {
		return
	}
	f.lines = append(f.lines, pos)
}

// Position resolves pos to a 1-based line and column via binary search over
// the recorded line table.
func (f *File) Position(pos Pos) Position {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, int(pos), i, int(pos-f.lines[i-1]) + 1}
}

// Reset discards all recorded lines and starts over at line 1, offset 0.
// Used by Lexer.Reset.
func (f *File) Reset() {
	f.lines = f.lines[:1]
}
