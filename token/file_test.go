// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package token_test

import (
	"testing"

	"github.com/archon-cnc/gscript/token"
)

func TestFilePosition(t *testing.T) {
	f := token.NewFile("input.gcode")
	// "G1 X10\nG1 Y20\n\nG1 Z3\n": lines start at offsets 0, 7, 14 and 15,
	// and offset 18 is the 'Z' on line 4.
	f.AddLine(7)
	f.AddLine(14)
	f.AddLine(15)

	tests := []struct {
		pos  token.Pos
		want token.Position
	}{
		{0, token.Position{"input.gcode", 0, 1, 1}},
		{5, token.Position{"input.gcode", 5, 1, 6}},
		{7, token.Position{"input.gcode", 7, 2, 1}},
		{14, token.Position{"input.gcode", 14, 3, 1}},
		{15, token.Position{"input.gcode", 15, 4, 1}},
		{18, token.Position{"input.gcode", 18, 4, 4}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.pos); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.pos, got, tt.want)
		}
	}
}

func TestFileReset(t *testing.T) {
	f := token.NewFile("")
	f.AddLine(7)
	f.AddLine(14)
	f.Reset()
	if got := f.Position(20); got.Line != 1 || got.Column != 21 {
		t.Errorf("Position after Reset = %+v, want line 1 col 21", got)
	}
}

func TestPositionString(t *testing.T) {
	p := token.Position{Filename: "f.gcode", Line: 3, Column: 5}
	if got, want := p.String(), "f.gcode:3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	p.Filename = ""
	if got, want := p.String(), "3:5"; got != want {
		t.Errorf("String() with no filename = %q, want %q", got, want)
	}
}
