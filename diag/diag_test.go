// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package diag_test

import (
	"strings"
	"testing"

	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/token"
)

func TestDiagnosticError(t *testing.T) {
	d := diag.Diagnostic{
		Kind:     diag.Lexical,
		Position: token.Position{Filename: "f.gcode", Line: 1, Column: 5},
		Message:  "unterminated string",
	}
	want := "f.gcode:1:5: lexical: unterminated string"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatASCIICaret(t *testing.T) {
	d := diag.Diagnostic{
		Kind:     diag.Lexical,
		Position: token.Position{Filename: "f.gcode", Line: 1, Column: 5},
		Message:  "bad",
	}
	out := diag.Format("G1 X", d)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Format produced %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[2] != "|    ^" {
		t.Errorf("caret line = %q, want %q", lines[2], "|    ^")
	}
}

func TestFormatWideRuneCaret(t *testing.T) {
	// "世" is a 3-byte, fullwidth (2-cell) rune. Column is a byte offset
	// (see token.Position), so column 4 lands just after it; the caret
	// must be offset by 2 terminal cells, not 3 bytes-worth of spaces.
	d := diag.Diagnostic{
		Kind:     diag.Lexical,
		Position: token.Position{Filename: "f", Line: 1, Column: 4},
		Message:  "x",
	}
	out := diag.Format("世界", d)
	lines := strings.Split(out, "\n")
	if lines[2] != "|"+strings.Repeat(" ", 2)+"^" {
		t.Errorf("caret line = %q", lines[2])
	}
}
