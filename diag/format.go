// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package diag

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Format renders a diagnostic the way a terminal-facing consumer (notably
// cmd/gscript-dump) displays it: the message on one line, the offending
// source line on the next, and a caret on a third line pointing at the
// column. line is the raw text of the source line the diagnostic occurred
// on, with no trailing newline.
//
// Aligning the caret requires knowing the on-screen width of every rune
// before the error column, not just its byte length: a wide CJK character
// occupies two terminal cells under common monospace rendering, a
// combining mark occupies zero. Format uses golang.org/x/text/width to
// classify each rune the way a terminal emulator would, and counts
// nonspacing and enclosing marks as zero cells.
func Format(line string, d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s\n", d.Position, d.Kind, d.Message)
	b.WriteByte('|')
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteByte('|')

	col := d.Position.Column - 1
	if col > len(line) {
		col = len(line)
	}
	b.WriteString(strings.Repeat(" ", displayWidth(line[:col])))
	b.WriteByte('^')
	return b.String()
}

// displayWidth computes the on-screen width, in terminal cells, of s under
// a monospaced UTF-8 rendering.
func displayWidth(s string) int {
	w := 0
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n
		if unicode.In(r, unicode.Mn, unicode.Me) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		case width.EastAsianAmbiguous:
			w++
		default:
			w++
		}
	}
	return w
}
