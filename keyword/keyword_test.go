// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package keyword_test

import (
	"testing"

	"github.com/archon-cnc/gscript/keyword"
)

func TestLookupWords(t *testing.T) {
	for _, w := range []string{"OR", "AND", "IF", "ELSE", "TRUE", "FALSE", "NAN", "INFINITY"} {
		id, ok := keyword.Lookup(w)
		if !ok {
			t.Errorf("Lookup(%q) not found", w)
			continue
		}
		if !keyword.IsWord(id) {
			t.Errorf("IsWord(%q) = false, want true", w)
		}
		if keyword.Name(id) != w {
			t.Errorf("Name(Lookup(%q)) = %q, want %q", w, keyword.Name(id), w)
		}
	}
}

func TestLookupCaseSensitive(t *testing.T) {
	if _, ok := keyword.Lookup("or"); ok {
		t.Error("Lookup(\"or\") should not match; lookup is case-sensitive on canonicalized input")
	}
}

func TestLookupPunctuation(t *testing.T) {
	for _, p := range []string{"+", "-", "*", "**", "/", "%", "=", "~", "<", ">", "<=", ">=", "!", ".", ",", "(", ")", "[", "]", "{", "}"} {
		id, ok := keyword.Lookup(p)
		if !ok {
			t.Errorf("Lookup(%q) not found", p)
			continue
		}
		if keyword.IsWord(id) {
			t.Errorf("IsWord(%q) = true, want false", p)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := keyword.Lookup("@"); ok {
		t.Error("Lookup(\"@\") should not match")
	}
}
