// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package lexer_test

import (
	"math"
	"testing"

	"github.com/archon-cnc/gscript/token"
)

func TestLexIntegerOverflowBecomesFloat(t *testing.T) {
	// 99999999999999999999 doesn't fit an int64; the lexer falls back to a
	// float64 approximation rather than erroring.
	toks, errs := lexAll("SET X=99999999999999999999\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.Float {
			found = true
			if math.Abs(tok.Float-1e20)/1e20 > 1e-6 {
				t.Fatalf("want ~1e20, got %g", tok.Float)
			}
		}
	}
	if !found {
		t.Fatal("want an overflowed literal to emit a Float token")
	}
}

func TestLexBinaryOverflowErrors(t *testing.T) {
	toks, errs := lexAll("SET X=0b11111111111111111111111111111111111111111111111111111111111111111\n")
	if len(errs) == 0 {
		t.Fatal("want an overflow error for a binary literal exceeding int64")
	}
	for _, tok := range toks {
		if tok.Kind == token.Float {
			t.Fatalf("binary overflow must not fall back to a Float, got %v", tok)
		}
	}
}

func TestLexOctalOverflowErrors(t *testing.T) {
	toks, errs := lexAll("SET X=0o7777777777777777777777\n")
	if len(errs) == 0 {
		t.Fatal("want an overflow error for an octal literal exceeding int64")
	}
	for _, tok := range toks {
		if tok.Kind == token.Float {
			t.Fatalf("octal overflow must not fall back to a Float, got %v", tok)
		}
	}
}

func TestLexBareLeadingZeroOctal(t *testing.T) {
	toks, errs := lexAll("SET X=0755\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.Int {
			found = true
			if tok.Int != 0o755 {
				t.Fatalf("want 0755 octal == %d, got %d", int64(0o755), tok.Int)
			}
		}
	}
	if !found {
		t.Fatal("want an Int token for the bare-leading-zero octal literal")
	}
}

func TestLexHexFloat(t *testing.T) {
	toks, errs := lexAll("SET X=0x1.8p1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.Float {
			found = true
			if tok.Float != 3.0 {
				t.Fatalf("want 0x1.8p1 == 3.0, got %g", tok.Float)
			}
		}
	}
	if !found {
		t.Fatal("want a Float token for the hex float literal")
	}
}

func TestLexDecimalFloatWithExponent(t *testing.T) {
	toks, errs := lexAll("SET X=1.5e2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.Float {
			found = true
			if tok.Float != 150 {
				t.Fatalf("want 150, got %g", tok.Float)
			}
		}
	}
	if !found {
		t.Fatal("want a Float token")
	}
}
