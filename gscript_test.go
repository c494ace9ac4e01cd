// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package gscript_test

import (
	"testing"

	"github.com/archon-cnc/gscript"
	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
)

func TestFrontendFeedInChunks(t *testing.T) {
	src := "G1 X10 Y20\nSET_VELOCITY_LIMIT VELOCITY={200*1.5}\n"

	var stmts []*ast.Node
	var errs []diag.Diagnostic

	fe := gscript.New("<test>",
		gscript.StatementFunc(func(n *ast.Node) { stmts = append(stmts, n) }),
		gscript.ErrorFunc(func(d diag.Diagnostic) bool { errs = append(errs, d); return true }),
	)

	// Feed byte by byte to exercise the incremental contract end to end.
	for i := 0; i < len(src); i++ {
		fe.Feed([]byte{src[i]})
	}
	fe.Finish()

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 2 {
		t.Fatalf("want 2 statements, got %d", len(stmts))
	}
	if stmts[0].Child.Str != "G1" {
		t.Fatalf("want first statement G1, got %v", stmts[0].Child)
	}
	if stmts[1].Child.Str != "SET_VELOCITY_LIMIT" {
		t.Fatalf("want second statement SET_VELOCITY_LIMIT, got %v", stmts[1].Child)
	}
}

func TestFrontendReset(t *testing.T) {
	var stmts []*ast.Node
	fe := gscript.New("<test>",
		gscript.StatementFunc(func(n *ast.Node) { stmts = append(stmts, n) }),
		gscript.ErrorFunc(func(d diag.Diagnostic) bool { return true }),
	)

	fe.Feed([]byte("G1 X"))
	fe.Reset()
	fe.Feed([]byte("G28\n"))
	fe.Finish()

	if len(stmts) != 1 {
		t.Fatalf("want 1 statement after reset, got %d", len(stmts))
	}
	if stmts[0].Child.Str != "G28" {
		t.Fatalf("want G28, got %v", stmts[0].Child)
	}
}
