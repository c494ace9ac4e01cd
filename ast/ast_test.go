// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ast_test

import (
	"testing"

	"github.com/archon-cnc/gscript/ast"
)

func TestAppendSibling(t *testing.T) {
	a := ast.NewInteger(0, 1)
	b := ast.NewInteger(1, 2)
	c := ast.NewInteger(2, 3)

	head := ast.AppendSibling(a, b)
	head = ast.AppendSibling(head, c)

	got := ast.Siblings(head)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("Siblings = %v, want [a b c]", got)
	}
}

func TestAppendSiblingNilHead(t *testing.T) {
	b := ast.NewInteger(0, 2)
	if got := ast.AppendSibling(nil, b); got != b {
		t.Fatalf("AppendSibling(nil, b) = %v, want b", got)
	}
}

func TestNewOperatorArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on arity mismatch")
		}
	}()
	ast.NewOperator(0, ast.OpAdd, ast.NewInteger(0, 1))
}

func TestNewOperatorChildren(t *testing.T) {
	lhs := ast.NewInteger(0, 1)
	rhs := ast.NewInteger(1, 2)
	n := ast.NewOperator(0, ast.OpAdd, lhs, rhs)
	if n.Kind != ast.Operator || n.Op != ast.OpAdd {
		t.Fatalf("got Kind=%v Op=%v", n.Kind, n.Op)
	}
	kids := ast.Siblings(n.Child)
	if len(kids) != 2 || kids[0] != lhs || kids[1] != rhs {
		t.Fatalf("children = %v, want [lhs rhs]", kids)
	}
}

func TestNewStatementFields(t *testing.T) {
	f1 := ast.NewString(0, "X")
	f2 := ast.NewInteger(1, 10)
	stmt := ast.NewStatement(0, f1, f2)
	if stmt.Kind != ast.Statement {
		t.Fatalf("got Kind=%v", stmt.Kind)
	}
	if got := ast.Siblings(stmt.Child); len(got) != 2 {
		t.Fatalf("fields = %v, want 2 entries", got)
	}
}

func TestReleaseNil(t *testing.T) {
	ast.Release(nil) // must not panic
}

func TestReleaseClearsSubtree(t *testing.T) {
	lhs := ast.NewInteger(0, 1)
	rhs := ast.NewInteger(1, 2)
	add := ast.NewOperator(0, ast.OpAdd, lhs, rhs)
	stmt := ast.NewStatement(0, add)

	ast.Release(stmt)
	if stmt.Child != nil || stmt.Next != nil {
		t.Fatalf("Release did not clear statement: %+v", stmt)
	}
	if add.Child != nil {
		t.Fatalf("Release did not clear operator children: %+v", add)
	}
}

func TestOpKindArity(t *testing.T) {
	cases := map[ast.OpKind]int{
		ast.OpNeg:    1,
		ast.OpNot:    1,
		ast.OpIfElse: 3,
		ast.OpAdd:    2,
		ast.OpLookup: 2,
	}
	for op, want := range cases {
		if got := op.Arity(); got != want {
			t.Errorf("%v.Arity() = %d, want %d", op, got, want)
		}
	}
}
