// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parser_test

import (
	"testing"

	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/lexer"
	"github.com/archon-cnc/gscript/parser"
	"github.com/archon-cnc/gscript/token"
)

type collectSink struct {
	stmts []*ast.Node
}

func (s *collectSink) Statement(n *ast.Node) { s.stmts = append(s.stmts, n) }

type collectErrs struct {
	errs []diag.Diagnostic
}

func (e *collectErrs) Error(d diag.Diagnostic) bool {
	e.errs = append(e.errs, d)
	return true
}

func parseAll(t *testing.T, src string) ([]*ast.Node, []diag.Diagnostic) {
	t.Helper()
	sink := &collectSink{}
	errs := &collectErrs{}
	file := token.NewFile("<test>")
	p := parser.New(file, sink, errs)
	lx := lexer.New("<test>", p, errs, lexer.WithFile(file))
	lx.Feed([]byte(src))
	lx.Finish()
	return sink.stmts, errs.errs
}

func TestTraditionalCommand(t *testing.T) {
	stmts, errs := parseAll(t, "G1 X10 Y-5.2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	s := stmts[0]
	if s.Kind != ast.Statement {
		t.Fatalf("want Statement, got %s", s.Kind)
	}
	fields := ast.Siblings(s.Child)
	if len(fields) != 5 {
		t.Fatalf("want 5 flat fields (cmd, X, 10, Y, -5.2), got %d", len(fields))
	}
	if fields[0].Kind != ast.Parameter || fields[0].Str != "G1" {
		t.Fatalf("want command name G1, got %v", fields[0])
	}
	if fields[1].Kind != ast.String || fields[1].Str != "X" {
		t.Fatalf("want key X, got %v", fields[1])
	}
	if fields[2].Kind != ast.Integer || fields[2].Int != 10 {
		t.Fatalf("want X=10, got %v", fields[2])
	}
	if fields[3].Kind != ast.String || fields[3].Str != "Y" {
		t.Fatalf("want key Y, got %v", fields[3])
	}
	if fields[4].Kind != ast.Float || fields[4].Flt != -5.2 {
		t.Fatalf("want Y=-5.2, got %v", fields[4])
	}
}

func TestExtendedCommand(t *testing.T) {
	stmts, errs := parseAll(t, "SET_VELOCITY_LIMIT VELOCITY=300 ACCEL=3000\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	fields := ast.Siblings(stmts[0].Child)
	if len(fields) != 5 {
		t.Fatalf("want 5 flat fields, got %d", len(fields))
	}
	if fields[1].Str != "VELOCITY" || fields[2].Int != 300 {
		t.Fatalf("want VELOCITY=300, got %v / %v", fields[1], fields[2])
	}
	if fields[3].Str != "ACCEL" || fields[4].Int != 3000 {
		t.Fatalf("want ACCEL=3000, got %v / %v", fields[3], fields[4])
	}
}

func TestEmbeddedExpression(t *testing.T) {
	stmts, errs := parseAll(t, "SET_VELOCITY_LIMIT VELOCITY={speed * 2 + 1}\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v := stmts[0].Child.Next.Next
	if v.Kind != ast.Operator || v.Op != ast.OpAdd {
		t.Fatalf("want top-level +, got %v", v)
	}
	mul := v.Child
	if mul.Kind != ast.Operator || mul.Op != ast.OpMul {
		t.Fatalf("want * on the left of +, got %v", mul)
	}
	if mul.Child.Kind != ast.Parameter || mul.Child.Str != "speed" {
		t.Fatalf("want parameter speed, got %v", mul.Child)
	}
}

func TestTernaryExpression(t *testing.T) {
	stmts, errs := parseAll(t, "SET_VELOCITY_LIMIT VELOCITY={5 IF enabled ELSE 0}\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v := stmts[0].Child.Next.Next
	if v.Kind != ast.Operator || v.Op != ast.OpIfElse {
		t.Fatalf("want if-else, got %v", v)
	}
	operands := ast.Siblings(v.Child)
	if len(operands) != 3 {
		t.Fatalf("want 3 operands, got %d", len(operands))
	}
	if operands[0].Int != 5 || operands[2].Int != 0 {
		t.Fatalf("want 5 IF ... ELSE 0, got %v / %v", operands[0], operands[2])
	}
}

func TestBridgeConcat(t *testing.T) {
	stmts, errs := parseAll(t, `ECHO "x="{x}"!"` + "\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v := stmts[0].Child.Next
	if v.Kind != ast.Operator || v.Op != ast.OpConcat {
		t.Fatalf("want top-level Concat, got %v", v)
	}
}

func TestRawMessage(t *testing.T) {
	stmts, errs := parseAll(t, "M117 Hello, world!\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fields := ast.Siblings(stmts[0].Child)
	if len(fields) != 2 {
		t.Fatalf("want 2 fields (cmd, message), got %d", len(fields))
	}
	if fields[1].Kind != ast.String || fields[1].Str != "Hello, world!" {
		t.Fatalf("want raw message, got %v", fields[1])
	}
}

func TestSyntaxErrorRecovers(t *testing.T) {
	stmts, errs := parseAll(t, "SET_VELOCITY_LIMIT VELOCITY=\nG1 X1\n")
	if len(errs) == 0 {
		t.Fatal("want a syntax error for the missing value")
	}
	if len(stmts) != 1 {
		t.Fatalf("want the following statement to still parse, got %d statements", len(stmts))
	}
	if stmts[0].Child.Str != "G1" {
		t.Fatalf("want G1 to have parsed after the error, got %v", stmts[0].Child)
	}
}
