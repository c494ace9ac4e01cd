// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package collab declares the interfaces a statement interpreter built on
// top of gscript's AST would implement, per SPEC_FULL.md §6. None of them
// are implemented here: the interpreter, the parameter namespace, and the
// wire protocol a running controller speaks are all explicit collaborators
// outside gscript's own scope, not gscript concerns.
package collab

import (
	"context"

	"github.com/archon-cnc/gscript/ast"
)

// Lookup resolves an identifier referenced from within a statement (a bare
// Parameter node, or the left side of an OpLookup chain) to a value node.
// parent is the Operator or Function node the lookup occurred under, for
// diagnostics; it may be nil for a top-level reference.
type Lookup interface {
	Lookup(ctx context.Context, key string, parent *ast.Node) (*ast.Node, error)
}

// Serializer renders a set of resolved field values back to the wire text a
// downstream consumer (a log, a transcript, a relay to another controller)
// expects.
type Serializer interface {
	Serialize(ctx context.Context, dict map[string]*ast.Node) (string, error)
}

// Executor carries out one parsed statement's fields against whatever
// runtime state backs the identifiers Lookup resolves. The returned bool
// reports whether the statement requires acknowledgement before the next
// one may run (spec.md's on_statement handshake), mirroring the advisory
// on_error return discussed in SPEC_FULL.md §3.1.
type Executor interface {
	Exec(ctx context.Context, fields []*ast.Node) (bool, error)
}
