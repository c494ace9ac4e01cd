// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ast defines the tagged tree the parser builds: literals,
// parameters, operators, function calls, and statements, linked by a
// singly-linked sibling chain as described in SPEC_FULL.md §2 ("AST node
// model").
package ast

import "fmt"

// Kind tags the variant a Node holds. Exactly one Kind's payload fields are
// meaningful for a given Node; the rest are zero.
type Kind int

const (
	// Invalid is the zero Kind; never produced by the parser.
	Invalid Kind = iota
	Integer
	Float
	Bool
	String
	Parameter
	Operator
	Function
	Statement
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Parameter:
		return "Parameter"
	case Operator:
		return "Operator"
	case Function:
		return "Function"
	case Statement:
		return "Statement"
	default:
		return "Invalid"
	}
}

// OpKind enumerates the operators a Node of Kind Operator can hold.
// Arity is fixed by OpKind: 1 for {Neg, Not}, 3 for IfElse, 2 for all
// others. Lookup's right operand is either a Parameter node (dot form,
// `a.b`) or an arbitrary expression (bracket form, `a[b]`).
type OpKind int

const (
	OpInvalid OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpNeg
	OpNot
	OpAnd
	OpOr
	OpLt
	OpGt
	OpLte
	OpGte
	OpEquals
	OpConcat
	OpLookup
	OpIfElse
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpNeg:
		return "neg"
	case OpNot:
		return "!"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLte:
		return "<="
	case OpGte:
		return ">="
	case OpEquals:
		return "=="
	case OpConcat:
		return "~"
	case OpLookup:
		return "lookup"
	case OpIfElse:
		return "if-else"
	default:
		return "invalid-op"
	}
}

// Arity returns the number of operands OpKind k expects.
func (k OpKind) Arity() int {
	switch k {
	case OpNeg, OpNot:
		return 1
	case OpIfElse:
		return 3
	default:
		return 2
	}
}

// Node is one node of the AST. It participates in two relationships: the
// sibling chain (Next), used for argument lists, operand lists, and
// statement field sequences; and a child pointer (Child), held by variants
// that own a sequence (Statement, Operator, Function), pointing at the head
// of that sequence's sibling chain.
//
// The sibling chain is acyclic and every node appears in at most one chain.
// Ownership is hierarchical: a root Statement is the unique owner of its
// subtree, and releasing it (via Release) releases every node transitively
// reachable through Child and Next.
//
// String and Name payloads are set once at construction and never mutated
// afterwards.
type Node struct {
	Kind  Kind
	Pos   int // byte offset of the token that produced this node, for diagnostics

	Next  *Node // next sibling in a chain
	Child *Node // head of this node's child chain, if any

	// Integer
	Int int64
	// Float
	Flt float64
	// Bool
	Bln bool
	// String, Parameter, Function (Name)
	Str string
	// Operator
	Op OpKind
}

// NewInteger returns a new Integer leaf node.
func NewInteger(pos int, v int64) *Node { return &Node{Kind: Integer, Pos: pos, Int: v} }

// NewFloat returns a new Float leaf node.
func NewFloat(pos int, v float64) *Node { return &Node{Kind: Float, Pos: pos, Flt: v} }

// NewBool returns a new Bool leaf node.
func NewBool(pos int, v bool) *Node { return &Node{Kind: Bool, Pos: pos, Bln: v} }

// NewString returns a new String leaf node. s must already have its escapes
// resolved.
func NewString(pos int, s string) *Node { return &Node{Kind: String, Pos: pos, Str: s} }

// NewParameter returns a new Parameter leaf node referring to identifier
// name.
func NewParameter(pos int, name string) *Node { return &Node{Kind: Parameter, Pos: pos, Str: name} }

// NewOperator returns a new Operator node of the given kind, with operands
// as its child chain. len(operands) must equal op.Arity().
func NewOperator(pos int, op OpKind, operands ...*Node) *Node {
	if len(operands) != op.Arity() {
		panic(fmt.Sprintf("ast: operator %s wants %d operands, got %d", op, op.Arity(), len(operands)))
	}
	return &Node{Kind: Operator, Pos: pos, Op: op, Child: chain(operands)}
}

// NewFunction returns a new Function node calling name with args as its
// child chain, in order. An empty args yields a Function with no children.
func NewFunction(pos int, name string, args ...*Node) *Node {
	return &Node{Kind: Function, Pos: pos, Str: name, Child: chain(args)}
}

// NewStatement returns a new Statement node whose fields form its child
// chain, in order.
func NewStatement(pos int, fields ...*Node) *Node {
	return &Node{Kind: Statement, Pos: pos, Child: chain(fields)}
}

// chain links ns into a single sibling chain and returns its head, or nil if
// ns is empty. Any pre-existing Next pointers on the elements of ns are
// overwritten.
func chain(ns []*Node) *Node {
	var head, tail *Node
	for _, n := range ns {
		if n == nil {
			continue
		}
		n.Next = nil
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
	}
	return head
}

// AppendSibling links tail (and its already-linked chain) onto the end of
// head's sibling list and returns the resulting head. If head is nil, tail
// becomes the head.
func AppendSibling(head, tail *Node) *Node {
	if head == nil {
		return tail
	}
	n := head
	for n.Next != nil {
		n = n.Next
	}
	n.Next = tail
	return head
}

// Siblings returns the sibling chain starting at head as a slice, in order.
func Siblings(head *Node) []*Node {
	var out []*Node
	for n := head; n != nil; n = n.Next {
		out = append(out, n)
	}
	return out
}

// Release recursively clears a node's child chain and every transitive
// sibling of its children, then clears n itself. It is safe to call with a
// nil n. Go's garbage collector reclaims the memory regardless; Release
// exists so that the parser's error-recovery path can eagerly drop
// references to partially built subtrees on its value stack instead of
// waiting for the next collection, and so that a consumer's ownership of a
// delivered statement is unambiguous: after Release(root), root holds no
// references into the subtree it used to own.
func Release(n *Node) {
	if n == nil {
		return
	}
	for c := n.Child; c != nil; {
		next := c.Next
		Release(c)
		c = next
	}
	n.Child = nil
	n.Next = nil
}
