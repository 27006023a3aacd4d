// Package pyast parses Python source into a statement-level syntax tree.
//
// The tree only models statements: compound statements carry their clause
// suites, simple statements are leaves. Line numbers are 1-based and follow
// CPython's ast module, so a compound statement ends on the last line of the
// last statement in its final clause; comments and blank lines never extend it.
package pyast

// Kind classifies a statement node.
type Kind uint8

// Statement kinds.
const (
	KindModule Kind = iota
	KindSimple
	KindIf
	KindFor
	KindAsyncFor
	KindWhile
	KindWith
	KindAsyncWith
	KindTry
	KindTryStar
	KindExceptHandler
	KindMatch
	KindMatchCase
	KindFunctionDef
	KindAsyncFunctionDef
	KindClassDef
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindModule:           "Module",
	KindSimple:           "Simple",
	KindIf:               "If",
	KindFor:              "For",
	KindAsyncFor:         "AsyncFor",
	KindWhile:            "While",
	KindWith:             "With",
	KindAsyncWith:        "AsyncWith",
	KindTry:              "Try",
	KindTryStar:          "TryStar",
	KindExceptHandler:    "ExceptHandler",
	KindMatch:            "Match",
	KindMatchCase:        "MatchCase",
	KindFunctionDef:      "FunctionDef",
	KindAsyncFunctionDef: "AsyncFunctionDef",
	KindClassDef:         "ClassDef",
}

// String returns the CPython ast class name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a single statement in the tree.
//
// Body holds the primary suite. For Match nodes Body holds the case clauses.
// Clause suites that CPython does not model as nodes (else, finally) are kept
// in OrElse and FinalBody; except clauses are ExceptHandler nodes in Handlers.
type Node struct {
	Kind Kind

	// StartLine and EndLine are 1-based and inclusive.
	StartLine int
	EndLine   int

	// Decorators holds the 1-based lines of decorators preceding a def or class.
	Decorators []int

	Body      []*Node
	Handlers  []*Node
	OrElse    []*Node
	FinalBody []*Node
}

// Children returns all direct child statements in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	size := len(n.Body) + len(n.Handlers) + len(n.OrElse) + len(n.FinalBody)
	if size == 0 {
		return nil
	}
	children := make([]*Node, 0, size)
	children = append(children, n.Body...)
	children = append(children, n.Handlers...)
	children = append(children, n.OrElse...)
	children = append(children, n.FinalBody...)
	return children
}

// lastEnd returns the end line of the last node in stmts, or 0 if empty.
func lastEnd(stmts []*Node) int {
	if len(stmts) == 0 {
		return 0
	}
	return stmts[len(stmts)-1].EndLine
}

// Module is the root of a parsed file.
type Module struct {
	*Node

	// Version is the grammar version the module was parsed with.
	Version Version
}
