// Package spacer decides where blank lines must follow block constructs.
//
// The package is pure: it works on a parsed tree and the file's lines, does no
// I/O and keeps no state between calls. Line numbers coming from the tree are
// 1-based; targets and SourceLines indices are 0-based.
package spacer

// Node is a statement in a parsed syntax tree.
//
// StartLine and EndLine are 1-based and inclusive and cover trailing clauses
// such as else or finally. Body is the primary suite in source order and may
// be empty. Children returns every direct child statement, including those
// in trailing clauses, so the walker can reach nested constructs.
type Node interface {
	Kind() Kind
	StartLine() int
	EndLine() int
	Body() []Node
	Children() []Node
}
