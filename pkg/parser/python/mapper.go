package python

import (
	"github.com/yaklabco/pytidy/pkg/pyast"
	"github.com/yaklabco/pytidy/pkg/spacer"
)

// node adapts a pyast statement to spacer.Node.
type node struct {
	kind     spacer.Kind
	start    int
	end      int
	body     []spacer.Node
	children []spacer.Node
}

func (n *node) Kind() spacer.Kind       { return n.kind }
func (n *node) StartLine() int          { return n.start }
func (n *node) EndLine() int            { return n.end }
func (n *node) Body() []spacer.Node     { return n.body }
func (n *node) Children() []spacer.Node { return n.children }

// mapNode converts a pyast subtree. Body nodes are shared with children so
// each statement is adapted exactly once.
func mapNode(src *pyast.Node) *node {
	out := &node{
		kind:  kindOf(src.Kind),
		start: src.StartLine,
		end:   src.EndLine,
	}

	children := src.Children()
	if len(children) == 0 {
		out.body = []spacer.Node{}
		return out
	}

	out.children = make([]spacer.Node, len(children))
	for i, child := range children {
		out.children[i] = mapNode(child)
	}
	// Children lists Body first.
	out.body = out.children[:len(src.Body):len(src.Body)]
	return out
}

// kindOf maps CPython statement classes to spacer kinds.
func kindOf(kind pyast.Kind) spacer.Kind {
	switch kind {
	case pyast.KindIf:
		return spacer.KindConditional
	case pyast.KindFor:
		return spacer.KindForLoop
	case pyast.KindWhile:
		return spacer.KindWhileLoop
	case pyast.KindWith:
		return spacer.KindResourceScope
	case pyast.KindAsyncFor:
		return spacer.KindAsyncFor
	case pyast.KindAsyncWith:
		return spacer.KindAsyncResourceScope
	case pyast.KindTry, pyast.KindTryStar:
		return spacer.KindExceptionTry
	case pyast.KindExceptHandler:
		return spacer.KindExceptionHandler
	case pyast.KindMatch:
		return spacer.KindPatternMatch
	default:
		return spacer.KindOther
	}
}
