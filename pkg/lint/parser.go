package lint

import (
	"context"

	"github.com/yaklabco/pytidy/pkg/spacer"
)

// Parser turns source into a spacer tree.
//
// The interface lives here, next to its only consumer. pkg/parser/python
// provides the implementation.
//
// Implementations must be deterministic for a given (path, content) pair,
// must not perform I/O, and must be safe for concurrent use.
type Parser interface {
	// Parse returns the module node for content. path is used for messages
	// only. On error no partial tree is returned.
	Parse(ctx context.Context, path string, content []byte) (spacer.Node, error)

	// Capabilities reports grammar features that decide which node kinds
	// are inspected. It is queried once, when the engine is built.
	Capabilities() spacer.Capabilities
}
