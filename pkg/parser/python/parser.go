// Package python provides a lint.Parser implementation for Python source.
package python

import (
	"context"
	"fmt"

	"github.com/yaklabco/pytidy/pkg/pyast"
	"github.com/yaklabco/pytidy/pkg/spacer"
)

// Parser implements lint.Parser using pyast.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	version pyast.Version
}

// New creates a parser for the given grammar version.
// The zero version selects pyast.Latest.
func New(version pyast.Version) *Parser {
	if version == (pyast.Version{}) {
		version = pyast.Latest
	}
	return &Parser{version: version}
}

// Version returns the grammar version used for parsing.
func (p *Parser) Version() pyast.Version {
	return p.version
}

// Capabilities reports the grammar features of the configured version.
func (p *Parser) Capabilities() spacer.Capabilities {
	return spacer.Capabilities{PatternMatch: p.version.SupportsMatch()}
}

// Parse converts Python source into a spacer tree rooted at the module.
// Syntax errors are returned as *pyast.SyntaxError.
//
//nolint:ireturn // spacer.Node is the tree abstraction consumed by the engine.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (spacer.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	mod, err := pyast.Parse(string(content), pyast.Options{Version: p.version})
	if err != nil {
		return nil, err
	}

	return mapNode(mod.Node), nil
}
