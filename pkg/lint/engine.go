// Package lint runs the blank-line check on Python files. Engine wires a
// Parser to the spacer walker; Pipeline adds file I/O around it.
package lint

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/pytidy/pkg/spacer"
)

// Diagnostic is one flagged block boundary.
type Diagnostic struct {
	// Path is the file the diagnostic belongs to.
	Path string

	// Line is the 1-based line that must be followed by an empty line.
	Line int

	// Message is always spacer.Message.
	Message string
}

// String formats the diagnostic as "<line>: <message>".
func (d Diagnostic) String() string {
	return strconv.Itoa(d.Line) + ": " + d.Message
}

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the file path.
	Path string

	// Lines is the source split into lines.
	Lines []string

	// Targets holds the 0-based indices that need an empty line after them.
	Targets *spacer.TargetSet

	// Diagnostics lists one entry per target in ascending line order.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return fr.Targets.Len() > 0
}

// IssueCount returns the number of flagged boundaries.
func (fr *FileResult) IssueCount() int {
	return fr.Targets.Len()
}

// Engine parses files and collects spacer targets.
type Engine struct {
	// Parser parses Python files into spacer trees.
	Parser Parser

	walker *spacer.Walker
}

// NewEngine creates an engine. The inspected kinds are fixed here from the
// parser's capabilities.
func NewEngine(parser Parser, opts spacer.Options) *Engine {
	kinds := spacer.InspectedKinds(parser.Capabilities())
	return &Engine{
		Parser: parser,
		walker: spacer.NewWalker(kinds, opts),
	}
}

// Kinds returns the node kinds the engine inspects.
func (e *Engine) Kinds() spacer.KindSet {
	return e.walker.Kinds()
}

// LintFile parses and checks a single file. Parse errors are wrapped with
// ErrParseFailure.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte) (*FileResult, error) {
	root, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	lines := spacer.SplitLines(string(content))
	targets := e.walker.Collect(root, lines)

	result := &FileResult{
		Path:    path,
		Lines:   lines,
		Targets: targets,
	}
	for _, idx := range targets.Sorted() {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Path:    path,
			Line:    idx + 1,
			Message: spacer.Message,
		})
	}

	return result, nil
}
