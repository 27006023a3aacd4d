package lint

import (
	"context"

	"github.com/yaklabco/pytidy/pkg/parser/python"
	"github.com/yaklabco/pytidy/pkg/pyast"
	"github.com/yaklabco/pytidy/pkg/spacer"
)

// Lint checks source with the latest supported grammar. With autofix it
// returns the rewritten lines, otherwise one "<n>: empty line required"
// entry per flagged line. The count is the number of flagged lines in both
// modes. A syntax error is returned wrapped in ErrParseFailure and can be
// inspected with errors.As as *pyast.SyntaxError.
func Lint(source string, autofix, ignoreSingleLineBody bool) (int, []string, error) {
	engine := NewEngine(python.New(pyast.Latest), spacer.Options{IgnoreSingleLineBody: ignoreSingleLineBody})

	result, err := engine.LintFile(context.Background(), "<string>", []byte(source))
	if err != nil {
		return 0, nil, err
	}

	count, lines := spacer.Assemble(result.Lines, result.Targets, autofix)
	return count, lines, nil
}
