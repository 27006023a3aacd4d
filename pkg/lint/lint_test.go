package lint_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pytidy/pkg/lint"
	"github.com/yaklabco/pytidy/pkg/pyast"
)

func TestLint_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		wantDiags []string
		wantFixed []string
	}{
		{
			name:      "body followed by code",
			source:    "if True:\n    x()\ny()\n",
			wantDiags: []string{"2: empty line required"},
			wantFixed: []string{"if True:", "    x()", "", "y()"},
		},
		{
			name:      "already spaced",
			source:    "if True:\n    x()\n\ny()\n",
			wantDiags: []string{},
			wantFixed: []string{"if True:", "    x()", "", "y()"},
		},
		{
			name:      "for else",
			source:    "for i in r:\n    a()\nelse:\n    b()\nc()\n",
			wantDiags: []string{"2: empty line required", "4: empty line required"},
			wantFixed: []string{"for i in r:", "    a()", "", "else:", "    b()", "", "c()"},
		},
		{
			name:      "handler end shares the try boundary",
			source:    "try:\n    a()\nexcept E:\n    b()\nc()\n",
			wantDiags: []string{"2: empty line required", "4: empty line required"},
			wantFixed: []string{"try:", "    a()", "", "except E:", "    b()", "", "c()"},
		},
		{
			name:      "inline conditional",
			source:    "if x: y()\nz()\n",
			wantDiags: []string{},
			wantFixed: []string{"if x: y()", "z()"},
		},
		{
			name:      "construct at end of file",
			source:    "while x:\n    y()\n",
			wantDiags: []string{},
			wantFixed: []string{"while x:", "    y()"},
		},
		{
			name:      "whitespace-only line counts as blank",
			source:    "with f() as g:\n    g.x()\n   \ny()\n",
			wantDiags: []string{},
			wantFixed: []string{"with f() as g:", "    g.x()", "   ", "y()"},
		},
		{
			name:      "nested blocks",
			source:    "for a in b:\n    if a:\n        c()\n    d()\ne()\n",
			wantDiags: []string{"3: empty line required", "4: empty line required"},
			wantFixed: []string{"for a in b:", "    if a:", "        c()", "", "    d()", "", "e()"},
		},
		{
			name:      "function definitions are not inspected",
			source:    "def f():\n    return 1\nf()\n",
			wantDiags: []string{},
			wantFixed: []string{"def f():", "    return 1", "f()"},
		},
		{
			name:      "match statement",
			source:    "match x:\n    case 1:\n        a()\n    case _:\n        b()\nc()\n",
			wantDiags: []string{"5: empty line required"},
			wantFixed: []string{"match x:", "    case 1:", "        a()", "    case _:", "        b()", "", "c()"},
		},
		{
			name:      "async constructs",
			source:    "async def f():\n    async for a in b:\n        c()\n    async with d:\n        e()\n    g()\n",
			wantDiags: []string{"3: empty line required", "5: empty line required"},
			wantFixed: []string{
				"async def f():", "    async for a in b:", "        c()", "",
				"    async with d:", "        e()", "", "    g()",
			},
		},
		{
			name:      "empty source",
			source:    "",
			wantDiags: []string{},
			wantFixed: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			count, diags, err := lint.Lint(tt.source, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiags, diags)
			assert.Equal(t, len(tt.wantDiags), count)

			fixCount, fixed, err := lint.Lint(tt.source, true, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFixed, fixed)
			assert.Equal(t, count, fixCount)
		})
	}
}

func TestLint_IgnoreSingleLineBody(t *testing.T) {
	t.Parallel()

	source := "if cond:\n    x()\nelse:\n    y()\n    z()\nw()\n"

	count, diags, err := lint.Lint(source, false, false)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"2: empty line required", "5: empty line required"}, diags)

	count, diags, err = lint.Lint(source, false, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"5: empty line required"}, diags)
}

func TestLint_IgnoreSingleLineBodyKeepsMultiLineStatement(t *testing.T) {
	t.Parallel()

	source := "if cond:\n    x(\n        1,\n    )\nelse:\n    y()\n"

	_, diags, err := lint.Lint(source, false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"4: empty line required"}, diags)
}

func TestLint_FixedPoint(t *testing.T) {
	t.Parallel()

	sources := []string{
		"if a:\n    b()\nelif c:\n    d()\nelse:\n    e()\nf()\n",
		"try:\n    a()\nexcept E:\n    b()\nelse:\n    c()\nfinally:\n    d()\ne()\n",
		"while a:\n    for b in c:\n        with d:\n            e()\n    f()\ng()\n",
		"class A:\n    def f(self):\n        if x:\n            return 1\n        return 2\nA()\n",
	}

	for _, source := range sources {
		_, fixed, err := lint.Lint(source, true, false)
		require.NoError(t, err)

		rewritten := strings.Join(fixed, "\n") + "\n"
		count, diags, err := lint.Lint(rewritten, false, false)
		require.NoError(t, err)
		assert.Zero(t, count, "second lint of %q reported %v", rewritten, diags)

		again, refixed, err := lint.Lint(rewritten, true, false)
		require.NoError(t, err)
		assert.Zero(t, again)
		assert.Equal(t, fixed, refixed, "format must be idempotent")
	}
}

func TestLint_SyntaxError(t *testing.T) {
	t.Parallel()

	count, lines, err := lint.Lint("if x\n    y()\n", false, false)
	require.Error(t, err)
	assert.Zero(t, count)
	assert.Nil(t, lines)
	require.ErrorIs(t, err, lint.ErrParseFailure)

	var syntaxErr *pyast.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestLint_AcceptsValidSyntax(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"raw f-string escaping a brace": "x = rf\"(\\{{)\"\n",
		"quote as format fill":          "y = f\"{v:'>10}\"\n",
		"ellipsis match subject":        "match ...:\n    case _:\n        pass\n",
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			count, lines, err := lint.Lint(source, false, false)
			require.NoError(t, err)
			assert.Zero(t, count)
			assert.Empty(t, lines)
		})
	}
}
