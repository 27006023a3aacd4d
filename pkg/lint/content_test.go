package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pytidy/pkg/spacer"
)

func TestInsertBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original string
		targets  []int
		want     string
	}{
		{"lf with trailing newline", "a\nb\n", []int{0}, "a\n\nb\n"},
		{"lf without trailing newline", "a\nb", []int{0}, "a\n\nb"},
		{"crlf", "a\r\nb\r\n", []int{0}, "a\r\n\r\nb\r\n"},
		{"cr", "a\rb\r", []int{0}, "a\r\rb\r"},
		{"several targets", "a\nb\nc\nd\n", []int{0, 2}, "a\n\nb\nc\n\nd\n"},
		{"mixed breaks keep their own style", "a\r\nb\nc\r\nd\n", []int{0, 1}, "a\r\n\r\nb\n\nc\r\nd\n"},
		{"lone cr followed by lf line", "a\rb\nc", []int{0, 1}, "a\r\rb\n\nc"},
		{"no targets", "a\r\nb\n", nil, "a\r\nb\n"},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := insertBlankLines([]byte(tt.original), spacer.NewTargetSet(tt.targets...))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestInsertBlankLinesMatchesRewrite(t *testing.T) {
	t.Parallel()

	original := "if a:\r\n    b()\nc()\r\nfor x in y:\n    z()\rw()"
	targets := spacer.NewTargetSet(1, 4)

	got := insertBlankLines([]byte(original), targets)

	lines := spacer.SplitLines(original)
	assert.Equal(t, spacer.Rewrite(lines, targets), spacer.SplitLines(string(got)))
}
