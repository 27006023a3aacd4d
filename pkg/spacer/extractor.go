package spacer

import (
	"slices"
	"strings"
)

// Options tunes boundary detection.
type Options struct {
	// IgnoreSingleLineBody skips the body-end boundary when the body is a
	// single statement on a single line.
	IgnoreSingleLineBody bool
}

// BoundaryLines returns the 0-based indices of lines that node requires to
// be followed by a blank line. At most two indices are returned: the end of
// the primary body and the end of the whole construct.
func BoundaryLines(node Node, lines []string, opts Options) []int {
	if node.StartLine() == node.EndLine() {
		return nil
	}

	var candidates []int
	if end, ok := bodyEnd(node, opts); ok {
		candidates = append(candidates, end)
	}
	if node.Kind() != KindExceptionHandler {
		candidates = append(candidates, node.EndLine())
	}

	var targets []int
	for _, line := range candidates {
		idx := line - 1
		if needsSpacer(idx, lines) && !slices.Contains(targets, idx) {
			targets = append(targets, idx)
		}
	}
	return targets
}

func bodyEnd(node Node, opts Options) (int, bool) {
	body := node.Body()
	if len(body) == 0 {
		return 0, false
	}
	if opts.IgnoreSingleLineBody && len(body) == 1 && body[0].StartLine() == body[0].EndLine() {
		return 0, false
	}
	return body[len(body)-1].EndLine(), true
}

// needsSpacer reports whether the line after idx exists and is not blank.
func needsSpacer(idx int, lines []string) bool {
	if idx < 0 || idx+1 >= len(lines) {
		return false
	}
	return !IsBlank(lines[idx+1])
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
