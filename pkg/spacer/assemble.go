package spacer

import (
	"strconv"
	"strings"
)

// Message is the text of every diagnostic.
const Message = "empty line required"

//nolint:gochecknoglobals // Stateless replacer.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits source on \n, \r\n and \r. A trailing line break does
// not produce a final empty line.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(lineBreaks.Replace(src), "\n")
	return strings.Split(src, "\n")
}

// Diagnostics renders one "<line>: empty line required" entry per target in
// ascending order. Line numbers are 1-based.
func Diagnostics(targets *TargetSet) []string {
	sorted := targets.Sorted()
	out := make([]string, 0, len(sorted))
	for _, idx := range sorted {
		out = append(out, strconv.Itoa(idx+1)+": "+Message)
	}
	return out
}

// Rewrite returns a copy of lines with an empty line inserted after every
// target index.
func Rewrite(lines []string, targets *TargetSet) []string {
	out := make([]string, 0, len(lines)+targets.Len())
	for idx, line := range lines {
		out = append(out, line)
		if targets.Has(idx) {
			out = append(out, "")
		}
	}
	return out
}

// Assemble returns the target count and either the rewritten lines
// (autofix) or the diagnostics.
func Assemble(lines []string, targets *TargetSet, autofix bool) (int, []string) {
	if autofix {
		return targets.Len(), Rewrite(lines, targets)
	}
	return targets.Len(), Diagnostics(targets)
}
