// Package fix renders the blank-line insertions made by format as unified
// diffs, so they can be previewed without touching the file.
package fix

import (
	"fmt"
	"slices"
	"strings"
)

// contextLines is the number of unchanged lines shown around each insertion.
const contextLines = 3

// LineKind distinguishes context lines from added lines.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is an inserted line.
	LineAdd
)

// Line is one line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a contiguous region of a diff. Start lines are 1-based.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Diff is the unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
}

// Insertions builds the diff produced by inserting an empty line after each
// of the given 1-based line numbers. Duplicates and out-of-range entries are
// ignored. It returns nil when nothing would change.
func Insertions(path string, lines []string, after []int) *Diff {
	targets := make([]int, 0, len(after))
	for _, n := range after {
		if n >= 1 && n <= len(lines) {
			targets = append(targets, n)
		}
	}
	slices.Sort(targets)
	targets = slices.Compact(targets)
	if len(targets) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Additions: len(targets)}

	// added counts insertions before the current group, which shifts the
	// modified-side line numbers.
	added := 0
	for i := 0; i < len(targets); {
		j := i + 1
		for j < len(targets) && targets[j]-targets[j-1] <= 2*contextLines {
			j++
		}
		diff.Hunks = append(diff.Hunks, buildHunk(lines, targets[i:j], added))
		added += j - i
		i = j
	}

	return diff
}

func buildHunk(lines []string, group []int, added int) Hunk {
	first := max(group[0]-contextLines+1, 1)
	last := min(group[len(group)-1]+contextLines, len(lines))

	hunk := Hunk{
		OriginalStart: first,
		OriginalCount: last - first + 1,
		ModifiedStart: first + added,
		ModifiedCount: last - first + 1 + len(group),
	}

	next := 0
	for n := first; n <= last; n++ {
		hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: lines[n-1]})
		if next < len(group) && group[next] == n {
			hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd})
			next++
		}
	}

	return hunk
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, l := range h.Lines {
			if l.Kind == LineAdd {
				b.WriteString("+" + l.Content + "\n")
			} else {
				b.WriteString(" " + l.Content + "\n")
			}
		}
	}
	return b.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}
