package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pytidy/pkg/fix"
	"github.com/yaklabco/pytidy/pkg/lint"
	"github.com/yaklabco/pytidy/pkg/reporter"
	"github.com/yaklabco/pytidy/pkg/runner"
	"github.com/yaklabco/pytidy/pkg/spacer"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif is not supported", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatJSON, true},
		{reporter.FormatTable, true},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		mode    reporter.Mode
		want    any
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText, want: &reporter.TextReporter{}},
		{name: "json reporter", format: reporter.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "table reporter", format: reporter.FormatTable, want: &reporter.TableReporter{}},
		{name: "diff mode", format: reporter.FormatText, mode: reporter.ModeDiff, want: &reporter.DiffReporter{}},
		{name: "json in diff mode", format: reporter.FormatJSON, mode: reporter.ModeDiff, want: &reporter.JSONReporter{}},
		{name: "empty defaults to text", format: "", want: &reporter.TextReporter{}},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format, Mode: tt.mode})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, reporter.ModeLint, opts.Mode)
	assert.Equal(t, "auto", opts.Color)
	assert.False(t, opts.ShowSummary)
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), n
}

func TestTextReporter_Lint(t *testing.T) {
	out, n := report(t, reporter.Options{Mode: reporter.ModeLint}, createTestResult())

	assert.Equal(t, 2, n)
	assert.Equal(t,
		"a.py:2: empty line required\n"+
			"a.py:5: empty line required\n"+
			"bad.py: error: line 1: invalid syntax\n",
		out)
}

func TestTextReporter_Format(t *testing.T) {
	result := createTestResult()
	result.Files[0].Result.Written = true
	result.Files[0].Result.Fixed = []byte("fixed\n")
	result.Stats.FilesModified = 1

	out, _ := report(t, reporter.Options{Mode: reporter.ModeFormat}, result)

	assert.Equal(t,
		"a.py: 2 auto fixes applied.\n"+
			"bad.py: error: line 1: invalid syntax\n",
		out)
}

func TestTextReporter_NoErrors(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{outcome("clean.py"), outcome("other.py")},
		Stats: runner.Stats{FilesProcessed: 2},
	}

	out, n := report(t, reporter.Options{}, result)

	assert.Zero(t, n)
	assert.Equal(t, "Processed 2 files. No errors found.\n", out)
}

func TestTextReporter_NilResult(t *testing.T) {
	out, n := report(t, reporter.Options{}, nil)

	assert.Zero(t, n)
	assert.Equal(t, "Processed 0 files. No errors found.\n", out)
}

func TestTextReporter_PartialOmitsClosingLine(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{outcome("clean.py")},
		Stats: runner.Stats{FilesProcessed: 1},
	}

	out, _ := report(t, reporter.Options{Partial: true}, result)

	assert.Empty(t, out)
}

func TestTextReporter_Skipped(t *testing.T) {
	res := outcome("a.py", 2)
	res.Result.Skipped = true
	res.Result.SkipReason = "file changed on disk"

	out, _ := report(t, reporter.Options{Mode: reporter.ModeFormat},
		&runner.Result{Files: []runner.FileOutcome{res}, Stats: runner.Stats{FilesWithIssues: 1}})

	assert.Equal(t, "a.py: skipped: file changed on disk\n", out)
}

func TestTextReporter_Summary(t *testing.T) {
	out, _ := report(t, reporter.Options{ShowSummary: true}, createTestResult())

	assert.True(t, strings.HasSuffix(out, "2 lines need an empty line in 1 file, 1 failed\n"), out)
}

func TestTextReporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", Mode: reporter.ModeLint})
	_, err := rep.Report(ctx, createTestResult())

	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter_NilResult(t *testing.T) {
	out, n := report(t, reporter.Options{Format: reporter.FormatJSON}, nil)

	assert.Zero(t, n)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, "1", output.Version)
	assert.Equal(t, reporter.ModeLint, output.Mode)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	out, n := report(t, reporter.Options{Format: reporter.FormatJSON}, createTestResult())

	assert.Equal(t, 2, n)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	require.Len(t, output.Files, 2)

	assert.Equal(t, "a.py", output.Files[0].Path)
	assert.Equal(t, []reporter.JSONDiagnostic{
		{Line: 2, Message: "empty line required"},
		{Line: 5, Message: "empty line required"},
	}, output.Files[0].Diagnostics)
	assert.Empty(t, output.Files[0].Error)

	assert.Equal(t, "bad.py", output.Files[1].Path)
	assert.Equal(t, "line 1: invalid syntax", output.Files[1].Error)
	assert.Empty(t, output.Files[1].Diagnostics)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    2,
		FilesWithIssues: 1,
		FilesErrored:    1,
		TotalIssues:     2,
	}, output.Summary)
}

func TestJSONReporter_Diff(t *testing.T) {
	result := createTestResult()
	res := result.Files[0].Result
	res.Diff = fix.Insertions("a.py", res.Lines, []int{2, 5})

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Mode: reporter.ModeDiff}, result)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, reporter.ModeDiff, output.Mode)
	assert.True(t, strings.HasPrefix(output.Files[0].Diff, "diff --git a/a.py b/a.py\n"))
	assert.False(t, output.Files[0].Modified)
}

func TestJSONReporter_Compact(t *testing.T) {
	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, createTestResult())

	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output should be a single line")
}

func TestTableReporter(t *testing.T) {
	out, n := report(t, reporter.Options{Format: reporter.FormatTable, ShowSummary: true}, createTestResult())

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "2,5")
	assert.Contains(t, out, "bad.py")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Some files could not be processed")
}

func TestTableReporter_NoRows(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{outcome("clean.py")},
		Stats: runner.Stats{FilesProcessed: 1},
	}

	out, _ := report(t, reporter.Options{Format: reporter.FormatTable}, result)

	assert.Equal(t, "Processed 1 files. No errors found.\n", out)
}

func TestDiffReporter(t *testing.T) {
	result := createTestResult()
	res := result.Files[0].Result
	res.Diff = fix.Insertions("a.py", res.Lines, []int{2})

	out, n := report(t, reporter.Options{Mode: reporter.ModeDiff, ShowSummary: true}, result)

	assert.Equal(t, 1, n)
	assert.Equal(t,
		"diff --git a/a.py b/a.py\n"+
			"--- a/a.py\n"+
			"+++ b/a.py\n"+
			"@@ -1,5 +1,6 @@\n"+
			" if x:\n"+
			"     y()\n"+
			"+\n"+
			" z()\n"+
			" for i in r:\n"+
			"     i()\n"+
			"bad.py: error: line 1: invalid syntax\n"+
			"1 file changed, 1 insertion(+)\n",
		out)
}

func TestDiffReporter_NilResult(t *testing.T) {
	out, n := report(t, reporter.Options{Mode: reporter.ModeDiff, ShowSummary: true}, nil)

	assert.Zero(t, n)
	assert.Empty(t, out)
}

// outcome builds a processed file flagged at the given 1-based lines.
func outcome(path string, lines ...int) runner.FileOutcome {
	targets := spacer.NewTargetSet()
	diags := make([]lint.Diagnostic, 0, len(lines))
	for _, line := range lines {
		targets.Add(line - 1)
		diags = append(diags, lint.Diagnostic{Path: path, Line: line, Message: spacer.Message})
	}
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{
				Path:        path,
				Lines:       []string{"if x:", "    y()", "z()", "for i in r:", "    i()", "w()"},
				Targets:     targets,
				Diagnostics: diags,
			},
		},
	}
}

func createTestResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome("a.py", 2, 5),
			{Path: "bad.py", Error: errors.New("line 1: invalid syntax")},
		},
		Stats: runner.Stats{
			FilesDiscovered:  2,
			FilesProcessed:   1,
			FilesErrored:     1,
			FilesWithIssues:  1,
			DiagnosticsTotal: 2,
		},
	}
}
