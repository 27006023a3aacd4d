// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"

	// Run options.
	FieldCommand       = "command"
	FieldPythonVersion = "python_version"
	FieldJobs          = "jobs"
	FieldKeepGoing     = "keep_going"
	FieldDiff          = "diff"
	FieldBackup        = "backup"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesErrored     = "files_errored"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
