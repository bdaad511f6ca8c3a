// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured log keys.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Render settings.
	FieldEngine = "engine"
	FieldJobs   = "jobs"
	FieldDryRun = "dry_run"
	FieldPage   = "page"
	FieldVerify = "verify"

	// Per-document statistics.
	FieldBytes       = "bytes"
	FieldParagraphs  = "paragraphs"
	FieldInlineMath  = "inline_math"
	FieldDisplayMath = "display_math"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"
	FieldDuration        = "duration"

	// HTTP fields.
	FieldAddr   = "addr"
	FieldMethod = "method"
	FieldStatus = "status"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
