package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/modtex/pkg/render"
	"github.com/yaklabco/modtex/pkg/runner"
)

// JSONSchemaVersion identifies the layout of JSONOutput.
const JSONSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary runner.Stats     `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path    string        `json:"path"`
	Output  string        `json:"output,omitempty"`
	Title   string        `json:"title,omitempty"`
	Written bool          `json:"written"`
	Stats   *render.Stats `json:"stats,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return failures(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.DryRun = result.DryRun
	output.Summary = result.Stats

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:    r.opts.displayPath(file.Path),
			Output:  r.opts.displayPath(file.OutputPath),
			Title:   file.Title,
			Written: file.Written,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		} else {
			stats := file.Stats
			entry.Stats = &stats
		}
		output.Files = append(output.Files, entry)
	}

	return output
}
