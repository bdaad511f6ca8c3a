package runner

import "github.com/yaklabco/modtex/pkg/render"

// FileOutcome is the result of rendering one module file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// OutputPath is where the rendered output goes.
	OutputPath string

	// Title is the module title from front matter, if any.
	Title string

	// Stats describes the render pass over this file.
	Stats render.Stats

	// Output is the rendered document or fragment.
	Output []byte

	// Written reports whether OutputPath was (re)written. It is false for
	// dry runs and for outputs whose content was already current.
	Written bool

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesErrored    int `json:"filesErrored"`

	// Render sums the per-file render statistics.
	Render render.Stats `json:"render"`
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// DryRun reports whether outputs were left unwritten.
	DryRun bool
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.Render.Add(outcome.Stats)

	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case !r.DryRun:
		r.Stats.FilesUnchanged++
	}
}
