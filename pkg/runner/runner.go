package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/pkg/fsutil"
	"github.com/yaklabco/modtex/pkg/markup"
	"github.com/yaklabco/modtex/pkg/module"
	"github.com/yaklabco/modtex/pkg/render"
)

// OutputExtension is the extension given to rendered files.
const OutputExtension = ".html"

// ErrOutputIsSource is returned when a file's output path would overwrite
// the file itself.
var ErrOutputIsSource = errors.New("output path equals source path")

// Runner renders module files with a shared math typesetter.
type Runner struct {
	// Math typesets every math span. It must be safe for concurrent use
	// when Jobs is greater than one.
	Math render.MathRenderer
}

// New creates a Runner that typesets math with m.
func New(m render.MathRenderer) *Runner {
	return &Runner{Math: m}
}

// Run discovers files under opts.Paths and renders them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered module files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files)), DryRun: opts.DryRun}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("render run complete",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.RenderFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// RenderFile renders a single module file and, unless opts.DryRun is set,
// writes the result to its output path.
func (r *Runner) RenderFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	outPath, err := OutputPath(path, opts.WorkingDir, opts.OutputDir)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.OutputPath = outPath

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	mod, err := module.Parse(content, module.ParseOptions{NormalizeUnicode: opts.NormalizeUnicode})
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}
	outcome.Title = mod.Title

	doc, err := render.RenderDocument(mod.Text, r.Math)
	if err != nil {
		outcome.Error = fmt.Errorf("render %s: %w", path, err)
		return outcome
	}
	outcome.Stats = doc.Stats

	if opts.Page != nil {
		outcome.Output, err = module.Page(mod, doc.HTML, *opts.Page)
		if err != nil {
			outcome.Error = fmt.Errorf("compose page %s: %w", path, err)
			return outcome
		}
	} else {
		outcome.Output = []byte(doc.HTML)
	}

	if opts.Verify {
		if err := markup.Validate(string(outcome.Output)); err != nil {
			outcome.Error = fmt.Errorf("verify %s: %w", path, err)
			return outcome
		}
	}

	logger.Debug("rendered module",
		logging.FieldOutput, outPath,
		logging.FieldBytes, info.Size,
		logging.FieldParagraphs, doc.Stats.Paragraphs,
		logging.FieldInlineMath, doc.Stats.InlineMath,
		logging.FieldDisplayMath, doc.Stats.DisplayMath,
	)

	if opts.DryRun {
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, outcome.Output, info.Mode.Perm())
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = written

	return outcome
}

// OutputPath maps a source file to its rendered output path. With an empty
// outputDir the output sits next to the source; otherwise the source's
// position relative to workDir is mirrored under outputDir. Sources outside
// workDir land directly in outputDir.
func OutputPath(source, workDir, outputDir string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + OutputExtension

	var out string
	if outputDir == "" {
		out = filepath.Join(filepath.Dir(source), name)
	} else {
		if !filepath.IsAbs(outputDir) {
			outputDir = filepath.Join(workDir, outputDir)
		}

		relDir := "."
		if rel, err := filepath.Rel(workDir, filepath.Dir(source)); err == nil &&
			rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			relDir = rel
		}
		out = filepath.Join(outputDir, relDir, name)
	}

	if filepath.Clean(out) == filepath.Clean(source) {
		return "", fmt.Errorf("%w: %s", ErrOutputIsSource, source)
	}
	return out, nil
}
