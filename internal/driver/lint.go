package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/lint"
	"lintel/internal/observ"
	"lintel/internal/source"
)

// Options control how files are read, analyzed and filtered.
type Options struct {
	Config lint.Config
	// Jobs bounds concurrent files; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics truncates each file's list after sorting; 0 keeps all.
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// BaseDir anchors relative paths in output; empty means the working directory.
	BaseDir string
	Cache   *DiskCache
	Logger  hclog.Logger
	Sink    ProgressSink
}

func (o *Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// FileResult is the outcome for one path.
type FileResult struct {
	Report       diagfmt.FileReport
	SyntaxErrors int
	Cached       bool
	Timing       observ.Report
}

// HasErrors reports whether an error diagnostic (or a failure) remains.
func (r *FileResult) HasErrors() bool {
	errs, _ := r.Report.Counts()
	return errs > 0
}

// LintFile reads path and analyzes it. It never returns an error: a file
// that cannot be read becomes a report with Failure set, which formatters
// print as the sentinel.
func LintFile(path string, opts Options) FileResult {
	log := opts.logger().With("path", path)
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	emit(opts.Sink, Event{File: path, Stage: StageRead, Status: StatusWorking})
	started := time.Now()
	fs := source.NewFileSetWithBase(opts.BaseDir)
	done := timer.Track("read")
	id, err := fs.Load(path)
	done("")
	if err != nil {
		log.Debug("failed to read source", "error", err)
		res := FileResult{Report: diagfmt.FileReport{Path: path, Failure: readFailure(err)}, Timing: timer.Report()}
		emit(opts.Sink, Event{File: path, Stage: StageRead, Status: StatusError, Err: err, Errors: 1, Elapsed: time.Since(started)})
		return res
	}
	res := analyzeLoaded(fs, fs.Get(id), opts, timer, log)
	res.Report.Path = path
	errs, warns := res.Report.Counts()
	emit(opts.Sink, Event{File: path, Stage: StageAnalyze, Status: StatusDone, Errors: errs, Warnings: warns, Elapsed: time.Since(started)})
	return res
}

// LintSource analyzes in-memory content under name (stdin input).
func LintSource(name string, content []byte, opts Options) FileResult {
	fs := source.NewFileSetWithBase(opts.BaseDir)
	file := fs.Get(fs.AddVirtual(name, content))
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	res := analyzeLoaded(fs, file, opts, timer, opts.logger().With("path", name))
	res.Report.Path = name
	return res
}

func readFailure(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return fmt.Errorf("%s: %s", pe.Path, pe.Err)
	}
	return err
}

func analyzeLoaded(fs *source.FileSet, file *source.File, opts Options, timer *observ.Timer, log hclog.Logger) FileResult {
	var (
		diags        []diag.Diagnostic
		syntaxErrors int
		cached       bool
		key          Digest
	)
	fingerprint := opts.Config.Fingerprint()
	if opts.Cache != nil {
		emit(opts.Sink, Event{File: file.Path, Stage: StageCache, Status: StatusWorking})
		done := timer.Track("cache")
		key = CacheKey(file.Content, fingerprint)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Warn("cache read failed", "error", err)
		case hit && payload.Fingerprint == fingerprint:
			diags = fromDiskPayload(&payload, file.ID)
			syntaxErrors = payload.SyntaxErrors
			cached = true
		}
		done(fmt.Sprintf("hit=%t", cached))
	}

	if !cached {
		emit(opts.Sink, Event{File: file.Path, Stage: StageAnalyze, Status: StatusWorking})
		res := lint.AnalyzeFile(fs, file, opts.Config, timer)
		diags, syntaxErrors = res.Diagnostics, res.SyntaxErrors
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, toDiskPayload(diags, syntaxErrors, fingerprint)); err != nil {
				log.Warn("cache write failed", "error", err)
			}
		}
	}
	log.Debug("analyzed", "diagnostics", len(diags), "syntax_errors", syntaxErrors, "cached", cached)

	return FileResult{
		Report: diagfmt.FileReport{
			FileSet:     fs,
			File:        file,
			Diagnostics: Filter(diags, opts),
		},
		SyntaxErrors: syntaxErrors,
		Cached:       cached,
		Timing:       timer.Report(),
	}
}

// Filter applies --no-warnings, --warnings-as-errors and the per-file cap.
// The input is not modified.
func Filter(diags []diag.Diagnostic, opts Options) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == diag.SevWarning {
			if opts.IgnoreWarnings {
				continue
			}
			if opts.WarningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		if d.Severity == diag.SevInfo && opts.IgnoreWarnings {
			continue
		}
		out = append(out, d)
	}
	if opts.MaxDiagnostics > 0 && len(out) > opts.MaxDiagnostics {
		out = out[:opts.MaxDiagnostics]
	}
	return out
}

// LintPaths analyzes files concurrently (at most opts.Jobs at a time).
// Results keep the order of paths; every file gets its own FileSet and AST.
func LintPaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	log := opts.logger()
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.Debug("linting", "files", len(paths), "jobs", jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = LintFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Reports extracts the formatter input from results.
func Reports(results []FileResult) []diagfmt.FileReport {
	out := make([]diagfmt.FileReport, len(results))
	for i := range results {
		out[i] = results[i].Report
	}
	return out
}

// TotalTiming sums per-file timings phase by phase.
func TotalTiming(results []FileResult) observ.Report {
	var total observ.Report
	for i := range results {
		total.Add(results[i].Timing)
	}
	return total
}
