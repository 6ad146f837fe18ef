package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sbasic/internal/observ"
	"sbasic/internal/source"
	"sbasic/internal/trace"
)

// SourceExt is the program file extension picked up by directory runs.
const SourceExt = ".sb"

// FileResult is one entry of a directory run.
type FileResult struct {
	Path        string
	Compilation *Compilation // nil when the file could not be read
	Err         error
}

// HasErrors reports whether the file failed to load or has error diagnostics.
func (r FileResult) HasErrors() bool {
	return r.Err != nil || (r.Compilation != nil && r.Compilation.HasErrors())
}

// ListFiles возвращает отсортированный список *.sb файлов в директории.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir compiles every program under dir with at most jobs workers
// (0 means one per file). Results are sorted by path. An unreadable file is
// reported in its result and does not stop the run; only listing failures
// and context cancellation are returned as errors.
func DiagnoseDir(ctx context.Context, dir string, jobs int, opts Options, events ProgressSink) ([]FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if opts.Stage == "" {
		opts.Stage = StageAll
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	if opts.ParentSpan == 0 {
		opts.ParentSpan = trace.CurrentSpan(ctx)
	}

	// Загружаем файлы последовательно: FileSet не потокобезопасен.
	fileSet := source.NewFileSet()
	loaded := make([]*source.File, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrs[i] = fmt.Errorf("read %s: %w", path, err)
			continue
		}
		loaded[i] = fileSet.Get(id)
	}
	for _, path := range files {
		notify(events, Event{File: path, Stage: opts.Stage, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = len(files)
	}
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = compileOne(path, loaded[i], loadErrs[i], opts, events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func compileOne(path string, file *source.File, loadErr error, opts Options, events ProgressSink) FileResult {
	start := time.Now()
	notify(events, Event{File: path, Stage: opts.Stage, Status: StatusWorking})
	if loadErr != nil {
		notify(events, Event{File: path, Stage: opts.Stage, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
		return FileResult{Path: path, Err: loadErr}
	}

	span := trace.Begin(opts.Tracer, trace.ScopeModule, "compile_file", opts.ParentSpan).WithExtra("path", path)
	fileOpts := opts
	fileOpts.ParentSpan = span.ID()
	c := Compile(file.Content, fileOpts)
	c.File = file
	span.End(fmt.Sprintf("%d diagnostics", c.Bag.Len()))

	evt := Event{File: path, Stage: opts.Stage, Status: StatusDone, Elapsed: time.Since(start)}
	if n := c.ErrorCount(); n > 0 {
		evt.Status = StatusError
		evt.Err = fmt.Errorf("%d errors", n)
	}
	notify(events, evt)
	return FileResult{Path: path, Compilation: c}
}

// Timings merges the per-file timing reports of a run; nil when no file
// carried one.
func Timings(results []FileResult) *observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Compilation != nil && r.Compilation.Timing != nil {
			reports = append(reports, *r.Compilation.Timing)
		}
	}
	if len(reports) == 0 {
		return nil
	}
	agg := observ.Aggregate(reports)
	return &agg
}
