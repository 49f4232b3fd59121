package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SourceExt is the file extension the frontend accepts.
const SourceExt = ".aeth"

// DirResult aggregates per-file results of a directory run.
type DirResult struct {
	Results []*CheckResult
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for _, res := range r.Results {
		if res.HasErrors() {
			return true
		}
	}
	return false
}

// ListSourceFiles returns the sorted .aeth files directly under dir and
// its subdirectories. Hidden directories are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir runs CheckFile over every .aeth file under dir, jobs wide.
// jobs <= 0 uses one worker per CPU. Results come back sorted by path
// regardless of completion order.
func CheckDir(ctx context.Context, dir string, jobs int, opts *CheckOptions) (*DirResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found under %q", SourceExt, dir)
	}

	var sink ProgressSink
	if opts != nil {
		sink = opts.Progress
	}
	for _, file := range files {
		emit(sink, file, StageParse, StatusQueued, nil)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			// Each worker gets its own type interner; TypeIDs are
			// never compared across files.
			perFile := CheckOptions{Progress: sink}
			if opts != nil {
				perFile.MaxDiagnostics = opts.MaxDiagnostics
			}
			res, err := CheckFile(gctx, file, &perFile)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &DirResult{Results: results}, nil
}
