package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"fullpub/internal/diag"
	"fullpub/internal/source"
)

// Options configures a directory expansion run.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	// DryRun skips writing rewritten files back to disk.
	DryRun   bool
	Cache    *DiskCache
	Observer Observer
}

// listDeclFiles returns the sorted *.decl files under dir.
func listDeclFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".decl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every *.decl file under dir in parallel. Results
// come back in path order regardless of completion order. Files with
// diagnostics are never written; independent files do not affect each
// other.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listDeclFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		notify(opts.Observer, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// index per goroutine is unique, no mutex needed
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				notify(opts.Observer, Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			notify(opts.Observer, Event{File: path, Stage: StageParse, Status: StatusWorking})

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			res, hit := lookupCache(opts.Cache, file, opts.MaxDiagnostics)
			if !hit {
				notify(opts.Observer, Event{File: path, Stage: StageExpand, Status: StatusWorking})
				res = ExpandFile(fileSet, fileID, opts.MaxDiagnostics)
				storeCache(opts.Cache, file, &res)
			}

			if res.Bag.HasErrors() {
				results[i] = res
				notify(opts.Observer, Event{File: path, Stage: StageExpand, Status: StatusError})
				return nil
			}

			if res.Changed && !opts.DryRun {
				notify(opts.Observer, Event{File: path, Stage: StageWrite, Status: StatusWorking})
				if err := writeOutput(file, res.Output); err != nil {
					res.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: fileID},
						"failed to write file: "+err.Error()))
					results[i] = res
					notify(opts.Observer, Event{File: path, Stage: StageWrite, Status: StatusError})
					return nil
				}
			}

			results[i] = res
			switch {
			case res.Cached:
				notify(opts.Observer, Event{File: path, Stage: StageWrite, Status: StatusCached})
			case res.Changed:
				notify(opts.Observer, Event{File: path, Stage: StageWrite, Status: StatusDone})
			default:
				notify(opts.Observer, Event{File: path, Stage: StageWrite, Status: StatusClean})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// lookupCache returns a cached result for the file's current content.
// Cache failures degrade to a miss.
func lookupCache(cache *DiskCache, file *source.File, maxDiagnostics int) (FileResult, bool) {
	if cache == nil {
		return FileResult{}, false
	}
	var payload DiskPayload
	hit, err := cache.Get(file.Hash, &payload)
	if err != nil || !hit {
		return FileResult{}, false
	}
	return FileResult{
		Path:    file.Path,
		FileID:  file.ID,
		Bag:     diag.NewBag(maxDiagnostics),
		Output:  payload.Output,
		Changed: payload.Changed,
		Cached:  true,
	}, true
}

// storeCache records a successful result. Results with diagnostics are
// not cached: re-runs should re-report them.
func storeCache(cache *DiskCache, file *source.File, res *FileResult) {
	if cache == nil || res.Bag.HasErrors() {
		return
	}
	// best effort, an unwritable cache must not fail the run
	_ = cache.Put(file.Hash, &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Path:    file.Path,
		Output:  res.Output,
		Changed: res.Changed,
	})
}

func writeOutput(file *source.File, output []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(file.Path, output, mode)
}
