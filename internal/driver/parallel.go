package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/trace"
)

// ParseDirResult содержит результат парсинга одного файла.
type ParseDirResult struct {
	Path     string
	SourceID source.FileID // FileID остаётся за ast-идентификатором из ParseResult
	*ParseResult
	LoadErr error // файл не прочитан; ParseResult тогда nil, SourceID указывает на пустой виртуальный файл
}

// ParseDir parses files concurrently with one lexer, parser and Bag per file.
// Results come back in the order of files. The returned error is only ctx's.
func ParseDir(ctx context.Context, files []string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "parse_dir", trace.CurrentSpan(ctx)).
		WithExtra("files", strconv.Itoa(len(files)))
	defer pass.End("")
	ctx = trace.WithSpan(ctx, pass)

	fileSet := source.NewFileSet()
	results := make([]ParseDirResult, len(files))
	if len(files) == 0 {
		return fileSet, results, nil
	}

	// грузим заранее и по порядку: FileID совпадают с индексами files
	for i, path := range files {
		results[i].Path = path
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := loadTimed(fileSet, path, opts)
		if err != nil {
			results[i].LoadErr = err
			id, _ = fileSet.AddVirtual(path, nil)
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		}
		results[i].SourceID = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	for i := range files {
		if results[i].LoadErr != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := files[i]
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})

			res := parseLoaded(gctx, fileSet, fileSet.Get(results[i].SourceID), ModeFile, opts)
			results[i].ParseResult = res

			status := StatusDone
			var err error
			switch {
			case res.Fatal != nil:
				status, err = StatusError, res.Fatal
			case res.Bag.HasErrors():
				status = StatusError
				err = fmt.Errorf("%d error(s)", res.Bag.Count(diag.SevError))
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Err: err, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// Merged collects the diagnostics of every result into one sorted Bag.
// Load failures become IO diagnostics with an empty span.
func Merged(results []ParseDirResult) *diag.Bag {
	out := diag.NewBag(0)
	for _, r := range results {
		if r.LoadErr != nil {
			out.Add(diag.NewError(diag.IOLoadFileError, r.SourceID, source.EmptySpan(0), "failed to load file: "+r.LoadErr.Error()))
			continue
		}
		if r.ParseResult != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
