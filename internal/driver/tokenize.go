package driver

import (
	"context"
	"errors"
	"time"

	"nova/internal/diag"
	"nova/internal/lexer"
	"nova/internal/source"
	"nova/internal/trace"
	"nova/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Trivia  []token.Trivia // только при Options.KeepTrivia
	Bag     *diag.Bag
	// Fatal: нарушение лимита; Tokens и Trivia тогда nil, остаётся только Bag.
	Fatal    error
	CacheHit bool
}

// Tokenize loads path and scans it to EOF. The returned error is reserved
// for I/O failures; limit violations land in Fatal and in Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "tokenize", trace.CurrentSpan(ctx)).WithExtra("path", path)
	defer span.End("")

	fs := source.NewFileSet()
	fileID, err := loadTimed(fs, path, opts)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	res := &TokenizeResult{FileSet: fs, File: file, Bag: opts.newBag()}

	useCache := opts.Cache != nil && !opts.KeepTrivia
	key := cacheKey(file, opts.Limits)
	if useCache {
		var entry CacheEntry
		hit, cerr := opts.Cache.Get(key, &entry)
		if cerr == nil && hit {
			if toks, diags, derr := entry.Restore(file); derr == nil {
				res.Tokens = toks
				for _, d := range diags {
					res.Bag.Add(d)
				}
				res.CacheHit = true
				trace.Point(tracer, trace.ScopeFile, "cache_hit", path, span.ID())
				return res, nil
			}
		}
	}

	start := time.Now()
	lexOpts := opts.Limits.LexerOptions()
	lexOpts.Reporter = diag.BagReporter{Bag: res.Bag}
	lexOpts.KeepTrivia = opts.KeepTrivia
	lx, err := lexer.New(file, lexOpts)
	if err != nil {
		res.Fatal = err
		fatalDiagnostic(res.Bag, err)
		return res, nil
	}
	for tok := range lx.All() {
		res.Tokens = append(res.Tokens, tok)
	}
	res.Trivia = lx.Trivia()
	if lerr := lx.Err(); lerr != nil {
		// частичный поток не отдаём
		res.Tokens, res.Trivia = nil, nil
		res.Fatal = lerr
		fatalDiagnostic(res.Bag, lerr)
	}
	if opts.Timer != nil {
		opts.Timer.Add("tokenize", time.Since(start))
	}

	if useCache && res.Fatal == nil {
		// кэш best effort: ошибка записи не ломает токенизацию
		_ = opts.Cache.Put(key, NewCacheEntry(res.Tokens, res.Bag.Items()))
	}
	return res, nil
}

func loadTimed(fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	start := time.Now()
	id, err := fs.Load(path)
	if opts.Timer != nil {
		opts.Timer.Add("load", time.Since(start))
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// IsFatal reports whether err is a resource-limit violation.
func IsFatal(err error) bool {
	return errors.Is(err, diag.ErrNestingTooDeep) || errors.Is(err, diag.ErrSourceTooLarge)
}
