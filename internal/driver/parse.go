package driver

import (
	"context"
	"time"

	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/parser"
	"nova/internal/source"
	"nova/internal/trace"
)

// ParseMode selects the parser entry point.
type ParseMode uint8

const (
	ModeFile  ParseMode = iota // последовательность item'ов
	ModeStmts                  // операторы до EOF (repl)
	ModeExpr                   // одно выражение
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID // ModeFile, ModeStmts
	Expr    ast.ExprID // ModeExpr
	Bag     *diag.Bag
	// Incomplete: ошибки упёрлись в EOF, дописанный текст может их снять.
	Incomplete bool
	Fatal      error
}

// Parse loads path and parses it as a sequence of items.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(fs, path, opts)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), ModeFile, opts), nil
}

// ParseSource parses in-memory text registered under name in fs.
func ParseSource(ctx context.Context, fs *source.FileSet, name string, content []byte, mode ParseMode, opts Options) (*ParseResult, error) {
	fileID, err := fs.AddVirtual(name, content)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), mode, opts), nil
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, mode ParseMode, opts Options) *ParseResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "parse", trace.CurrentSpan(ctx)).
		WithExtra("path", file.Path)
	defer span.End("")

	bag := opts.newBag()
	builder := ast.NewBuilder(ast.HintsFor(len(file.Content)), nil)
	popts := opts.Limits.ParserOptions()
	// восстановление после ошибки иногда повторяет ту же диагностику
	popts.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	start := time.Now()
	var (
		res parser.Result
		err error
	)
	switch mode {
	case ModeStmts:
		res, err = parser.ParseStmts(file, builder, popts)
	case ModeExpr:
		res, err = parser.ParseExpr(file, builder, popts)
	default:
		res, err = parser.ParseFile(file, builder, popts)
	}
	if opts.Timer != nil {
		opts.Timer.Add("parse", time.Since(start))
	}

	out := &ParseResult{
		FileSet:    fs,
		File:       file,
		Builder:    builder,
		FileID:     res.File,
		Expr:       res.Expr,
		Bag:        bag,
		Incomplete: res.Incomplete,
	}
	if err != nil {
		out.Fatal = err
		fatalDiagnostic(bag, err)
		span.WithExtra("fatal", err.Error())
	}
	return out
}
