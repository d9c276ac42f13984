package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/lexer"
	"nova/internal/source"
	"nova/internal/token"
)

const (
	DefaultMaxExprDepth  = 64
	DefaultMaxBlockDepth = 64
)

type Options struct {
	MaxErrors     uint // 0 = без ограничения
	MaxExprDepth  int  // вложенность выражений, типов и паттернов
	MaxBlockDepth int  // вложенность блоков и тел item'ов
	Reporter      diag.Reporter
	// Lexer задаёт лимиты лексера; его Reporter игнорируется, диагностики идут через парсер.
	Lexer lexer.Options
}

func (o Options) maxExpr() int {
	if o.MaxExprDepth <= 0 {
		return DefaultMaxExprDepth
	}
	return o.MaxExprDepth
}

func (o Options) maxBlock() int {
	if o.MaxBlockDepth <= 0 {
		return DefaultMaxBlockDepth
	}
	return o.MaxBlockDepth
}

type Result struct {
	File ast.FileID // ParseFile, ParseStmts
	Expr ast.ExprID // ParseExpr
	// Errors считает все ошибки, включая отброшенные сверх MaxErrors.
	Errors int
	// Incomplete: хотя бы одна ошибка случилась на конце файла (REPL ждёт продолжения).
	Incomplete bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	file *source.File
	b    *ast.Builder
	opts Options

	tok  token.Token // текущий, ещё не съеденный токен
	prev token.Token // последний съеденный, для спанов и вставок

	pending    []diag.Diagnostic // сбрасываются в Reporter только при успешном разборе
	errors     int
	incomplete bool

	exprDepth  int
	blockDepth int
	noStruct   bool // `Path {` не struct-литерал (условия if/while/match/for)
}

// bailout прерывает разбор при фатальной ошибке лимита.
type bailout struct{ err error }

type bufferReporter struct{ p *Parser }

func (r bufferReporter) Report(d diag.Diagnostic) { r.p.report(d) }

func run(file *source.File, b *ast.Builder, opts Options, body func(p *Parser)) (res Result, err error) {
	p := &Parser{file: file, b: b, opts: opts}
	lexOpts := opts.Lexer
	lexOpts.Reporter = bufferReporter{p}
	p.lx, err = lexer.New(file, lexOpts)
	if err != nil {
		return Result{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			bo, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			res, err = Result{}, bo.err
		}
	}()

	p.tok = p.nextToken()
	p.prev = token.Token{Kind: token.Invalid, Span: source.EmptySpan(p.tok.Span.Start())}
	body(p)
	if lerr := p.lx.Err(); lerr != nil {
		return Result{}, lerr
	}
	p.flush()
	return Result{Errors: p.errors, Incomplete: p.incomplete}, nil
}

// ParseFile разбирает файл как последовательность item'ов.
// Ошибка возвращается только для фатальных нарушений лимитов, и тогда AST не строится.
func ParseFile(file *source.File, b *ast.Builder, opts Options) (Result, error) {
	var id ast.FileID
	res, err := run(file, b, opts, func(p *Parser) {
		id = p.b.NewFile(file.ID, source.EmptySpan(0))
		p.parseItems(id)
		p.b.Files.Get(id).Span = source.MustSpan(0, file.Len())
	})
	res.File = id
	if err != nil {
		res.File = ast.NoFileID
	}
	return res, err
}

// ParseStmts разбирает последовательность операторов до EOF (режим REPL).
// Последнее выражение можно не закрывать ';'.
func ParseStmts(file *source.File, b *ast.Builder, opts Options) (Result, error) {
	var id ast.FileID
	res, err := run(file, b, opts, func(p *Parser) {
		id = p.b.NewFile(file.ID, source.EmptySpan(0))
		p.b.Files.Get(id).Stmts = p.parseStmtList(token.EOF)
		p.b.Files.Get(id).Span = source.MustSpan(0, file.Len())
	})
	res.File = id
	if err != nil {
		res.File = ast.NoFileID
	}
	return res, err
}

// ParseExpr разбирает ровно одно выражение.
func ParseExpr(file *source.File, b *ast.Builder, opts Options) (Result, error) {
	var id ast.ExprID
	res, err := run(file, b, opts, func(p *Parser) {
		expr, ok := p.parseExpr()
		if !ok {
			return
		}
		id = expr
		if !p.at(token.EOF) {
			p.report(diag.UnexpectedToken(p.file.ID, p.tok.Span, "end of file", p.found()))
		}
	})
	res.Expr = id
	if err != nil {
		res.Expr = ast.NoExprID
	}
	return res, err
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems(file ast.FileID) {
	for !p.at(token.EOF) {
		if !isItemStart(p.tok.Kind) {
			p.report(diag.ExpectedConstruct(diag.SynUnexpectedTopLevel, p.file.ID, p.tok.Span, "item", p.found()))
			p.resyncTop()
			continue
		}
		if item, ok := p.parseItem(); ok {
			p.b.PushItem(file, item)
			continue
		}
		p.resyncTop()
	}
}

func (p *Parser) flush() {
	if p.opts.Reporter == nil {
		return
	}
	for _, d := range p.pending {
		p.opts.Reporter.Report(d)
	}
	p.pending = nil
}
