package parser

import (
	"slices"

	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// nextToken тянет токен из лексера; фатальная ошибка лексера прерывает разбор сразу.
func (p *Parser) nextToken() token.Token {
	tok := p.lx.Next()
	if tok.Kind == token.EOF {
		if err := p.lx.Err(); err != nil {
			panic(bailout{err})
		}
	}
	return tok
}

// advance: съедает текущий токен и возвращает его
func (p *Parser) advance() token.Token {
	tok := p.tok
	if tok.Kind != token.EOF {
		p.prev = tok
		p.tok = p.nextToken()
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.tok.Kind)
}

// peek: токен после текущего.
func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) text(tok token.Token) string {
	return tok.Text(p.file)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.b.Strings.Intern(p.text(tok))
}

// found описывает текущий токен для "expected X, found Y".
func (p *Parser) found() string {
	return p.describe(p.tok)
}

func (p *Parser) describe(tok token.Token) string {
	switch {
	case tok.Kind == token.Ident:
		return "identifier `" + p.text(tok) + "`"
	case tok.Kind.IsLiteral():
		return tok.Kind.Describe() + " `" + p.text(tok) + "`"
	case tok.Kind.IsKeyword():
		return "keyword " + tok.Kind.Describe()
	}
	return tok.Kind.Describe()
}

// diagSpan: span для диагностики: на EOF указываем сразу за последним токеном.
func (p *Parser) diagSpan() source.Span {
	if p.at(token.EOF) && p.prev.Kind != token.Invalid {
		return source.EmptySpan(p.prev.Span.End())
	}
	return p.tok.Span
}

// spanFrom: от start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Merge(p.prev.Span)
}

// expect: ожидаем конкретный токен. Если нет: репортим "expected X, found Y".
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(diag.ExpectedConstruct(code, p.file.ID, p.diagSpan(), k.Describe(), p.found()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// expectClose закрывает скобку; при ошибке вторичная метка указывает на открывающую.
func (p *Parser) expectClose(closer token.Kind, opener token.Token, decorate ...func(diag.Diagnostic) diag.Diagnostic) (token.Token, bool) {
	if p.at(closer) {
		return p.advance(), true
	}
	var code diag.Code
	switch closer {
	case token.RParen:
		code = diag.SynUnclosedParen
	case token.RBrace:
		code = diag.SynUnclosedBrace
	case token.RBracket:
		code = diag.SynUnclosedBracket
	default:
		code = diag.SynUnclosedDelimiter
	}
	d := diag.UnclosedDelimiter(code, p.file.ID, p.diagSpan(), opener.Span, closer.Spelling(), p.found())
	for _, fn := range decorate {
		d = fn(d)
	}
	p.report(d)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// expectIdent ожидает идентификатор и интернирует его.
func (p *Parser) expectIdent(what string) (token.Token, source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return tok, p.intern(tok), true
	}
	p.report(diag.ExpectedConstruct(diag.SynExpectIdentifier, p.file.ID, p.diagSpan(), what, p.found()))
	return token.Token{}, source.NoStringID, false
}

// splitGt отщепляет '>' от `>>`, `>=` и `>>=` при закрытии списка generic-аргументов.
func (p *Parser) splitGt() bool {
	var rest token.Kind
	switch p.tok.Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		rest = token.Gt
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	default:
		return false
	}
	sp := p.tok.Span
	p.prev = token.Token{Kind: token.Gt, Span: source.MustSpan(sp.Start(), sp.Start()+1)}
	p.tok = token.Token{Kind: rest, Span: source.MustSpan(sp.Start()+1, sp.End())}
	return true
}

func (p *Parser) report(d diag.Diagnostic) {
	if p.at(token.EOF) && d.Severity == diag.SevError {
		p.incomplete = true
	}
	if d.Severity == diag.SevError {
		p.errors++
		if p.opts.MaxErrors != 0 && uint(p.errors) > p.opts.MaxErrors {
			return // достигли максимального количества ошибок
		}
	}
	p.pending = append(p.pending, d)
}

// enterExpr / leaveExpr считают вложенность выражений, типов и паттернов.
func (p *Parser) enterExpr() {
	p.exprDepth++
	if p.exprDepth > p.opts.maxExpr() {
		p.bailDepth(p.opts.maxExpr(), p.exprDepth)
	}
}

func (p *Parser) leaveExpr() { p.exprDepth-- }

func (p *Parser) enterBlock() {
	p.blockDepth++
	if p.blockDepth > p.opts.maxBlock() {
		p.bailDepth(p.opts.maxBlock(), p.blockDepth)
	}
}

func (p *Parser) leaveBlock() { p.blockDepth-- }

func (p *Parser) bailDepth(limit, actual int) {
	panic(bailout{&diag.LimitError{
		Kind:   diag.ErrNestingTooDeep,
		Code:   diag.SynNestingTooDeep,
		File:   p.file.ID,
		Span:   p.tok.Span,
		Limit:  uint64(limit),
		Actual: uint64(actual),
	}})
}

// withStruct включает или выключает struct-литералы на время fn.
func (p *Parser) withStruct(allowed bool, fn func()) {
	saved := p.noStruct
	p.noStruct = !allowed
	fn()
	p.noStruct = saved
}
