package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/fix"
	"nova/internal/source"
	"nova/internal/token"
)

// parseBlockExpr: { stmts [tail] }
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	open := p.advance()
	p.enterBlock()
	defer p.leaveBlock()

	var stmts []ast.StmtID
	tail := ast.NoExprID
	p.withStruct(true, func() {
		stmts, tail = p.parseBlockBody(token.RBrace)
	})

	closeFix := func(d diag.Diagnostic) diag.Diagnostic {
		insertAt := source.EmptySpan(p.prev.Span.End())
		return d.WithFixSuggestion(fix.InsertText("insert `}` to close the block", insertAt, "}",
			fix.WithApplicability(diag.FixMaybeIncorrect)))
	}
	if _, ok := p.expectClose(token.RBrace, open, closeFix); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBlock(p.spanFrom(open.Span), stmts, tail), true
}

// parseStmtList: операторы до end (EOF для REPL); последнее выражение без ';'
// превращается в ExprStmt с Semi == false.
func (p *Parser) parseStmtList(end token.Kind) []ast.StmtID {
	stmts, tail := p.parseBlockBody(end)
	if tail.IsValid() {
		stmts = append(stmts, p.b.Stmts.NewExpr(p.exprSpan(tail), tail, false))
	}
	return stmts
}

// parseBlockBody разбирает операторы до end, не съедая его.
// Выражение перед end без ';' становится хвостом блока.
func (p *Parser) parseBlockBody(end token.Kind) ([]ast.StmtID, ast.ExprID) {
	var stmts []ast.StmtID
	for !p.at(end) && !p.at(token.EOF) {
		before := p.tok.Span
		stmt, tail, ok := p.parseStmt(end)
		switch {
		case tail.IsValid():
			return stmts, tail
		case ok:
			stmts = append(stmts, stmt)
		default:
			// ошибка при парсинге statement: восстанавливаемся до следующего statement
			p.resyncStmt()
		}
		if p.tok.Span == before && !p.at(token.EOF) && !p.at(end) {
			p.advance() // гарантия продвижения
		}
	}
	return stmts, ast.NoExprID
}

// parseStmt возвращает либо оператор, либо хвостовое выражение блока.
func (p *Parser) parseStmt(end token.Kind) (ast.StmtID, ast.ExprID, bool) {
	switch {
	case p.at(token.Semicolon):
		tok := p.advance()
		return p.b.Stmts.NewEmpty(tok.Span), ast.NoExprID, true
	case p.at(token.KwLet):
		stmt, ok := p.parseLetStmt()
		return stmt, ast.NoExprID, ok
	case isItemStart(p.tok.Kind):
		item, ok := p.parseItem()
		if !ok {
			return ast.NoStmtID, ast.NoExprID, false
		}
		return p.b.Stmts.NewItem(p.b.Items.Get(item).Span, item), ast.NoExprID, true
	}
	return p.parseExprStmt(end)
}

func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoStmtID, false
	}
	typ := ast.NoTypeID
	if _, colon := p.eat(token.Colon); colon {
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	value := ast.NoExprID
	if _, assign := p.eat(token.Assign); assign {
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, semi := p.eat(token.Semicolon); !semi {
		p.missingSemicolon()
	}
	return p.b.Stmts.NewLet(p.spanFrom(letTok.Span), pat, typ, value), true
}

// missingSemicolon: ';' не съедаем, разбор продолжается с текущего токена.
func (p *Parser) missingSemicolon() {
	insertAt := source.EmptySpan(p.prev.Span.End())
	p.report(diag.MissingSemicolon(p.file.ID, insertAt, p.tok.Span, p.found()))
}

func (p *Parser) parseExprStmt(end token.Kind) (ast.StmtID, ast.ExprID, bool) {
	// if/match/while/for/{} в позиции оператора стоят отдельно: `if a {} - 1` это два оператора
	blockLike := p.atAny(token.KwIf, token.KwMatch, token.KwWhile, token.KwFor, token.LBrace)
	var expr ast.ExprID
	var ok bool
	if blockLike {
		expr, ok = p.parseBlockLikeStmtExpr()
	} else {
		expr, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoStmtID, ast.NoExprID, false
	}

	if semi, hasSemi := p.eat(token.Semicolon); hasSemi {
		return p.b.Stmts.NewExpr(p.exprSpan(expr).Merge(semi.Span), expr, true), ast.NoExprID, true
	}
	if p.at(end) || (end != token.EOF && p.at(token.EOF)) {
		return ast.NoStmtID, expr, true
	}
	if !blockLike {
		p.missingSemicolon()
	}
	return p.b.Stmts.NewExpr(p.exprSpan(expr), expr, false), ast.NoExprID, true
}

func (p *Parser) parseBlockLikeStmtExpr() (ast.ExprID, bool) {
	p.enterExpr()
	defer p.leaveExpr()
	return p.parsePrimaryExpr()
}
