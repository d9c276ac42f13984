package parser

import (
	"strconv"
	"strings"

	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// parsePostfixExpr обрабатывает постфиксные операторы: вызов, индекс, поле, `?`.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.tok.Kind {
		case token.LParen:
			// Вызов функции: expr(args...)
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			// Индексация: expr[index]
			expr, ok = p.parseIndexExpr(expr)
		case token.Dot:
			// Доступ к полю: expr.field, expr.0
			expr, ok = p.parseFieldExpr(expr)
		case token.Question:
			q := p.advance()
			expr = p.b.Exprs.NewWrap(ast.ExprTry, p.exprSpan(expr).Merge(q.Span), expr)
		default:
			// Больше постфиксов нет
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallExpr(callee ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	args, ok := p.parseExprList(open, token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewCall(p.spanFrom(p.exprSpan(callee)), callee, args), true
}

func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	var index ast.ExprID
	ok := true
	p.withStruct(true, func() { index, ok = p.parseExpr() })
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expectClose(token.RBracket, open); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewIndex(p.spanFrom(p.exprSpan(target)), target, index), true
}

// parseFieldExpr: `.name`, `.0`. Лексер читает `t.0.1` как t . FloatLit("0.1"),
// поэтому литерал с точкой разбивается на два доступа по индексу.
func (p *Parser) parseFieldExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '.'
	start := p.exprSpan(target)
	switch p.tok.Kind {
	case token.Ident:
		name := p.advance()
		return p.b.Exprs.NewField(p.spanFrom(start), target, p.intern(name)), true
	case token.IntLit:
		tok := p.advance()
		idx, ok := p.tupleIndex(tok.Span)
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewTupleIndex(p.spanFrom(start), target, idx), true
	case token.FloatLit:
		tok := p.advance()
		text := p.text(tok)
		dot := strings.IndexByte(text, '.')
		if dot <= 0 || dot == len(text)-1 {
			break
		}
		sp := tok.Span
		firstSpan := source.MustSpan(sp.Start(), sp.Start()+uint32(dot))
		secondSpan := source.MustSpan(sp.Start()+uint32(dot)+1, sp.End())
		first, ok1 := p.tupleIndex(firstSpan)
		second, ok2 := p.tupleIndex(secondSpan)
		if !ok1 || !ok2 {
			return ast.NoExprID, false
		}
		inner := p.b.Exprs.NewTupleIndex(start.Merge(firstSpan), target, first)
		return p.b.Exprs.NewTupleIndex(start.Merge(sp), inner, second), true
	}
	p.report(diag.ExpectedConstruct(diag.SynExpectIdentifier, p.file.ID, p.diagSpan(), "field name", p.found()))
	return ast.NoExprID, false
}

func (p *Parser) tupleIndex(sp source.Span) (uint32, bool) {
	text := p.file.Text(sp)
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		p.report(diag.NewError(diag.SynExpectIdentifier, p.file.ID, sp, "invalid tuple index `"+text+"`").
			WithLabelText("expected a plain decimal index"))
		return 0, false
	}
	return uint32(n), true
}

// parseExprList разбирает `a, b, c` до closer (съедает его). Хвостовая запятая допустима.
func (p *Parser) parseExprList(open token.Token, closer token.Kind) ([]ast.ExprID, bool) {
	var out []ast.ExprID
	p.withStruct(true, func() {
		for !p.at(closer) && !p.at(token.EOF) {
			expr, ok := p.parseExpr()
			if ok {
				out = append(out, expr)
			} else {
				p.resyncList(closer)
			}
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	})
	if _, ok := p.expectClose(closer, open); !ok {
		return nil, false
	}
	return out, true
}
