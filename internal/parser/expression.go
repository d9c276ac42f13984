package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseExprNoStruct: выражение в позиции условия: `if x {` это не struct-литерал.
func (p *Parser) parseExprNoStruct() (id ast.ExprID, ok bool) {
	p.withStruct(false, func() { id, ok = p.parseExpr() })
	return id, ok
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	p.enterExpr()
	defer p.leaveExpr()

	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	chained := -1 // приоритет последнего неассоциативного оператора на этом уровне
	for {
		info, isBinary := binaryOperator(p.tok.Kind)
		if !isBinary || info.prec < minPrec {
			break
		}
		opTok := p.advance()
		if info.assoc == assocNone && chained == info.prec {
			p.report(diag.NonAssociative(p.file.ID, opTok.Span, opTok.Kind.Spelling()))
		}

		// Вычисляем приоритет для правой части
		nextMinPrec := info.prec + 1
		if info.assoc == assocRight {
			nextMinPrec = info.prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.exprSpan(left).Merge(p.exprSpan(right))
		left = p.b.Exprs.NewBinary(span, info.op, left, right)
		if info.assoc == assocNone {
			chained = info.prec
		}
	}
	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.UnaryOp
		span source.Span
	}
	var prefixes []prefixOp

	// Собираем все префиксы
	for {
		tok := p.tok
		switch {
		case tok.Kind == token.AndAnd:
			// `&&x` это две ссылки
			p.advance()
			sp := tok.Span
			prefixes = append(prefixes,
				prefixOp{ast.UnaryRef, sp},
				prefixOp{ast.UnaryRef, source.MustSpan(sp.Start()+1, sp.End())})
			if mutTok, ok := p.eat(token.KwMut); ok {
				prefixes[len(prefixes)-1] = prefixOp{ast.UnaryRefMut, prefixes[len(prefixes)-1].span.Merge(mutTok.Span)}
			}
			continue
		case tok.Kind == token.Amp:
			p.advance()
			if mutTok, ok := p.eat(token.KwMut); ok {
				prefixes = append(prefixes, prefixOp{ast.UnaryRefMut, tok.Span.Merge(mutTok.Span)})
			} else {
				prefixes = append(prefixes, prefixOp{ast.UnaryRef, tok.Span})
			}
			continue
		}
		op, isPrefix := prefixOperator(tok.Kind)
		if !isPrefix {
			break
		}
		p.advance()
		prefixes = append(prefixes, prefixOp{op, tok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		span := prefixes[i].span.Merge(p.exprSpan(expr))
		expr = p.b.Exprs.NewUnary(span, prefixes[i].op, expr)
	}
	return expr, true
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	return p.b.Exprs.Get(id).Span
}
