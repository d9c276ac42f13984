package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// parseType: Path<Args>, &T, &mut T, [T], [T; N], (A, B), (), !
func (p *Parser) parseType() (ast.TypeID, bool) {
	p.enterExpr()
	defer p.leaveExpr()

	switch p.tok.Kind {
	case token.Bang:
		tok := p.advance()
		return p.b.Types.NewNever(tok.Span), true

	case token.Amp, token.AndAnd:
		return p.parseRefType()

	case token.LBracket:
		open := p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		length := ast.NoExprID
		if _, semi := p.eat(token.Semicolon); semi {
			if length, ok = p.parseExpr(); !ok {
				return ast.NoTypeID, false
			}
		}
		if _, ok := p.expectClose(token.RBracket, open); !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewArray(p.spanFrom(open.Span), elem, length), true

	case token.LParen:
		open := p.advance()
		var elems []ast.TypeID
		trailingComma := false
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem, ok := p.parseType()
			if !ok {
				return ast.NoTypeID, false
			}
			elems = append(elems, elem)
			if _, trailingComma = p.eat(token.Comma); !trailingComma {
				break
			}
		}
		if _, ok := p.expectClose(token.RParen, open); !ok {
			return ast.NoTypeID, false
		}
		if len(elems) == 1 && !trailingComma {
			return elems[0], true // (T) это просто T
		}
		return p.b.Types.NewTuple(p.spanFrom(open.Span), elems), true

	case token.Ident:
		return p.parseTypePath()
	}

	p.report(diag.ExpectedConstruct(diag.SynExpectType, p.file.ID, p.diagSpan(), "type", p.found()))
	return ast.NoTypeID, false
}

// parseRefType: &T, &mut T, &&T (две ссылки).
func (p *Parser) parseRefType() (ast.TypeID, bool) {
	tok := p.advance()
	double := tok.Kind == token.AndAnd
	innerStart := tok.Span
	if double {
		innerStart = source.MustSpan(tok.Span.Start()+1, tok.Span.End())
	}
	_, mut := p.eat(token.KwMut)
	elem, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	ref := p.b.Types.NewRef(p.spanFrom(innerStart), mut, elem)
	if double {
		ref = p.b.Types.NewRef(p.spanFrom(tok.Span), false, ref)
	}
	return ref, true
}

// parseTypePath: a::b::C<T, U>
func (p *Parser) parseTypePath() (ast.TypeID, bool) {
	segments, span, ok := p.parsePath()
	if !ok {
		return ast.NoTypeID, false
	}
	var args []ast.TypeID
	if p.at(token.Lt) {
		if args, ok = p.parseTypeArgs(); !ok {
			return ast.NoTypeID, false
		}
		span = p.spanFrom(span)
	}
	return p.b.Types.NewPath(span, segments, args), true
}

// parseTypeArgs: <T, U>. Закрывающая `>` может быть частью `>>`.
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	open := p.advance()
	var args []ast.TypeID
	for !p.atAny(token.Gt, token.Shr, token.GtEq, token.ShrAssign, token.EOF) {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if !p.splitGt() {
		p.report(diag.UnclosedDelimiter(diag.SynExpectRightBracket, p.file.ID, p.diagSpan(), open.Span, ">", p.found()))
		return nil, false
	}
	return args, true
}

// parseBounds: A + B + C
func (p *Parser) parseBounds() ([]ast.TypeID, bool) {
	var bounds []ast.TypeID
	for {
		bound, ok := p.parseType()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, bound)
		if _, plus := p.eat(token.Plus); !plus {
			return bounds, true
		}
	}
}
