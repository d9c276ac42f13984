package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch p.tok.Kind {
	case token.IntLit:
		return p.parseLiteral(ast.LitInt), true
	case token.FloatLit:
		return p.parseLiteral(ast.LitFloat), true
	case token.StringLit:
		return p.parseLiteral(ast.LitString), true
	case token.CharLit:
		return p.parseLiteral(ast.LitChar), true
	case token.KwTrue:
		return p.parseLiteral(ast.LitTrue), true
	case token.KwFalse:
		return p.parseLiteral(ast.LitFalse), true

	case token.Invalid:
		// лексер уже сообщил об ошибке; не каскадируем
		tok := p.advance()
		return p.b.Exprs.NewInvalid(tok.Span), true

	case token.Ident:
		return p.parsePathOrStructLiteral()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayExpr()
	case token.LBrace:
		return p.parseBlockExpr()

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwWhile:
		return p.parseWhileExpr()
	case token.KwFor:
		return p.parseForExpr()
	case token.KwReturn:
		return p.parseJumpExpr(ast.ExprReturn)
	case token.KwBreak:
		return p.parseJumpExpr(ast.ExprBreak)
	case token.KwContinue:
		tok := p.advance()
		return p.b.Exprs.NewContinue(tok.Span), true

	default:
		p.report(diag.ExpectedConstruct(diag.SynExpectExpression, p.file.ID, p.diagSpan(), "expression", p.found()))
		return ast.NoExprID, false
	}
}

func (p *Parser) parseLiteral(kind ast.LitKind) ast.ExprID {
	tok := p.advance()
	return p.b.Exprs.NewLit(tok.Span, kind, p.intern(tok))
}

// parsePath: a::b::c. Текущий токен - Ident.
func (p *Parser) parsePath() ([]source.StringID, source.Span, bool) {
	first := p.advance()
	segments := []source.StringID{p.intern(first)}
	for p.at(token.ColonColon) {
		p.advance()
		_, name, ok := p.expectIdent("identifier after `::`")
		if !ok {
			return nil, source.Span{}, false
		}
		segments = append(segments, name)
	}
	return segments, p.spanFrom(first.Span), true
}

func (p *Parser) parsePathOrStructLiteral() (ast.ExprID, bool) {
	segments, span, ok := p.parsePath()
	if !ok {
		return ast.NoExprID, false
	}
	path := p.b.Exprs.NewPath(span, segments)
	if p.noStruct || !p.at(token.LBrace) {
		return path, true
	}
	return p.parseStructLiteral(path)
}

// parseStructLiteral: Path { a: e, b, }
func (p *Parser) parseStructLiteral(path ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	var fields []ast.FieldInit
	p.withStruct(true, func() {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			nameTok, name, ok := p.expectIdent("field name")
			if !ok {
				p.resyncList(token.RBrace)
			} else if _, colon := p.eat(token.Colon); colon {
				value, ok := p.parseExpr()
				if ok {
					fields = append(fields, ast.FieldInit{Name: name, Value: value, Span: p.spanFrom(nameTok.Span)})
				} else {
					p.resyncList(token.RBrace)
				}
			} else {
				// сокращение `Point { x }`
				value := p.b.Exprs.NewPath(nameTok.Span, []source.StringID{name})
				fields = append(fields, ast.FieldInit{Name: name, Value: value, Span: nameTok.Span})
			}
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	})
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewStruct(p.spanFrom(p.exprSpan(path)), path, fields), true
}

// parseParenExpr: (): пустой кортеж, (e): группа, (e,) и (a, b): кортеж.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	var elems []ast.ExprID
	trailingComma := false
	ok := true
	p.withStruct(true, func() {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			var expr ast.ExprID
			expr, ok = p.parseExpr()
			if !ok {
				return
			}
			elems = append(elems, expr)
			_, trailingComma = p.eat(token.Comma)
			if !trailingComma {
				break
			}
		}
	})
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoExprID, false
	}
	span := p.spanFrom(open.Span)
	if len(elems) == 1 && !trailingComma {
		return p.b.Exprs.NewWrap(ast.ExprGroup, span, elems[0]), true
	}
	return p.b.Exprs.NewList(ast.ExprTuple, span, elems), true
}

// parseArrayExpr: [a, b, c] или [x; n].
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBracket) {
		p.advance()
		return p.b.Exprs.NewList(ast.ExprArray, p.spanFrom(open.Span), nil), true
	}

	var first ast.ExprID
	ok := true
	p.withStruct(true, func() { first, ok = p.parseExpr() })
	if !ok {
		return ast.NoExprID, false
	}

	if _, semi := p.eat(token.Semicolon); semi {
		var count ast.ExprID
		p.withStruct(true, func() { count, ok = p.parseExpr() })
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expectClose(token.RBracket, open); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewRepeat(p.spanFrom(open.Span), first, count), true
	}

	elems := []ast.ExprID{first}
	if _, comma := p.eat(token.Comma); comma {
		rest, ok := p.parseExprList(open, token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, rest...)
	} else if _, ok := p.expectClose(token.RBracket, open); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewList(ast.ExprArray, p.spanFrom(open.Span), elems), true
}

// parseJumpExpr: return [expr], break [expr].
func (p *Parser) parseJumpExpr(kind ast.ExprKind) (ast.ExprID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if canStartExpr(p.tok.Kind) && !(p.noStruct && p.at(token.LBrace)) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.b.Exprs.NewWrap(kind, p.spanFrom(kw.Span), value), true
}
