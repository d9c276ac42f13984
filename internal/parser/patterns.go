package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/token"
)

// parsePattern: _, x, mut x, литерал (в том числе -1), (a, b).
func (p *Parser) parsePattern() (ast.PatID, bool) {
	p.enterExpr()
	defer p.leaveExpr()

	switch p.tok.Kind {
	case token.Underscore:
		tok := p.advance()
		return p.b.Pats.NewWild(tok.Span), true

	case token.KwMut:
		mutTok := p.advance()
		nameTok, name, ok := p.expectIdent("binding name after `mut`")
		if !ok {
			return ast.NoPatID, false
		}
		return p.b.Pats.NewBind(mutTok.Span.Merge(nameTok.Span), name, true), true

	case token.Ident:
		tok := p.advance()
		return p.b.Pats.NewBind(tok.Span, p.intern(tok), false), true

	case token.Minus:
		minus := p.advance()
		if !p.atAny(token.IntLit, token.FloatLit) {
			p.report(diag.ExpectedConstruct(diag.SynExpectPattern, p.file.ID, p.diagSpan(), "numeric literal after `-`", p.found()))
			return ast.NoPatID, false
		}
		kind := ast.LitInt
		if p.at(token.FloatLit) {
			kind = ast.LitFloat
		}
		lit := p.advance()
		return p.b.Pats.NewLit(minus.Span.Merge(lit.Span), kind, true, p.intern(lit)), true

	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.b.Pats.NewLit(tok.Span, patLitKind(tok.Kind), false, p.intern(tok)), true

	case token.Invalid:
		tok := p.advance()
		return p.b.Pats.NewInvalid(tok.Span), true

	case token.LParen:
		open := p.advance()
		var elems []ast.PatID
		trailingComma := false
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem, ok := p.parsePattern()
			if !ok {
				return ast.NoPatID, false
			}
			elems = append(elems, elem)
			if _, trailingComma = p.eat(token.Comma); !trailingComma {
				break
			}
		}
		if _, ok := p.expectClose(token.RParen, open); !ok {
			return ast.NoPatID, false
		}
		if len(elems) == 1 && !trailingComma {
			return elems[0], true
		}
		return p.b.Pats.NewTuple(p.spanFrom(open.Span), elems), true
	}

	p.report(diag.ExpectedConstruct(diag.SynExpectPattern, p.file.ID, p.diagSpan(), "pattern", p.found()))
	return ast.NoPatID, false
}

func patLitKind(k token.Kind) ast.LitKind {
	switch k {
	case token.FloatLit:
		return ast.LitFloat
	case token.StringLit:
		return ast.LitString
	case token.CharLit:
		return ast.LitChar
	case token.KwTrue:
		return ast.LitTrue
	case token.KwFalse:
		return ast.LitFalse
	default:
		return ast.LitInt
	}
}
