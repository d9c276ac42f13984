package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/token"
)

// parseGenericParams: <T, U: A + B>. Вызывать только на `<`.
func (p *Parser) parseGenericParams() ([]ast.GenericParam, bool) {
	open := p.advance()
	var params []ast.GenericParam
	for !p.atAny(token.Gt, token.Shr, token.GtEq, token.ShrAssign, token.EOF) {
		nameTok, name, ok := p.expectIdent("generic parameter name")
		if !ok {
			return nil, false
		}
		param := ast.GenericParam{Name: name, Span: nameTok.Span}
		if _, colon := p.eat(token.Colon); colon {
			if param.Bounds, ok = p.parseBounds(); !ok {
				return nil, false
			}
			param.Span = p.spanFrom(nameTok.Span)
		}
		params = append(params, param)
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if !p.splitGt() {
		p.report(diag.UnclosedDelimiter(diag.SynExpectRightBracket, p.file.ID, p.diagSpan(), open.Span, ">", p.found()))
		return nil, false
	}
	return params, true
}

// parseOptGenerics: generic-параметры, если они есть.
func (p *Parser) parseOptGenerics() ([]ast.GenericParam, bool) {
	if !p.at(token.Lt) {
		return nil, true
	}
	return p.parseGenericParams()
}

// parseWhereClause: where T: A + B, U: C
// Список кончается на `{` или `;`; запятая в конце допустима.
func (p *Parser) parseWhereClause() ([]ast.WherePred, bool) {
	if _, ok := p.eat(token.KwWhere); !ok {
		return nil, true
	}
	var preds []ast.WherePred
	for !p.atAny(token.LBrace, token.Semicolon, token.EOF) {
		start := p.tok.Span
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
			return nil, false
		}
		bounds, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		preds = append(preds, ast.WherePred{Type: ty, Bounds: bounds, Span: p.spanFrom(start)})
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	return preds, true
}
