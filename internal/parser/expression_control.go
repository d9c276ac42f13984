package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/token"
)

// expectBlock разбирает обязательный блок `{ ... }` после условия/заголовка.
func (p *Parser) expectBlock(what string) (ast.ExprID, bool) {
	if !p.at(token.LBrace) {
		p.report(diag.ExpectedConstruct(diag.SynExpectBlock, p.file.ID, p.diagSpan(), "`{` to start "+what, p.found()))
		return ast.NoExprID, false
	}
	return p.parseBlockExpr()
}

// parseIfExpr: if cond { } [else if ... | else { }]
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.expectBlock("the `if` body")
	if !ok {
		return ast.NoExprID, false
	}

	els := ast.NoExprID
	if _, hasElse := p.eat(token.KwElse); hasElse {
		if p.at(token.KwIf) {
			els, ok = p.parseIfExpr()
		} else {
			els, ok = p.expectBlock("the `else` body")
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.b.Exprs.NewIf(p.spanFrom(ifTok.Span), cond, then, els), true
}

// parseMatchExpr: match x { pat [if guard] => expr, ... }
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	matchTok := p.advance()
	scrutinee, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LBrace) {
		p.report(diag.ExpectedConstruct(diag.SynExpectBlock, p.file.ID, p.diagSpan(), "`{` after match scrutinee", p.found()))
		return ast.NoExprID, false
	}
	open := p.advance()
	p.enterBlock()
	defer p.leaveBlock()

	var arms []ast.MatchArm
	p.withStruct(true, func() {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			arm, ok := p.parseMatchArm()
			if ok {
				arms = append(arms, arm)
				if _, comma := p.eat(token.Comma); comma {
					continue
				}
				// после блока запятая необязательна
				if p.b.Exprs.Get(arm.Body).Kind.IsBlockLike() || p.at(token.RBrace) {
					continue
				}
				p.report(diag.ExpectedConstruct(diag.SynUnexpectedToken, p.file.ID, p.diagSpan(), "`,` or `}` after match arm", p.found()))
			}
			p.resyncList(token.RBrace)
			// resync стоит на чужой закрывающей скобке: дальше разбирать нечего, отдаём её expectClose
			if _, comma := p.eat(token.Comma); !comma {
				break
			}
		}
	})
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewMatch(p.spanFrom(matchTok.Span), scrutinee, arms), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	pat, ok := p.parsePattern()
	if !ok {
		return ast.MatchArm{}, false
	}
	start := p.b.Pats.Get(pat).Span
	guard := ast.NoExprID
	if _, hasGuard := p.eat(token.KwIf); hasGuard {
		if guard, ok = p.parseExpr(); !ok {
			return ast.MatchArm{}, false
		}
	}
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken); !ok {
		return ast.MatchArm{}, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.MatchArm{}, false
	}
	return ast.MatchArm{Pat: pat, Guard: guard, Body: body, Span: p.spanFrom(start)}, true
}

// parseWhileExpr: while cond { }
func (p *Parser) parseWhileExpr() (ast.ExprID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.expectBlock("the loop body")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewWhile(p.spanFrom(whileTok.Span), cond, body), true
}

// parseForExpr: for pat in expr { }
func (p *Parser) parseForExpr() (ast.ExprID, bool) {
	forTok := p.advance()
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn); !ok {
		return ast.NoExprID, false
	}
	iter, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.expectBlock("the loop body")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewFor(p.spanFrom(forTok.Span), pat, iter, body), true
}
