package parser

import (
	"nova/internal/token"
)

// isItemStart: принадлежит ли токен стартерам item.
func isItemStart(k token.Kind) bool {
	switch k {
	case token.KwPub, token.KwFn, token.KwStruct, token.KwEnum, token.KwImpl,
		token.KwTrait, token.KwUse, token.KwType, token.KwMod:
		return true
	default:
		return false
	}
}

// resyncUntil прокручивает токены, пока stop не вернёт true на нулевой глубине скобок.
// Парные скобки пропускаются целиком; лишняя закрывающая на нулевой глубине
// останавливает прокрутку, если closerStops, иначе съедается.
func (p *Parser) resyncUntil(stop func(token.Kind) bool, closerStops bool) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.tok.Kind
		if depth == 0 && stop(k) {
			return
		}
		switch k {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				if closerStops {
					return
				}
			} else {
				depth--
			}
		}
		p.advance()
	}
}

// resyncStmt: после ошибки в операторе: до ';' (съедается), '}' (не съедается),
// `let` или начала item.
func (p *Parser) resyncStmt() {
	p.resyncUntil(func(k token.Kind) bool {
		return k == token.Semicolon || k == token.KwLet || isItemStart(k)
	}, true)
	p.eat(token.Semicolon)
}

// resyncTop: восстановление на верхнем уровне: только до начала следующего item.
// Текущий токен всегда съедается, чтобы цикл гарантированно продвигался.
func (p *Parser) resyncTop() {
	if !p.at(token.EOF) && !isItemStart(p.tok.Kind) {
		p.advance()
	}
	p.resyncUntil(isItemStart, false)
}

// resyncList: внутри списка через запятую: до ',' или закрывающей скобки.
func (p *Parser) resyncList(closer token.Kind) {
	p.resyncUntil(func(k token.Kind) bool {
		return k == token.Comma || k == closer || k == token.Semicolon
	}, true)
}
