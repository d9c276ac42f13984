package parser

import (
	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

const selfName = "self"

// itemCtx: где разбирается item: в trait допустимы fn без тела.
type itemCtx uint8

const (
	ctxModule itemCtx = iota
	ctxImpl
	ctxTrait
)

// parseItem разбирает [pub] item. Текущий токен: стартер item.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	return p.parseItemIn(ctxModule)
}

func (p *Parser) parseItemIn(ctx itemCtx) (ast.ItemID, bool) {
	start := p.tok.Span
	_, pub := p.eat(token.KwPub)

	switch p.tok.Kind {
	case token.KwFn:
		return p.parseFnItem(start, pub, ctx)
	case token.KwStruct:
		return p.parseStructItem(start, pub)
	case token.KwEnum:
		return p.parseEnumItem(start, pub)
	case token.KwImpl:
		if pub {
			p.report(diag.UnexpectedToken(p.file.ID, start, "item", "`pub` before `impl`"))
		}
		return p.parseImplItem(start)
	case token.KwTrait:
		return p.parseTraitItem(start, pub)
	case token.KwUse:
		return p.parseUseItem(start, pub)
	case token.KwType:
		return p.parseTypeAliasItem(start, pub)
	case token.KwMod:
		return p.parseModItem(start, pub)
	}
	p.report(diag.ExpectedConstruct(diag.SynUnexpectedTopLevel, p.file.ID, p.diagSpan(), "item", p.found()))
	return ast.NoItemID, false
}

// parseFnItem: fn name<T>(params) -> R where ... { body }
func (p *Parser) parseFnItem(start source.Span, pub bool, ctx itemCtx) (ast.ItemID, bool) {
	p.advance() // fn
	_, name, ok := p.expectIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	var fn ast.FnItem
	fn.Result = ast.NoTypeID
	fn.Body = ast.NoExprID

	if fn.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoItemID, false
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseFnParam(len(fn.Params) == 0)
		if !ok {
			p.resyncList(token.RParen)
		} else {
			fn.Params = append(fn.Params, param)
		}
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoItemID, false
	}

	if _, arrow := p.eat(token.Arrow); arrow {
		if fn.Result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if fn.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}

	switch {
	case p.at(token.LBrace):
		if fn.Body, ok = p.parseBlockExpr(); !ok {
			return ast.NoItemID, false
		}
	case ctx == ctxTrait && p.at(token.Semicolon):
		p.advance()
	default:
		p.report(diag.ExpectedConstruct(diag.SynExpectItemBody, p.file.ID, p.diagSpan(), "function body", p.found()))
		return ast.NoItemID, false
	}
	return p.b.Items.NewFn(p.spanFrom(start), pub, name, fn), true
}

// parseFnParam: pattern: Type. Первым параметром может идти self, &self, &mut self, mut self.
func (p *Parser) parseFnParam(first bool) (ast.FnParam, bool) {
	start := p.tok.Span
	if first && p.at(token.Amp) && p.isSelfAhead() {
		p.advance() // &
		_, mut := p.eat(token.KwMut)
		if !p.at(token.Ident) || p.text(p.tok) != selfName {
			p.report(diag.ExpectedConstruct(diag.SynExpectIdentifier, p.file.ID, p.diagSpan(), "`self`", p.found()))
			return ast.FnParam{}, false
		}
		selfTok := p.advance()
		// паттерн и тип делят span всего `&mut self`
		sp := p.spanFrom(start)
		pat := p.b.Pats.NewBind(sp, p.intern(selfTok), false)
		selfTy := p.b.Types.NewPath(selfTok.Span, []source.StringID{p.b.Strings.Intern("Self")}, nil)
		ty := p.b.Types.NewRef(sp, mut, selfTy)
		return ast.FnParam{Pat: pat, Type: ty, Span: sp}, true
	}

	pat, ok := p.parsePattern()
	if !ok {
		return ast.FnParam{}, false
	}
	if first && !p.at(token.Colon) {
		if bind, isBind := p.b.Pats.Bind(pat); isBind && p.b.Name(bind.Name) == selfName {
			sp := p.b.Pats.Get(pat).Span
			ty := p.b.Types.NewPath(sp, []source.StringID{p.b.Strings.Intern("Self")}, nil)
			return ast.FnParam{Pat: pat, Type: ty, Span: sp}, true
		}
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		return ast.FnParam{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{Pat: pat, Type: ty, Span: p.spanFrom(start)}, true
}

// isSelfAhead: текущий `&`, за ним `self` или `mut`. Для `&mut x` второй токен
// проверить нельзя, поэтому `&mut` в первом параметре всегда считается receiver'ом.
func (p *Parser) isSelfAhead() bool {
	next := p.peek()
	switch next.Kind {
	case token.KwMut:
		return true
	case token.Ident:
		return next.Text(p.file) == selfName
	}
	return false
}

// parseStructItem: struct Name<T> { a: T, pub b: U } | struct Name(T, U); | struct Name;
func (p *Parser) parseStructItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // struct
	_, name, ok := p.expectIdent("struct name")
	if !ok {
		return ast.NoItemID, false
	}
	var st ast.StructItem
	if st.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	switch p.tok.Kind {
	case token.LBrace:
		st.Shape = ast.ShapeNamed
		if st.Fields, ok = p.parseNamedFields(); !ok {
			return ast.NoItemID, false
		}
	case token.LParen:
		st.Shape = ast.ShapeTuple
		if st.Fields, ok = p.parseTupleFields(); !ok {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
			return ast.NoItemID, false
		}
	case token.Semicolon:
		st.Shape = ast.ShapeUnit
		p.advance()
	default:
		p.report(diag.ExpectedConstruct(diag.SynExpectItemBody, p.file.ID, p.diagSpan(), "`{`, `(` or `;` after struct name", p.found()))
		return ast.NoItemID, false
	}
	return p.b.Items.NewStruct(p.spanFrom(start), pub, name, st), true
}

// parseNamedFields: { [pub] a: T, ... }
func (p *Parser) parseNamedFields() ([]ast.FieldDecl, bool) {
	open := p.advance()
	p.enterBlock()
	defer p.leaveBlock()

	var fields []ast.FieldDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseNamedField()
		if !ok {
			p.resyncList(token.RBrace)
		} else {
			fields = append(fields, field)
		}
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseNamedField() (ast.FieldDecl, bool) {
	start := p.tok.Span
	_, pub := p.eat(token.KwPub)
	_, name, ok := p.expectIdent("field name")
	if !ok {
		return ast.FieldDecl{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		return ast.FieldDecl{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.FieldDecl{}, false
	}
	return ast.FieldDecl{Pub: pub, Name: name, Type: ty, Span: p.spanFrom(start)}, true
}

// parseTupleFields: ([pub] T, ...)
func (p *Parser) parseTupleFields() ([]ast.FieldDecl, bool) {
	open := p.advance()
	var fields []ast.FieldDecl
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.tok.Span
		_, pub := p.eat(token.KwPub)
		ty, ok := p.parseType()
		if !ok {
			p.resyncList(token.RParen)
		} else {
			fields = append(fields, ast.FieldDecl{Pub: pub, Name: source.NoStringID, Type: ty, Span: p.spanFrom(start)})
		}
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return nil, false
	}
	return fields, true
}

// parseEnumItem: enum Name<T> { A, B(T), C { x: T } }
func (p *Parser) parseEnumItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // enum
	_, name, ok := p.expectIdent("enum name")
	if !ok {
		return ast.NoItemID, false
	}
	var en ast.EnumItem
	if en.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynExpectItemBody)
	if !ok {
		return ast.NoItemID, false
	}
	p.enterBlock()
	defer p.leaveBlock()

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		variant, ok := p.parseVariant()
		if !ok {
			p.resyncList(token.RBrace)
		} else {
			en.Variants = append(en.Variants, variant)
		}
		if _, comma := p.eat(token.Comma); !comma {
			break
		}
	}
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewEnum(p.spanFrom(start), pub, name, en), true
}

func (p *Parser) parseVariant() (ast.Variant, bool) {
	nameTok, name, ok := p.expectIdent("variant name")
	if !ok {
		return ast.Variant{}, false
	}
	v := ast.Variant{Name: name, Shape: ast.ShapeUnit}
	switch p.tok.Kind {
	case token.LParen:
		v.Shape = ast.ShapeTuple
		v.Fields, ok = p.parseTupleFields()
	case token.LBrace:
		v.Shape = ast.ShapeNamed
		v.Fields, ok = p.parseNamedFields()
	}
	if !ok {
		return ast.Variant{}, false
	}
	v.Span = p.spanFrom(nameTok.Span)
	return v, true
}

// parseImplItem: impl<T> Trait for Type where ... { fns } | impl Type { fns }
func (p *Parser) parseImplItem(start source.Span) (ast.ItemID, bool) {
	p.advance() // impl
	var impl ast.ImplItem
	impl.Trait = ast.NoTypeID
	var ok bool
	if impl.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	first, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	impl.Self = first
	if _, isFor := p.eat(token.KwFor); isFor {
		impl.Trait = first
		if impl.Self, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if impl.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	if impl.Items, ok = p.parseMemberList(ctxImpl); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewImpl(p.spanFrom(start), impl), true
}

// parseTraitItem: trait Name<T>: Super + Other { fns }
func (p *Parser) parseTraitItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // trait
	_, name, ok := p.expectIdent("trait name")
	if !ok {
		return ast.NoItemID, false
	}
	var tr ast.TraitItem
	if tr.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	if _, colon := p.eat(token.Colon); colon {
		if tr.Supers, ok = p.parseBounds(); !ok {
			return ast.NoItemID, false
		}
	}
	if tr.Items, ok = p.parseMemberList(ctxTrait); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewTrait(p.spanFrom(start), pub, name, tr), true
}

// parseMemberList: тело impl/trait: только [pub] fn.
func (p *Parser) parseMemberList(ctx itemCtx) ([]ast.ItemID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectItemBody)
	if !ok {
		return nil, false
	}
	p.enterBlock()
	defer p.leaveBlock()

	var items []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		isFn := p.at(token.KwFn) || (p.at(token.KwPub) && p.peek().Kind == token.KwFn)
		if !isFn {
			p.report(diag.ExpectedConstruct(diag.SynUnexpectedToken, p.file.ID, p.tok.Span, "`fn`", p.found()))
			p.skipMember()
			continue
		}
		if item, ok := p.parseItemIn(ctx); ok {
			items = append(items, item)
			continue
		}
		p.skipMember()
	}
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return nil, false
	}
	return items, true
}

// skipMember продвигается к следующему `fn`/`pub` или к закрывающей `}`.
func (p *Parser) skipMember() {
	if !p.atAny(token.KwFn, token.KwPub, token.RBrace, token.EOF) {
		p.advance()
	}
	p.resyncUntil(func(k token.Kind) bool {
		return k == token.KwFn || k == token.KwPub
	}, true)
}

// parseUseItem: use a::b::c; | use a::b::*;
func (p *Parser) parseUseItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // use
	_, first, ok := p.expectIdent("path after `use`")
	if !ok {
		return ast.NoItemID, false
	}
	use := ast.UseItem{Path: []source.StringID{first}}
	for p.at(token.ColonColon) {
		p.advance()
		if _, star := p.eat(token.Star); star {
			use.Glob = true
			break
		}
		_, seg, ok := p.expectIdent("identifier or `*` after `::`")
		if !ok {
			return ast.NoItemID, false
		}
		use.Path = append(use.Path, seg)
	}
	if !p.at(token.Semicolon) {
		p.missingSemicolon()
	} else {
		p.advance()
	}
	return p.b.Items.NewUse(p.spanFrom(start), pub, use), true
}

// parseTypeAliasItem: type Name<T> = Type;
func (p *Parser) parseTypeAliasItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // type
	_, name, ok := p.expectIdent("type alias name")
	if !ok {
		return ast.NoItemID, false
	}
	var alias ast.TypeAliasItem
	if alias.Generics, ok = p.parseOptGenerics(); !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return ast.NoItemID, false
	}
	if alias.Target, ok = p.parseType(); !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.Semicolon) {
		p.missingSemicolon()
	} else {
		p.advance()
	}
	return p.b.Items.NewTypeAlias(p.spanFrom(start), pub, name, alias), true
}

// parseModItem: mod name; | mod name { items }
func (p *Parser) parseModItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // mod
	_, name, ok := p.expectIdent("module name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, semi := p.eat(token.Semicolon); semi {
		return p.b.Items.NewMod(p.spanFrom(start), pub, name, ast.ModItem{}), true
	}
	open, ok := p.expect(token.LBrace, diag.SynExpectItemBody)
	if !ok {
		return ast.NoItemID, false
	}
	p.enterBlock()
	defer p.leaveBlock()

	mod := ast.ModItem{Inline: true}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !isItemStart(p.tok.Kind) {
			p.report(diag.ExpectedConstruct(diag.SynUnexpectedTopLevel, p.file.ID, p.tok.Span, "item", p.found()))
			p.skipModItem()
			continue
		}
		if item, ok := p.parseItem(); ok {
			mod.Items = append(mod.Items, item)
			continue
		}
		p.skipModItem()
	}
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewMod(p.spanFrom(start), pub, name, mod), true
}

// skipModItem: как resyncTop, но останавливается на `}` модуля.
func (p *Parser) skipModItem() {
	if !p.atAny(token.RBrace, token.EOF) && !isItemStart(p.tok.Kind) {
		p.advance()
	}
	p.resyncUntil(isItemStart, true)
}
