package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"impl":     KwImpl,
	"trait":    KwTrait,
	"type":     KwType,
	"pub":      KwPub,
	"use":      KwUse,
	"mod":      KwMod,
	"where":    KwWhere,
	"match":    KwMatch,
	"true":     KwTrue,
	"false":    KwFalse,
}

var keywordSpelling = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		out[k] = s
	}
	return out
}()

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
