package lexer

import (
	"iter"

	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// Lexer turns one File into a forward-only stream of tokens.
// It is not restartable: build a new Lexer to scan the file again.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	trivia []token.Trivia // только при opts.KeepTrivia
	err    error          // фатальная ошибка, после неё только EOF
}

// New rejects sources larger than opts.MaxSourceSize before scanning anything.
func New(file *source.File, opts Options) (*Lexer, error) {
	if size := uint64(len(file.Content)); size > opts.maxSize() {
		return nil, &diag.LimitError{
			Kind:   diag.ErrSourceTooLarge,
			Code:   diag.LexSourceTooLarge,
			File:   file.ID,
			Span:   source.EmptySpan(0),
			Limit:  opts.maxSize(),
			Actual: size,
		}
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}, nil
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Err returns the fatal error that ended the stream, if any.
func (lx *Lexer) Err() error { return lx.err }

// Trivia returns whitespace and comments seen so far when Options.KeepTrivia is set.
func (lx *Lexer) Trivia() []token.Trivia { return lx.trivia }

// Next возвращает следующий значимый токен.
// После EOF (или фатальной ошибки) всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return lx.eof()
	}

	lx.skipTrivia()
	if lx.err != nil || lx.cursor.EOF() {
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		if r, _, ok := lx.peekRune(); ok && isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanUnknown()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All yields tokens up to and including EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

func (lx *Lexer) eof() token.Token {
	return token.Token{Kind: token.EOF, Span: source.EmptySpan(lx.cursor.Limit)}
}

// Tokenize materializes the whole stream. On a fatal limit violation it
// returns no tokens and the *diag.LimitError.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx, err := New(file, opts)
	if err != nil {
		return nil, err
	}
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return toks, nil
}
