package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"nova/internal/source"
)

// Cursor представляет собой позицию в файле
type Cursor struct {
	src   []byte
	Off   uint32
	Limit uint32 // exclusive upper bound for Off
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, Limit: limit}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// PeekAt reads the byte n positions ahead; ok is false past the end.
func (c *Cursor) PeekAt(n uint32) (byte, bool) {
	if c.Off+n >= c.Limit || c.Off+n < c.Off {
		return 0, false
	}
	return c.src[c.Off+n], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// BumpN advances by n bytes, stopping at the end.
func (c *Cursor) BumpN(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil || c.Limit-c.Off < un {
		c.Off = c.Limit
		return
	}
	c.Off += un
}

// Rest is the unread input.
func (c *Cursor) Rest() []byte {
	return c.src[c.Off:c.Limit]
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.MustSpan(uint32(m), c.Off)
}
