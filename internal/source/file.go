package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
)

var (
	// ErrFileTooLarge is returned for content whose offsets do not fit in uint32.
	ErrFileTooLarge = errors.New("source file too large")
	// ErrOffsetOutOfRange is returned for offsets past the end of the content.
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrPositionOutOfRange is returned for line/column pairs that name no location in the file.
	ErrPositionOutOfRange = errors.New("position out of range")
)

// NewFile builds a standalone File; content is kept, not copied.
func NewFile(path string, content []byte) (*File, error) {
	if uint64(len(content)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, len(content))
	}
	return &File{
		Path:       normalizePath(path),
		Content:    content,
		LineStarts: buildLineStarts(content),
		Hash:       sha256.Sum256(content),
	}, nil
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// LineCount is never less than 1: an empty file has one empty line.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.LineStarts))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	return n
}

// OffsetToPosition maps a byte offset in [0, Len()] to a 1-based line and column.
func (f *File) OffsetToPosition(off uint32) (LineCol, error) {
	if off > f.Len() {
		return LineCol{}, fmt.Errorf("%w: %d > %d", ErrOffsetOutOfRange, off, f.Len())
	}
	line := lineOf(f.LineStarts, off)
	return LineCol{
		Line: uint32(line) + 1, // #nosec G115 -- bounded by LineCount
		Col:  off - f.LineStarts[line] + 1,
	}, nil
}

// PositionToOffset is the inverse of OffsetToPosition.
// A column may point at the line terminator but not past it.
func (f *File) PositionToOffset(pos LineCol) (uint32, error) {
	if pos.Line == 0 || pos.Line > f.LineCount() || pos.Col == 0 {
		return 0, fmt.Errorf("%w: %d:%d", ErrPositionOutOfRange, pos.Line, pos.Col)
	}
	start, last := f.lineBounds(pos.Line)
	if uint64(pos.Col)-1 > uint64(last-start) {
		return 0, fmt.Errorf("%w: %d:%d", ErrPositionOutOfRange, pos.Line, pos.Col)
	}
	return start + pos.Col - 1, nil
}

// lineBounds returns the first offset of the line and the last offset that still
// belongs to it (its '\n', or Len() for the final line).
func (f *File) lineBounds(line uint32) (start, last uint32) {
	start = f.LineStarts[line-1]
	if line < f.LineCount() {
		return start, f.LineStarts[line] - 1
	}
	return start, f.Len()
}

// Line returns the text of 1-based line n without its trailing "\n" or "\r\n".
func (f *File) Line(n uint32) (string, bool) {
	if n == 0 || n > f.LineCount() {
		return "", false
	}
	start, last := f.lineBounds(n)
	end := last
	if n < f.LineCount() {
		// last is the '\n' itself
		if end > start && f.Content[end-1] == '\r' {
			end--
		}
	}
	return string(f.Content[start:end]), true
}

// Snippet returns the text covered by sp when it lies inside the content.
func (f *File) Snippet(sp Span) (string, bool) {
	if sp.End() > f.Len() {
		return "", false
	}
	return string(f.Content[sp.Start():sp.End()]), true
}

// Text is Snippet for spans produced by the lexer over this file.
func (f *File) Text(sp Span) string {
	s, ok := f.Snippet(sp)
	if !ok {
		panic(fmt.Errorf("span %s outside %s (%d bytes)", sp, f.Path, f.Len()))
	}
	return s
}

// Resolve converts a span into start and end positions.
func (f *File) Resolve(sp Span) (start, end LineCol) {
	start, err := f.OffsetToPosition(sp.Start())
	if err != nil {
		return LineCol{}, LineCol{}
	}
	end, err = f.OffsetToPosition(sp.End())
	if err != nil {
		return start, start
	}
	return start, end
}
