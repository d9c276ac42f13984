package source

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a span would end before it starts.
var ErrInvalidRange = errors.New("invalid range: start is after end")

// Span is a half-open byte range [start, end) inside a single source buffer.
// It never names the file it belongs to; callers that mix files carry a FileID next to it.
// The fields are unexported so NewSpan stays the only way to build a non-empty span.
type Span struct {
	start uint32 // в байтах включительно
	end   uint32 // в байтах не включительно
}

// NewSpan builds [start, end) or fails with ErrInvalidRange.
func NewSpan(start, end uint32) (Span, error) {
	if start > end {
		return Span{}, fmt.Errorf("%w: %d..%d", ErrInvalidRange, start, end)
	}
	return Span{start: start, end: end}, nil
}

// MustSpan is NewSpan for call sites that already hold the invariant.
func MustSpan(start, end uint32) Span {
	sp, err := NewSpan(start, end)
	if err != nil {
		panic(err)
	}
	return sp
}

// EmptySpan is a zero-width marker at offset.
func EmptySpan(offset uint32) Span {
	return Span{start: offset, end: offset}
}

func (s Span) Start() uint32 { return s.start }
func (s Span) End() uint32   { return s.end }

func (s Span) IsEmpty() bool {
	return s.start == s.end
}

// Len saturates at zero.
func (s Span) Len() uint32 {
	if s.end < s.start {
		return 0
	}
	return s.end - s.start
}

// Contains reports whether offset lies in [start, end).
func (s Span) Contains(offset uint32) bool {
	return s.start <= offset && offset < s.end
}

// Covers reports whether other lies entirely inside s. Empty spans at either boundary count.
func (s Span) Covers(other Span) bool {
	return s.start <= other.start && other.end <= s.end
}

// Overlaps is strict: spans that only touch at a boundary do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.start < other.end && other.start < s.end
}

// Intersect returns the common part of two overlapping spans.
func (s Span) Intersect(other Span) (Span, bool) {
	if !s.Overlaps(other) {
		return Span{}, false
	}
	return Span{start: max(s.start, other.start), end: min(s.end, other.end)}, true
}

// Merge returns the smallest span covering both, gap included.
func (s Span) Merge(other Span) Span {
	return Span{start: min(s.start, other.start), end: max(s.end, other.end)}
}

// ShiftRight moves the span n bytes forward.
func (s Span) ShiftRight(n uint32) (Span, error) {
	if s.end > math.MaxUint32-n {
		return s, fmt.Errorf("shift %s by %d overflows", s, n)
	}
	return Span{start: s.start + n, end: s.end + n}, nil
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}
