package source

import (
	"errors"
	"testing"
)

func TestNewSpanRejectsInvertedRange(t *testing.T) {
	sp, err := NewSpan(100, 50)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if sp != (Span{}) {
		t.Fatalf("expected zero span on failure, got %s", sp)
	}
}

func TestSpanMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint spans the gap", MustSpan(0, 5), MustSpan(10, 15), MustSpan(0, 15)},
		{"nested", MustSpan(2, 20), MustSpan(4, 6), MustSpan(2, 20)},
		{"touching", MustSpan(0, 3), MustSpan(3, 7), MustSpan(0, 7)},
		{"empty markers", EmptySpan(9), EmptySpan(4), MustSpan(4, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Merge(tt.b); got != tt.want {
				t.Errorf("Merge(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Merge(tt.a); got != tt.want {
				t.Errorf("Merge is not commutative: %s", got)
			}
		})
	}
}

func TestSpanContainsIsHalfOpen(t *testing.T) {
	sp := MustSpan(10, 20)
	cases := map[uint32]bool{9: false, 10: true, 19: true, 20: false}
	for off, want := range cases {
		if got := sp.Contains(off); got != want {
			t.Errorf("Contains(%d) = %v, want %v", off, got, want)
		}
	}
	if EmptySpan(5).Contains(5) {
		t.Errorf("empty span must contain nothing")
	}
}

func TestSpanCovers(t *testing.T) {
	outer := MustSpan(10, 20)
	if !outer.Covers(MustSpan(10, 20)) || !outer.Covers(EmptySpan(20)) || !outer.Covers(MustSpan(12, 15)) {
		t.Errorf("Covers rejects an inner span")
	}
	if outer.Covers(MustSpan(9, 12)) || outer.Covers(MustSpan(15, 21)) {
		t.Errorf("Covers accepts a span that sticks out")
	}
}

func TestSpanOverlapsAndIntersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Span
		overlap bool
		inter   Span
	}{
		{"touching do not overlap", MustSpan(0, 5), MustSpan(5, 9), false, Span{}},
		{"partial", MustSpan(0, 6), MustSpan(4, 9), true, MustSpan(4, 6)},
		{"inner", MustSpan(0, 10), MustSpan(3, 4), true, MustSpan(3, 4)},
		{"disjoint", MustSpan(0, 2), MustSpan(7, 9), false, Span{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.overlap {
				t.Fatalf("Overlaps = %v, want %v", got, tt.overlap)
			}
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.overlap || got != tt.inter {
				t.Fatalf("Intersect = (%s, %v), want (%s, %v)", got, ok, tt.inter, tt.overlap)
			}
		})
	}
}

func TestSpanLenAndString(t *testing.T) {
	sp := MustSpan(10, 20)
	if sp.Len() != 10 {
		t.Fatalf("Len = %d", sp.Len())
	}
	if sp.String() != "10..20" {
		t.Fatalf("String = %q", sp.String())
	}
	if !EmptySpan(3).IsEmpty() || EmptySpan(3).Len() != 0 {
		t.Fatalf("empty span misbehaves")
	}
}

func TestSpanShiftRight(t *testing.T) {
	sp, err := MustSpan(1, 4).ShiftRight(10)
	if err != nil || sp != MustSpan(11, 14) {
		t.Fatalf("ShiftRight = %s, %v", sp, err)
	}
	if _, err := MustSpan(1, 0xFFFFFFF0).ShiftRight(0x20); err == nil {
		t.Fatalf("expected overflow error")
	}
}
