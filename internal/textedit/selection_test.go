package textedit

import "testing"

func TestRangeCollapsed(t *testing.T) {
	r := CollapsedAt(5)
	if !r.IsCollapsed() {
		t.Error("expected collapsed range")
	}
	if r.StartOffset() != 5 || r.EndOffset() != 5 {
		t.Errorf("unexpected bounds: %+v", r)
	}
}

func TestRangeStartEndOffsetOrdersAnchorFocus(t *testing.T) {
	r := Range{Anchor: FromOffset(10), Focus: FromOffset(3)}
	if r.StartOffset() != 3 || r.EndOffset() != 10 {
		t.Errorf("expected [3,10], got [%d,%d]", r.StartOffset(), r.EndOffset())
	}
	if r.Len() != 7 {
		t.Errorf("expected length 7, got %d", r.Len())
	}
}

func TestNextWordBoundary(t *testing.T) {
	text := "Hello World Test"
	if got := nextWordBoundary(text, 0); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := nextWordBoundary(text, 5); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
}

func TestPrevWordBoundary(t *testing.T) {
	text := "Hello World Test"
	if got := prevWordBoundary(text, 11); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestWordBoundaryAtTextEdges(t *testing.T) {
	text := "Hello"
	if got := nextWordBoundary(text, 5); got != 5 {
		t.Errorf("expected boundary to stay at end of text, got %d", got)
	}
	if got := prevWordBoundary(text, 0); got != 0 {
		t.Errorf("expected boundary to stay at start of text, got %d", got)
	}
}
