package textedit

import (
	"testing"
	"time"
)

func TestCursorNew(t *testing.T) {
	c := NewCursor()
	if c.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", c.Offset())
	}
	if !c.IsVisible() {
		t.Error("expected newly created cursor to be visible")
	}
}

func TestCursorMoveLeftRight(t *testing.T) {
	text := "Hello"
	c := AtOffset(2)

	c.MoveLeft(text)
	if c.Offset() != 1 {
		t.Errorf("expected offset 1, got %d", c.Offset())
	}

	c.MoveRight(text)
	if c.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", c.Offset())
	}
}

func TestCursorMoveLeftAtStartIsNoop(t *testing.T) {
	c := AtOffset(0)
	c.MoveLeft("Hello")
	if c.Offset() != 0 {
		t.Errorf("expected offset to stay 0, got %d", c.Offset())
	}
}

func TestCursorMoveRightAtEndIsNoop(t *testing.T) {
	c := AtOffset(5)
	c.MoveRight("Hello")
	if c.Offset() != 5 {
		t.Errorf("expected offset to stay 5, got %d", c.Offset())
	}
}

func TestCursorMoveToStartEnd(t *testing.T) {
	text := "Hello World"
	c := AtOffset(5)

	c.MoveToStart()
	if c.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", c.Offset())
	}

	c.MoveToEnd(text)
	if c.Offset() != 11 {
		t.Errorf("expected offset 11, got %d", c.Offset())
	}
}

func TestCursorMoveWord(t *testing.T) {
	text := "Hello World Test"
	c := AtOffset(0)

	c.MoveWordRight(text)
	if c.Offset() != 5 {
		t.Errorf("expected offset 5, got %d", c.Offset())
	}

	c.MoveWordRight(text)
	if c.Offset() != 11 {
		t.Errorf("expected offset 11, got %d", c.Offset())
	}

	c.MoveWordLeft(text)
	if c.Offset() != 6 {
		t.Errorf("expected offset 6, got %d", c.Offset())
	}
}

func TestCursorMoveUpDown(t *testing.T) {
	text := "Line 1\nLine 2\nLine 3"
	c := NewCursor()
	c.SetFromText(text, 8)

	c.MoveUp(text)
	if c.Offset() >= 7 {
		t.Errorf("expected offset in Line 1, got %d", c.Offset())
	}

	c.SetFromText(text, 8)
	c.MoveDown(text)
	if c.Offset() < 14 {
		t.Errorf("expected offset in Line 3, got %d", c.Offset())
	}
}

func TestCursorPreferredColumn(t *testing.T) {
	text := "Long line here\nShort\nAnother long line"
	c := NewCursor()
	c.SetFromText(text, 10)

	c.MoveDown(text)
	if c.Position().Line != 1 {
		t.Errorf("expected line 1, got %d", c.Position().Line)
	}

	c.MoveDown(text)
	if c.Position().Line != 2 {
		t.Errorf("expected line 2, got %d", c.Position().Line)
	}
	if c.Position().Column < 5 {
		t.Errorf("expected preferred column restored, got %d", c.Position().Column)
	}
}

func TestCursorLineStartEnd(t *testing.T) {
	text := "Hello\nWorld\nTest"
	c := NewCursor()
	c.SetFromText(text, 8)

	c.MoveToLineStart(text)
	if c.Offset() != 6 {
		t.Errorf("expected offset 6, got %d", c.Offset())
	}

	c.MoveToLineEnd(text)
	if c.Offset() != 11 {
		t.Errorf("expected offset 11, got %d", c.Offset())
	}
}

func TestCursorBlinkDisabledStaysVisible(t *testing.T) {
	c := NewCursor()
	c.SetBlinkEnabled(false)
	if c.IsBlinkEnabled() {
		t.Error("expected blink disabled")
	}
	if !c.IsVisible() {
		t.Error("expected cursor to stay visible when blink disabled")
	}
}

func TestCursorBlinkTogglesAfterHalfPeriod(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewCursorWithClock(clock)
	c.SetBlinkRate(100)

	if changed := c.UpdateBlink(); changed {
		t.Error("expected no change before half-period elapses")
	}

	now = now.Add(150 * time.Millisecond)
	if changed := c.UpdateBlink(); !changed {
		t.Error("expected visibility to toggle after half-period elapses")
	}
	if c.IsVisible() {
		t.Error("expected cursor to have toggled to hidden")
	}
}

func TestCursorMutationResetsBlinkToVisible(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewCursorWithClock(clock)
	c.SetBlinkRate(10)

	now = now.Add(50 * time.Millisecond)
	c.UpdateBlink()
	if c.IsVisible() {
		t.Fatal("expected cursor hidden before the mutation under test")
	}

	c.SetOffset(3)
	if !c.IsVisible() {
		t.Error("expected cursor mutation to reset blink to visible")
	}
}

func TestCursorMoveByDispatch(t *testing.T) {
	text := "Hello World"
	c := AtOffset(0)

	c.MoveBy(text, DirRight, UnitWord)
	if c.Offset() != 5 {
		t.Errorf("expected offset 5, got %d", c.Offset())
	}

	c.MoveBy(text, DirRight, UnitDocument)
	if c.Offset() != 11 {
		t.Errorf("expected offset 11, got %d", c.Offset())
	}

	c.MoveBy(text, DirLeft, UnitDocument)
	if c.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", c.Offset())
	}
}

func TestCursorWithUnicodeGraphemes(t *testing.T) {
	text := "Hello 👨‍👩‍👧"
	c := AtOffset(0)

	for i := 0; i < 6; i++ {
		c.MoveRight(text)
	}
	if c.Offset() != 6 {
		t.Fatalf("expected offset 6 after moving past 'Hello ', got %d", c.Offset())
	}

	c.MoveRight(text)
	if c.Offset() != len(text) {
		t.Errorf("expected cursor to clear the whole emoji cluster in one move, got %d (want %d)", c.Offset(), len(text))
	}

	c.MoveLeft(text)
	if c.Offset() != 6 {
		t.Errorf("expected cursor back before the emoji, got %d", c.Offset())
	}
}

func TestCursorToSelection(t *testing.T) {
	c := AtOffset(5)
	sel := c.ToSelection()
	if !sel.IsCollapsed() {
		t.Error("expected collapsed selection")
	}
	if sel.Anchor.Offset != 5 || sel.Focus.Offset != 5 {
		t.Errorf("unexpected selection: %+v", sel)
	}
}
