package textedit

import "time"

// Clock abstracts wall-clock time so blink behavior is deterministic in
// tests. time.Now is the production implementation.
type Clock func() time.Time

// Direction is a cursor movement direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Unit is the granularity of a cursor movement.
type Unit int

const (
	UnitGrapheme Unit = iota
	UnitWord
	UnitLine
	UnitDocument
)

// Cursor tracks a single editing position, blink state, and the preferred
// column used for vertical movement.
type Cursor struct {
	position Position

	clock        Clock
	visible      bool
	lastBlink    time.Time
	blinkRateMs  int64
	blinkEnabled bool
	preferredCol *int
}

// NewCursor returns a cursor at offset 0 with default blink settings (530ms,
// the conventional blink rate).
func NewCursor() *Cursor {
	return NewCursorWithClock(time.Now)
}

// NewCursorWithClock is NewCursor with an injectable clock, for tests.
func NewCursorWithClock(clock Clock) *Cursor {
	return &Cursor{
		clock:        clock,
		visible:      true,
		lastBlink:    clock(),
		blinkRateMs:  530,
		blinkEnabled: true,
	}
}

// AtOffset returns a cursor positioned at a byte offset.
func AtOffset(offset int) *Cursor {
	c := NewCursor()
	c.position = FromOffset(offset)
	return c
}

// Position returns the current cursor position.
func (c *Cursor) Position() Position { return c.position }

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.position.Offset }

// SetPosition sets the position directly, resetting blink and clearing the
// preferred column (an explicit jump is not vertical movement).
func (c *Cursor) SetPosition(pos Position) {
	c.position = pos
	c.resetBlink()
	c.preferredCol = nil
}

// SetOffset sets the position from a byte offset with an uncomputed
// line/column.
func (c *Cursor) SetOffset(offset int) {
	c.SetPosition(FromOffset(offset))
}

// SetFromText sets the position from a byte offset, recomputing line/column
// against text.
func (c *Cursor) SetFromText(text string, offset int) {
	c.SetPosition(FromTextOffset(text, offset))
}

func (c *Cursor) setPositionPreserveColumn(pos Position) {
	c.position = pos
	c.resetBlink()
}

// BlinkRateMs returns the configured blink half-period.
func (c *Cursor) BlinkRateMs() int64 { return c.blinkRateMs }

// SetBlinkRate sets the blink half-period in milliseconds.
func (c *Cursor) SetBlinkRate(ms int64) { c.blinkRateMs = ms }

// SetBlinkEnabled toggles blinking; disabling forces the cursor visible.
func (c *Cursor) SetBlinkEnabled(enabled bool) {
	c.blinkEnabled = enabled
	if !enabled {
		c.visible = true
	}
}

// IsBlinkEnabled reports whether blinking is enabled.
func (c *Cursor) IsBlinkEnabled() bool { return c.blinkEnabled }

// UpdateBlink toggles visibility if the blink half-period has elapsed since
// the last toggle. Returns true if visibility changed.
func (c *Cursor) UpdateBlink() bool {
	if !c.blinkEnabled {
		return false
	}

	now := c.clock()
	elapsed := now.Sub(c.lastBlink).Milliseconds()
	if elapsed >= c.blinkRateMs {
		c.visible = !c.visible
		c.lastBlink = now
		return true
	}
	return false
}

func (c *Cursor) resetBlink() {
	c.visible = true
	c.lastBlink = c.clock()
}

// IsVisible reports whether the cursor should currently be drawn.
func (c *Cursor) IsVisible() bool {
	return c.visible || !c.blinkEnabled
}

// Show forces the cursor visible and resets the blink timer.
func (c *Cursor) Show() {
	c.visible = true
	c.lastBlink = c.clock()
}

// Hide forces the cursor invisible. Blinking is not stopped: the next
// blink toggle in UpdateBlink, or the next mutation, makes it visible
// again.
func (c *Cursor) Hide() { c.visible = false }

// MoveToStart moves to offset 0.
func (c *Cursor) MoveToStart() {
	c.SetPosition(Position{})
}

// MoveToEnd moves to the end of text.
func (c *Cursor) MoveToEnd(text string) {
	c.SetPosition(FromTextOffset(text, len(text)))
}

// MoveLeft moves one grapheme cluster left.
func (c *Cursor) MoveLeft(text string) {
	if c.position.Offset == 0 {
		return
	}
	before := text[:c.position.Offset]
	clusters := graphemes(before)
	if len(clusters) == 0 {
		return
	}
	last := clusters[len(clusters)-1]
	c.SetFromText(text, c.position.Offset-len(last))
}

// MoveRight moves one grapheme cluster right.
func (c *Cursor) MoveRight(text string) {
	if c.position.Offset >= len(text) {
		return
	}
	after := text[c.position.Offset:]
	clusters := graphemes(after)
	if len(clusters) == 0 {
		return
	}
	c.SetFromText(text, c.position.Offset+len(clusters[0]))
}

// MoveWordLeft moves to the previous word boundary.
func (c *Cursor) MoveWordLeft(text string) {
	c.SetFromText(text, prevWordBoundary(text, c.position.Offset))
}

// MoveWordRight moves to the next word boundary.
func (c *Cursor) MoveWordRight(text string) {
	c.SetFromText(text, nextWordBoundary(text, c.position.Offset))
}

// MoveUp moves up one line, preserving the preferred column.
func (c *Cursor) MoveUp(text string) {
	if c.position.Line == 0 {
		c.MoveToLineStart(text)
		return
	}

	if c.preferredCol == nil {
		col := c.position.Column
		c.preferredCol = &col
	}
	target := *c.preferredCol
	targetLine := c.position.Line - 1

	offset := offsetForLineColumn(text, targetLine, target)
	c.setPositionPreserveColumn(FromTextOffset(text, offset))
}

// MoveDown moves down one line, preserving the preferred column.
func (c *Cursor) MoveDown(text string) {
	lines := lineCount(text)
	if c.position.Line >= lines-1 {
		c.MoveToLineEnd(text)
		return
	}

	if c.preferredCol == nil {
		col := c.position.Column
		c.preferredCol = &col
	}
	target := *c.preferredCol
	targetLine := c.position.Line + 1

	offset := offsetForLineColumn(text, targetLine, target)
	c.setPositionPreserveColumn(FromTextOffset(text, offset))
}

// MoveToLineStart moves to the start of the current line.
func (c *Cursor) MoveToLineStart(text string) {
	start, _ := lineBounds(text, c.position.Offset)
	c.SetFromText(text, start)
}

// MoveToLineEnd moves to the end of the current line.
func (c *Cursor) MoveToLineEnd(text string) {
	_, end := lineBounds(text, c.position.Offset)
	c.SetFromText(text, end)
}

// ClearPreferredColumn clears the remembered vertical-movement column; call
// after any horizontal movement.
func (c *Cursor) ClearPreferredColumn() { c.preferredCol = nil }

// ToSelection returns a collapsed range at the current position.
func (c *Cursor) ToSelection() Range {
	return Collapsed(c.position)
}

// MoveBy dispatches a direction+unit movement.
func (c *Cursor) MoveBy(text string, dir Direction, unit Unit) {
	switch {
	case dir == DirLeft && unit == UnitGrapheme:
		c.MoveLeft(text)
	case dir == DirRight && unit == UnitGrapheme:
		c.MoveRight(text)
	case dir == DirLeft && unit == UnitWord:
		c.MoveWordLeft(text)
	case dir == DirRight && unit == UnitWord:
		c.MoveWordRight(text)
	case dir == DirUp && (unit == UnitGrapheme || unit == UnitLine || unit == UnitWord):
		c.MoveUp(text)
	case dir == DirDown && (unit == UnitGrapheme || unit == UnitLine || unit == UnitWord):
		c.MoveDown(text)
	case dir == DirLeft && unit == UnitLine:
		c.MoveToLineStart(text)
	case dir == DirRight && unit == UnitLine:
		c.MoveToLineEnd(text)
	case (dir == DirLeft || dir == DirUp) && unit == UnitDocument:
		c.MoveToStart()
	case (dir == DirRight || dir == DirDown) && unit == UnitDocument:
		c.MoveToEnd(text)
	}
}
