// Package textedit implements the position, selection, operation, and undo
// model shared by every in-app text editing surface (inspector fields,
// inline renames, the dev-tools override editor).
package textedit

import "github.com/rivo/uniseg"

// Position identifies a location in text by byte offset plus a cached
// 0-indexed line and grapheme-cluster column. The cache is only valid for
// the text it was computed from; callers that don't have the original text
// handy should use FromOffset and let the next text-aware call refresh it.
type Position struct {
	Offset int
	Line   int
	Column int
}

// FromOffset builds a position with an uncomputed line/column, useful when
// the caller doesn't have the text at hand (e.g. constructing a target
// offset before a move).
func FromOffset(offset int) Position {
	return Position{Offset: offset}
}

// FromTextOffset recomputes line/column for offset against text. Offset is
// clamped to [0, len(text)].
func FromTextOffset(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := 0
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	column := graphemeCount(text[lineStart:offset])
	return Position{Offset: offset, Line: line, Column: column}
}

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	count := 0
	state := -1
	for len(s) > 0 {
		_, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		count++
	}
	return count
}

// graphemes splits s into its grapheme clusters.
func graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// lineBounds returns the [start, end) byte range of the line containing
// offset, excluding the trailing newline.
func lineBounds(text string, offset int) (start, end int) {
	start = 0
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			start = i + 1
		}
	}
	end = len(text)
	for i := offset; i < len(text); i++ {
		if text[i] == '\n' {
			end = i
			break
		}
	}
	return start, end
}

// lineCount returns the number of lines in text (a text with no newline has
// one line; N newlines means N+1 lines).
func lineCount(text string) int {
	n := 1
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}

// offsetForLineColumn finds the byte offset for a given 0-indexed line and
// grapheme column, clamping the column to the line's length.
func offsetForLineColumn(text string, line, column int) int {
	lineStart := 0
	currentLine := 0
	found := false
	for i := 0; i < len(text); i++ {
		if currentLine == line {
			found = true
			break
		}
		if text[i] == '\n' {
			currentLine++
			lineStart = i + 1
		}
	}
	if !found && currentLine != line {
		if currentLine < line {
			return len(text)
		}
	}

	lineEnd := len(text)
	for i := lineStart; i < len(text); i++ {
		if text[i] == '\n' {
			lineEnd = i
			break
		}
	}

	lineText := text[lineStart:lineEnd]
	col := 0
	state := -1
	rest := lineText
	offset := 0
	for len(rest) > 0 {
		if col >= column {
			return lineStart + offset
		}
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		col++
	}
	return lineStart + offset
}
