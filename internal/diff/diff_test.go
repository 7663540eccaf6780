package diff

import (
	"strings"
	"testing"
)

func TestComputeDiff_SimpleAddition(t *testing.T) {
	oldValue := "line1\nline2\nline3"
	newValue := "line1\nline2\nline2.5\nline3"

	engine := NewEngine()
	d := engine.ComputeDiff("btn-1", "content", oldValue, newValue)

	if d == nil {
		t.Fatal("expected diff, got nil")
	}
	if len(d.Hunks) != 1 {
		t.Errorf("expected 1 hunk, got %d", len(d.Hunks))
	}
	if d.IsNewValue || d.IsCleared {
		t.Error("should not be marked as a new or cleared value")
	}

	hasAddition := false
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			if line.Type == LineAdded && line.Content == "line2.5" {
				hasAddition = true
			}
		}
	}
	if !hasAddition {
		t.Error("expected to find added line 'line2.5'")
	}
}

func TestComputeDiff_SimpleDeletion(t *testing.T) {
	oldValue := "line1\nline2\nline3\nline4"
	newValue := "line1\nline2\nline4"

	engine := NewEngine()
	d := engine.ComputeDiff("btn-1", "content", oldValue, newValue)

	if len(d.Hunks) != 1 {
		t.Errorf("expected 1 hunk, got %d", len(d.Hunks))
	}

	hasRemoval := false
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			if line.Type == LineRemoved && line.Content == "line3" {
				hasRemoval = true
			}
		}
	}
	if !hasRemoval {
		t.Error("expected to find removed line 'line3'")
	}
}

func TestComputeDiff_NewValue(t *testing.T) {
	engine := NewEngine()
	d := engine.ComputeDiff("card-1", "elevation", "", "4px")

	if !d.IsNewValue {
		t.Error("expected diff to be marked as a new value")
	}
}

func TestComputeDiff_ClearedValue(t *testing.T) {
	engine := NewEngine()
	d := engine.ComputeDiff("card-1", "elevation", "4px", "")

	if !d.IsCleared {
		t.Error("expected diff to be marked as cleared")
	}
}

func TestComputeDiff_NoChanges(t *testing.T) {
	value := "16px"

	engine := NewEngine()
	d := engine.ComputeDiff("card-1", "padding", value, value)

	if len(d.Hunks) != 0 {
		t.Errorf("expected 0 hunks for identical values, got %d", len(d.Hunks))
	}
}

func TestComputeDiff_MultipleHunks(t *testing.T) {
	oldValue := `line1
line2
line3
line4
line5
line6
line7
line8
line9
line10
line11
line12
line13
line14
line15`

	newValue := `line1
line2
CHANGED3
line4
line5
line6
line7
line8
line9
line10
line11
line12
CHANGED13
line14
line15`

	engine := NewEngine()
	d := engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	if len(d.Hunks) < 1 {
		t.Errorf("expected at least 1 hunk, got %d", len(d.Hunks))
	}
}

func TestComputeDiff_ContextLines(t *testing.T) {
	oldValue := "line1\nline2\nline3\nline4\nline5"
	newValue := "line1\nline2\nCHANGED\nline4\nline5"

	engine := NewEngine()
	d := engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	if len(d.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(d.Hunks))
	}

	hunk := d.Hunks[0]
	hasContext := false
	for _, line := range hunk.Lines {
		if line.Type == LineContext {
			hasContext = true
			break
		}
	}
	if !hasContext {
		t.Error("expected context lines in hunk")
	}
}

func TestComputeDiff_Caching(t *testing.T) {
	oldValue := "line1\nline2\nline3"
	newValue := "line1\nline2\nline3\nline4"

	engine := NewEngine()

	d1 := engine.ComputeDiff("btn-1", "content", oldValue, newValue)
	d2 := engine.ComputeDiff("btn-2", "content", oldValue, newValue)

	if len(d1.Hunks) != len(d2.Hunks) {
		t.Errorf("cache should preserve hunk count: %d vs %d", len(d1.Hunks), len(d2.Hunks))
	}
	if d2.ComponentID != "btn-2" {
		t.Error("cached diff should still report the requesting component id")
	}

	engine.ClearCache()
	d3 := engine.ComputeDiff("btn-1", "content", oldValue, newValue)
	if len(d3.Hunks) != len(d1.Hunks) {
		t.Error("cache clearing should not affect diff computation")
	}
}

func TestComputeDiff_EmptyLines(t *testing.T) {
	oldValue := "line1\n\nline3"
	newValue := "line1\n\n\nline3"

	engine := NewEngine()
	d := engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	if len(d.Hunks) == 0 {
		t.Error("expected to detect change in empty lines")
	}
}

func TestComputeDiff_LargeValue(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 1000; i++ {
		oldLines = append(oldLines, "line "+string(rune(i)))
		newLines = append(newLines, "line "+string(rune(i)))
	}
	newLines[500] = "CHANGED LINE"

	oldValue := strings.Join(oldLines, "\n")
	newValue := strings.Join(newLines, "\n")

	engine := NewEngine()
	d := engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	if len(d.Hunks) == 0 {
		t.Error("expected at least one hunk for a large value diff")
	}
}

func TestComputeDiff_HunkCounts(t *testing.T) {
	oldValue := "line1\nline2\nline3"
	newValue := "line1\nNEW\nline3"

	engine := NewEngine()
	d := engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	if len(d.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(d.Hunks))
	}

	hunk := d.Hunks[0]
	if hunk.OldCount == 0 {
		t.Error("expected OldCount > 0")
	}
	if hunk.NewCount == 0 {
		t.Error("expected NewCount > 0")
	}

	oldCount, newCount := 0, 0
	for _, line := range hunk.Lines {
		if line.Type == LineRemoved || line.Type == LineContext {
			oldCount++
		}
		if line.Type == LineAdded || line.Type == LineContext {
			newCount++
		}
	}
	if hunk.OldCount != oldCount {
		t.Errorf("OldCount mismatch: expected %d, got %d", oldCount, hunk.OldCount)
	}
	if hunk.NewCount != newCount {
		t.Errorf("NewCount mismatch: expected %d, got %d", newCount, hunk.NewCount)
	}
}

func TestComputeWordLevelDiff(t *testing.T) {
	oldValue := "solid #3B82F6"
	newValue := "solid #EF4444"

	engine := NewEngine()
	diffs := engine.ComputeWordLevelDiff(oldValue, newValue)

	if len(diffs) == 0 {
		t.Fatal("expected word-level diffs, got none")
	}

	hasChange := false
	for _, d := range diffs {
		if strings.Contains(d.Text, "EF4444") || strings.Contains(d.Text, "3B82F6") {
			hasChange = true
			break
		}
	}
	if !hasChange {
		t.Error("expected to detect the color token change")
	}
}

func BenchmarkComputeDiff_Small(b *testing.B) {
	oldValue := "line1\nline2\nline3"
	newValue := "line1\nCHANGED\nline3"
	engine := NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.ComputeDiff("editor-1", "content", oldValue, newValue)
	}
}

func BenchmarkComputeDiff_Large(b *testing.B) {
	var lines []string
	for i := 0; i < 1000; i++ {
		lines = append(lines, "line content here "+string(rune(i)))
	}
	oldValue := strings.Join(lines, "\n")
	lines[500] = "CHANGED"
	newValue := strings.Join(lines, "\n")

	engine := NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.ComputeDiff("editor-1", "content", oldValue, newValue)
	}
}

func BenchmarkComputeDiff_WithCache(b *testing.B) {
	oldValue := "line1\nline2\nline3"
	newValue := "line1\nCHANGED\nline3"
	engine := NewEngine()

	engine.ComputeDiff("editor-1", "content", oldValue, newValue)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.ComputeDiff("editor-1", "content", oldValue, newValue)
	}
}
