package hotreload

import (
	"testing"
	"time"
)

func TestErrorOverlayShowHide(t *testing.T) {
	overlay := NewErrorOverlay(DefaultOverlayConfig())
	if overlay.IsVisible() {
		t.Fatalf("expected overlay hidden initially")
	}

	overlay.Show([]Diagnostic{{File: "test.oui", Line: 1, Column: 1, Message: "boom", Severity: "error"}})
	if !overlay.IsVisible() {
		t.Fatalf("expected overlay visible after Show")
	}
	if overlay.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", overlay.ErrorCount())
	}

	overlay.Hide()
	if overlay.IsVisible() {
		t.Fatalf("expected overlay hidden after Hide")
	}
}

func TestErrorOverlayFiltersWarningsWhenDisabled(t *testing.T) {
	cfg := DefaultOverlayConfig()
	cfg.ShowWarnings = false
	overlay := NewErrorOverlay(cfg)

	overlay.Show([]Diagnostic{
		{Severity: "error", Message: "e"},
		{Severity: "warning", Message: "w"},
	})
	if len(overlay.Diagnostics()) != 1 {
		t.Fatalf("expected warnings filtered out, got %d diagnostics", len(overlay.Diagnostics()))
	}
}

func TestErrorOverlayTruncatesToMaxErrors(t *testing.T) {
	cfg := DefaultOverlayConfig()
	cfg.MaxErrors = 2
	overlay := NewErrorOverlay(cfg)

	overlay.Show([]Diagnostic{
		{Severity: "error", Message: "1"},
		{Severity: "error", Message: "2"},
		{Severity: "error", Message: "3"},
	})
	if len(overlay.Diagnostics()) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(overlay.Diagnostics()))
	}
}

func TestErrorOverlayDismissAutoHidesAfterTimeout(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultOverlayConfig()
	cfg.AutoDismissSeconds = 3
	overlay := NewErrorOverlayWithClock(cfg, func() time.Time { return now })

	overlay.Show([]Diagnostic{{Severity: "error", Message: "boom"}})
	overlay.Dismiss()
	if overlay.State() != OverlayDismissing {
		t.Fatalf("expected dismissing state, got %v", overlay.State())
	}

	now = now.Add(2 * time.Second)
	overlay.Update()
	if overlay.State() != OverlayDismissing {
		t.Fatalf("expected still dismissing before timeout elapses")
	}

	now = now.Add(2 * time.Second)
	overlay.Update()
	if overlay.State() != OverlayHidden {
		t.Fatalf("expected hidden after dismiss timeout elapses, got %v", overlay.State())
	}
}

func TestErrorOverlayDismissWithNoAutoDismissHidesImmediately(t *testing.T) {
	cfg := DefaultOverlayConfig()
	cfg.AutoDismissSeconds = 0
	overlay := NewErrorOverlay(cfg)
	overlay.Show([]Diagnostic{{Severity: "error", Message: "boom"}})
	overlay.Dismiss()
	if overlay.State() != OverlayHidden {
		t.Fatalf("expected immediate hide when auto-dismiss disabled, got %v", overlay.State())
	}
}

func TestErrorOverlayDiagnosticNavigationWraps(t *testing.T) {
	overlay := NewErrorOverlay(DefaultOverlayConfig())
	overlay.Show([]Diagnostic{
		{Severity: "error", Message: "a"},
		{Severity: "error", Message: "b"},
	})

	if overlay.SelectedIndex() != 0 {
		t.Fatalf("expected initial selection 0")
	}
	overlay.Next()
	if overlay.SelectedIndex() != 1 {
		t.Fatalf("expected selection 1 after Next")
	}
	overlay.Next()
	if overlay.SelectedIndex() != 0 {
		t.Fatalf("expected wraparound to 0")
	}
	overlay.Previous()
	if overlay.SelectedIndex() != 1 {
		t.Fatalf("expected wraparound to 1 on Previous from 0")
	}
}

func TestNewSourceSnippetHighlightsErrorLine(t *testing.T) {
	source := "line 1\nline 2\nline 3\nline 4\nline 5"
	snippet := NewSourceSnippet(source, 3, 5, 1)

	if len(snippet.Lines) != 3 {
		t.Fatalf("expected 3 lines of context, got %d", len(snippet.Lines))
	}
	if snippet.Lines[1].Number != 3 || !snippet.Lines[1].IsErrorLine {
		t.Fatalf("expected line 3 to be the highlighted error line, got %+v", snippet.Lines[1])
	}
}
