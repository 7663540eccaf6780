package hotreload

import (
	"strings"
	"sync"
	"time"
)

// OverlayState is the visibility state of the client-side error overlay
// as tracked server-side for the TUI dashboard and state_snapshot
// payloads.
type OverlayState int

const (
	OverlayHidden OverlayState = iota
	OverlayVisible
	OverlayDismissing
)

func (s OverlayState) String() string {
	switch s {
	case OverlayVisible:
		return "visible"
	case OverlayDismissing:
		return "dismissing"
	default:
		return "hidden"
	}
}

// OverlayConfig controls overlay behavior.
type OverlayConfig struct {
	Enabled            bool
	MaxErrors          int
	ShowWarnings       bool
	AutoDismissSeconds int64
}

// DefaultOverlayConfig matches the dev-server default: ten errors,
// warnings shown, auto-dismiss after three seconds of no new errors.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{Enabled: true, MaxErrors: 10, ShowWarnings: true, AutoDismissSeconds: 3}
}

// Diagnostic is a single compilation error or warning to surface.
type Diagnostic struct {
	File      string
	Line      int
	Column    int
	Message   string
	Severity  string
	Code      string
	Snippet   *SourceSnippet
	Timestamp time.Time
}

// SourceSnippet is a small window of source around a diagnostic.
type SourceSnippet struct {
	Lines           []SourceLine
	HighlightIndex  int
	HighlightColumn [2]int
}

// SourceLine is one line of a SourceSnippet.
type SourceLine struct {
	Number      int
	Content     string
	IsErrorLine bool
}

// NewSourceSnippet builds a context window of contextLines lines on
// either side of errorLine (1-indexed) from source.
func NewSourceSnippet(source string, errorLine, errorColumn, contextLines int) SourceSnippet {
	lines := strings.Split(source, "\n")
	errorIndex := errorLine - 1
	if errorIndex < 0 {
		errorIndex = 0
	}

	start := errorIndex - contextLines
	if start < 0 {
		start = 0
	}
	end := errorIndex + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	var snippetLines []SourceLine
	for i := start; i < end; i++ {
		lineNumber := i + 1
		snippetLines = append(snippetLines, SourceLine{
			Number:      lineNumber,
			Content:     lines[i],
			IsErrorLine: lineNumber == errorLine,
		})
	}

	return SourceSnippet{
		Lines:           snippetLines,
		HighlightIndex:  errorIndex - start,
		HighlightColumn: [2]int{errorColumn, errorColumn + 1},
	}
}

// ErrorOverlay tracks the set of diagnostics currently surfaced to
// clients and the overlay's show/dismiss/hide state machine.
type ErrorOverlay struct {
	mu            sync.Mutex
	config        OverlayConfig
	diagnostics   []Diagnostic
	state         OverlayState
	dismissAt     *time.Time
	selectedIndex int
	clock         func() time.Time
}

// NewErrorOverlay returns an overlay using the real wall clock.
func NewErrorOverlay(config OverlayConfig) *ErrorOverlay {
	return &ErrorOverlay{config: config, clock: time.Now}
}

// NewErrorOverlayWithClock returns an overlay driven by an injectable
// clock, for deterministic dismiss-timing tests.
func NewErrorOverlayWithClock(config OverlayConfig, clock func() time.Time) *ErrorOverlay {
	return &ErrorOverlay{config: config, clock: clock}
}

// Show replaces the diagnostic set and makes the overlay visible,
// filtering out warnings if the config says not to show them and
// truncating to MaxErrors.
func (o *ErrorOverlay) Show(diagnostics []Diagnostic) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.config.Enabled || len(diagnostics) == 0 {
		return
	}

	filtered := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if o.config.ShowWarnings || d.Severity == "error" {
			filtered = append(filtered, d)
		}
		if len(filtered) >= o.config.MaxErrors {
			break
		}
	}

	o.diagnostics = filtered
	if len(filtered) > 0 {
		o.state = OverlayVisible
		o.dismissAt = nil
		o.selectedIndex = 0
	}
}

// Hide immediately clears the overlay.
func (o *ErrorOverlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = OverlayHidden
	o.dismissAt = nil
	o.diagnostics = nil
}

// Dismiss starts the fade-out animation (or hides immediately if
// auto-dismiss is disabled).
func (o *ErrorOverlay) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != OverlayVisible {
		return
	}
	if o.config.AutoDismissSeconds > 0 {
		o.state = OverlayDismissing
		at := o.clock().Add(time.Duration(o.config.AutoDismissSeconds) * time.Second)
		o.dismissAt = &at
		return
	}
	o.state = OverlayHidden
	o.dismissAt = nil
	o.diagnostics = nil
}

// Update checks whether a pending dismiss has elapsed, hiding the
// overlay if so. Call periodically from the server's tick loop.
func (o *ErrorOverlay) Update() {
	o.mu.Lock()
	dismissAt := o.dismissAt
	now := o.clock()
	o.mu.Unlock()
	if dismissAt != nil && !now.Before(*dismissAt) {
		o.Hide()
	}
}

// State returns the current overlay state.
func (o *ErrorOverlay) State() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsVisible reports whether the overlay is shown (visible or
// dismissing).
func (o *ErrorOverlay) IsVisible() bool {
	s := o.State()
	return s == OverlayVisible || s == OverlayDismissing
}

// Diagnostics returns a copy of the current diagnostic list.
func (o *ErrorOverlay) Diagnostics() []Diagnostic {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Diagnostic(nil), o.diagnostics...)
}

// ErrorCount returns the number of error-severity diagnostics.
func (o *ErrorOverlay) ErrorCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, d := range o.diagnostics {
		if d.Severity == "error" {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity diagnostics.
func (o *ErrorOverlay) WarningCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, d := range o.diagnostics {
		if d.Severity == "warning" {
			n++
		}
	}
	return n
}

// Next selects the following diagnostic, wrapping around.
func (o *ErrorOverlay) Next() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.diagnostics) == 0 {
		return
	}
	o.selectedIndex = (o.selectedIndex + 1) % len(o.diagnostics)
}

// Previous selects the prior diagnostic, wrapping around.
func (o *ErrorOverlay) Previous() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.diagnostics) == 0 {
		return
	}
	if o.selectedIndex == 0 {
		o.selectedIndex = len(o.diagnostics) - 1
	} else {
		o.selectedIndex--
	}
}

// Selected returns the currently selected diagnostic, if any.
func (o *ErrorOverlay) Selected() (Diagnostic, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selectedIndex < 0 || o.selectedIndex >= len(o.diagnostics) {
		return Diagnostic{}, false
	}
	return o.diagnostics[o.selectedIndex], true
}

// SelectedIndex returns the currently selected diagnostic's index.
func (o *ErrorOverlay) SelectedIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectedIndex
}
