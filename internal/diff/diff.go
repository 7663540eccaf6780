// Package diff computes line-level diffs for patch previews: showing a
// developer what changed between a component property's old and new
// formatted value (and, for multi-line text-edit content, between old
// and new buffer text) before a patch is committed. It builds on
// sergi/go-diff's Myers diff implementation rather than a hand-rolled
// LCS.
package diff

import (
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType classifies one line of a computed diff.
type LineType int

const (
	LineContext LineType = iota // unchanged context line
	LineAdded                   // present only in the new value
	LineRemoved                 // present only in the old value
)

// Line is a single line in a diff, tagged with its role.
type Line struct {
	LineNum int
	Content string
	Type    LineType
}

// Hunk is a contiguous run of changed lines plus surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// ValueDiff is the diff between a component property's old and new
// value, ready for display in a patch preview.
type ValueDiff struct {
	ComponentID string
	Property    string
	Hunks       []Hunk
	IsNewValue  bool // property had no prior value
	IsCleared   bool // property's new value is empty
}

// Engine computes value diffs, caching identical (old, new) pairs so a
// dev server recomputing previews on every keystroke doesn't re-run the
// Myers diff for a value pair it has already seen.
type Engine struct {
	dmp   *diffmatchpatch.DiffMatchPatch
	cache sync.Map // cacheKey -> *ValueDiff
}

type cacheKey struct {
	oldHash uint64
	newHash uint64
}

// NewEngine creates a diff engine tuned for short property-value and
// in-memory text-edit content rather than large files: no diff timeout,
// since accuracy matters more than latency at this size.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp}
}

// DefaultEngine is a shared engine for callers that don't need their
// own cache lifecycle.
var DefaultEngine = NewEngine()

// ComputeDiff computes the diff between a component property's old and
// new formatted value.
func (e *Engine) ComputeDiff(componentID, property, oldValue, newValue string) *ValueDiff {
	result := &ValueDiff{
		ComponentID: componentID,
		Property:    property,
		IsNewValue:  oldValue == "",
		IsCleared:   newValue == "",
	}

	key := cacheKey{hash(oldValue), hash(newValue)}
	if cached, ok := e.cache.Load(key); ok {
		if cachedDiff, ok := cached.(*ValueDiff); ok {
			result.Hunks = cachedDiff.Hunks
			return result
		}
	}

	// Reduce to a line-level alphabet before diffing so newline
	// boundaries in multi-line text-edit content land on line edges
	// rather than character offsets.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldValue, newValue)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	result.Hunks = e.convertToHunks(diffs, 3)
	e.cache.Store(key, result)
	return result
}

// ComputeDiff computes a value diff using the package's default engine.
func ComputeDiff(componentID, property, oldValue, newValue string) *ValueDiff {
	return DefaultEngine.ComputeDiff(componentID, property, oldValue, newValue)
}

// ClearCache discards every cached diff result.
func (e *Engine) ClearCache() {
	e.cache = sync.Map{}
}

// ComputeWordLevelDiff highlights the specific characters that changed
// within a single modified value, for inline preview rendering.
func (e *Engine) ComputeWordLevelDiff(oldValue, newValue string) []diffmatchpatch.Diff {
	diffs := e.dmp.DiffMain(oldValue, newValue, false)
	return e.dmp.DiffCleanupSemantic(diffs)
}

// convertToHunks converts diffmatchpatch diffs to Hunks grouped with
// surrounding context.
func (e *Engine) convertToHunks(diffs []diffmatchpatch.Diff, contextLines int) []Hunk {
	if len(diffs) == 0 {
		return nil
	}
	operations := diffsToOperations(diffs)
	if len(operations) == 0 {
		return nil
	}
	return groupIntoHunks(operations, contextLines)
}

// operation is a single line-level edit derived from a diffmatchpatch diff.
type operation struct {
	typ     LineType
	oldLine int
	newLine int
	content string
}

func diffsToOperations(diffs []diffmatchpatch.Diff) []operation {
	operations := make([]operation, 0)
	oldLine := 0
	newLine := 0

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		if len(lines) == 1 && lines[0] == "" && d.Type != diffmatchpatch.DiffEqual {
			continue
		}
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		for i, line := range lines {
			if i == len(lines)-1 && line == "" && len(lines) > 1 {
				continue
			}

			switch d.Type {
			case diffmatchpatch.DiffEqual:
				operations = append(operations, operation{typ: LineContext, oldLine: oldLine, newLine: newLine, content: line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				operations = append(operations, operation{typ: LineRemoved, oldLine: oldLine, newLine: -1, content: line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				operations = append(operations, operation{typ: LineAdded, oldLine: -1, newLine: newLine, content: line})
				newLine++
			}
		}
	}

	return operations
}

// groupIntoHunks groups line operations into hunks, keeping up to
// contextLines of unchanged context around each run of changes.
func groupIntoHunks(ops []operation, contextLines int) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	hunks := make([]Hunk, 0)
	var currentHunk *Hunk
	lastChangeIdx := -1

	for i, op := range ops {
		isChange := op.typ != LineContext

		if isChange {
			if currentHunk == nil {
				currentHunk = &Hunk{Lines: make([]Line, 0)}

				start := i - contextLines
				if start < 0 {
					start = 0
				}
				for j := start; j < i; j++ {
					if ops[j].typ == LineContext {
						currentHunk.Lines = append(currentHunk.Lines, Line{
							LineNum: ops[j].oldLine + 1,
							Content: ops[j].content,
							Type:    LineContext,
						})
					}
				}

				if start < len(ops) {
					currentHunk.OldStart = ops[start].oldLine + 1
					currentHunk.NewStart = ops[start].newLine + 1
					if ops[start].oldLine < 0 {
						currentHunk.OldStart = 0
					}
					if ops[start].newLine < 0 {
						currentHunk.NewStart = 0
					}
				}
			}
			lastChangeIdx = i
		}

		if currentHunk != nil {
			lineNum := op.oldLine + 1
			if op.typ == LineAdded {
				lineNum = op.newLine + 1
			}
			currentHunk.Lines = append(currentHunk.Lines, Line{LineNum: lineNum, Content: op.content, Type: op.typ})

			if op.typ == LineContext && i-lastChangeIdx > contextLines {
				trimTo := len(currentHunk.Lines) - (i - lastChangeIdx - contextLines)
				if trimTo > 0 && trimTo < len(currentHunk.Lines) {
					currentHunk.Lines = currentHunk.Lines[:trimTo]
				}
				computeHunkCounts(currentHunk)
				hunks = append(hunks, *currentHunk)
				currentHunk = nil
			}
		}
	}

	if currentHunk != nil && len(currentHunk.Lines) > 0 {
		computeHunkCounts(currentHunk)
		hunks = append(hunks, *currentHunk)
	}

	return hunks
}

func computeHunkCounts(hunk *Hunk) {
	for _, line := range hunk.Lines {
		if line.Type == LineRemoved || line.Type == LineContext {
			hunk.OldCount++
		}
		if line.Type == LineAdded || line.Type == LineContext {
			hunk.NewCount++
		}
	}
}

// hash computes an FNV-1a hash for cache keys.
func hash(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
