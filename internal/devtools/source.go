package devtools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxidekit/core/internal/diff"
)

// Location is a resolved position of a component's property assignment
// inside a source file.
type Location struct {
	File   string
	Line   int
	Column int
	Text   string
}

// Locator maps a component ID/property pair back to a source location.
// The real mapping requires build-time instrumentation that records
// where each component was declared; devtools only consumes the
// interface, so tests and callers can supply a fake or a tree-sitter-
// backed implementation.
type Locator interface {
	Locate(componentID, property string) (Location, bool)
}

// TreeSitterLocator resolves a component's property assignment by
// parsing a known source file and walking the AST for an object
// property whose key matches. It covers the common case of a JSX-like
// `.oui` component literal; anything it can't find falls through to
// the caller's fallback handling.
type TreeSitterLocator struct {
	// Files maps a component ID to the source file it was declared in.
	// Populated by whatever build step tracks component provenance;
	// devtools does not discover this mapping itself.
	Files map[string]string
}

// NewTreeSitterLocator returns a locator over the given component-id to
// file-path mapping.
func NewTreeSitterLocator(files map[string]string) *TreeSitterLocator {
	return &TreeSitterLocator{Files: files}
}

// Locate parses the file associated with componentID and returns the
// position of the first object property named property found within
// it.
func (l *TreeSitterLocator) Locate(componentID, property string) (Location, bool) {
	file, ok := l.Files[componentID]
	if !ok {
		return Location{}, false
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return Location{}, false
	}
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Location{}, false
	}
	node, ok := findProperty(tree.RootNode(), content, property)
	if !ok {
		return Location{}, false
	}
	point := node.StartPoint()
	return Location{
		File:   file,
		Line:   int(point.Row),
		Column: int(point.Column),
		Text:   node.Content(content),
	}, true
}

// findProperty walks the AST depth-first for a "pair" node whose key
// matches name, returning the pair's value node.
func findProperty(n *sitter.Node, content []byte, name string) (*sitter.Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.Type() == "pair" {
		key := n.ChildByFieldName("key")
		if key != nil && key.Content(content) == name {
			if value := n.ChildByFieldName("value"); value != nil {
				return value, true
			}
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found, ok := findProperty(n.Child(i), content, name); ok {
			return found, true
		}
	}
	return nil, false
}

// SourceChange is a single resolved edit to a source file.
type SourceChange struct {
	File     string
	Line     int
	Column   int
	OldText  string
	NewText  string
	Property string
}

// SourceChangePreview is a non-mutating, human-readable description of
// what applying a patch operation would change.
type SourceChangePreview struct {
	ComponentID string
	Property    string
	OldValue    string
	NewValue    string
	Diff        *diff.ValueDiff
}

// SourcePatcher maps committed patches onto project source files: it
// resolves component/property pairs to file locations via a Locator,
// stages the rewritten file content, and only touches disk on Flush.
// The first write to a given file backs up its original content so
// Restore can always undo a flush.
type SourcePatcher struct {
	projectRoot   string
	locator       Locator
	pendingWrites map[string]string
	backups       map[string]string
	diffEngine    *diff.Engine
}

// NewSourcePatcher returns a patcher rooted at projectRoot, resolving
// locations through locator.
func NewSourcePatcher(projectRoot string, locator Locator) *SourcePatcher {
	return &SourcePatcher{
		projectRoot:   projectRoot,
		locator:       locator,
		pendingWrites: make(map[string]string),
		backups:       make(map[string]string),
		diffEngine:    diff.NewEngine(),
	}
}

// ApplyToSource resolves and stages every operation in patch, returning
// the resolved changes. An operation whose component/property can't be
// located is skipped, not an error — devtools may be editing components
// with no known source mapping (e.g. runtime-constructed nodes).
func (p *SourcePatcher) ApplyToSource(patch *EditPatch) ([]SourceChange, error) {
	var changes []SourceChange
	for _, op := range patch.Operations {
		loc, ok := p.locator.Locate(op.ComponentID, op.Property)
		if !ok {
			continue
		}
		newText := formatOperationValue(op.NewValue)
		path := filepath.Join(p.projectRoot, loc.File)
		content, ok := p.pendingWrites[path]
		if !ok {
			raw, err := os.ReadFile(path)
			if err != nil {
				return changes, fmt.Errorf("devtools: read %s: %w", path, err)
			}
			content = string(raw)
		}
		p.pendingWrites[path] = replaceAt(content, loc.Text, newText)
		changes = append(changes, SourceChange{
			File:     loc.File,
			Line:     loc.Line,
			Column:   loc.Column,
			OldText:  loc.Text,
			NewText:  newText,
			Property: op.Property,
		})
	}
	return changes, nil
}

func formatOperationValue(v *StyleValue) string {
	if v == nil {
		return ""
	}
	return v.Source()
}

// replaceAt does a single first-occurrence textual substitution. The
// locator already pinned an exact AST node's text, so this is precise
// enough without re-parsing after every operation.
func replaceAt(content, oldText, newText string) string {
	idx := indexOf(content, oldText)
	if idx < 0 {
		return content
	}
	return content[:idx] + newText + content[idx+len(oldText):]
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// Preview describes what ApplyToSource would change without staging
// anything, including a line-level diff of the affected property's
// formatted value.
func (p *SourcePatcher) Preview(patch *EditPatch) []SourceChangePreview {
	previews := make([]SourceChangePreview, 0, len(patch.Operations))
	for _, op := range patch.Operations {
		oldVal, newVal := "", ""
		if op.OldValue != nil {
			oldVal = op.OldValue.Source()
		}
		if op.NewValue != nil {
			newVal = op.NewValue.Source()
		}
		previews = append(previews, SourceChangePreview{
			ComponentID: op.ComponentID,
			Property:    op.Property,
			OldValue:    oldVal,
			NewValue:    newVal,
			Diff:        p.diffEngine.ComputeDiff(op.ComponentID, op.Property, oldVal, newVal),
		})
	}
	return previews
}

// Flush writes every pending file to disk, backing up each file's
// original on-disk content the first time it's touched.
func (p *SourcePatcher) Flush() error {
	for path, content := range p.pendingWrites {
		if _, backed := p.backups[path]; !backed {
			if original, err := os.ReadFile(path); err == nil {
				p.backups[path] = string(original)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("devtools: write %s: %w", path, err)
		}
		delete(p.pendingWrites, path)
	}
	return nil
}

// Restore rewrites every backed-up file to its original content and
// discards any not-yet-flushed pending writes.
func (p *SourcePatcher) Restore() error {
	for path, content := range p.backups {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("devtools: restore %s: %w", path, err)
		}
	}
	p.pendingWrites = make(map[string]string)
	return nil
}
