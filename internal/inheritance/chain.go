// Package inheritance implements layered token resolution: a chain of
// inheritance layers (brand, org, app, theme, component) is resolved
// to a single effective value per token path, subject to governance
// locks and rules.
package inheritance

import (
	"sort"

	"github.com/oxidekit/core/internal/governance"
)

// InheritanceLevel orders the layers in a resolution chain from
// lowest to highest precedence.
type InheritanceLevel int

const (
	LevelBrand InheritanceLevel = iota
	LevelOrg
	LevelApp
	LevelTheme
	LevelComponent
)

func (l InheritanceLevel) String() string {
	switch l {
	case LevelBrand:
		return "brand"
	case LevelOrg:
		return "org"
	case LevelApp:
		return "app"
	case LevelTheme:
		return "theme"
	case LevelComponent:
		return "component"
	default:
		return "unknown"
	}
}

// blockedAbove lists, for a lock at a given level, the override levels
// it blocks. A Brand lock is absolute and is handled separately; a
// None lock never blocks.
var blockedAbove = map[governance.LockLevel]map[InheritanceLevel]bool{
	governance.LockOrg: {LevelApp: true, LevelTheme: true, LevelComponent: true},
	governance.LockApp: {LevelTheme: true, LevelComponent: true},
}

// CanOverrideAt reports whether a layer at level may override the
// token at path, given gov's lock table. Brand locks block every
// override level; an Org lock blocks App/Theme/Component; an App lock
// blocks Theme/Component.
func CanOverrideAt(gov *governance.Governance, path string, level InheritanceLevel) bool {
	lock, ok := gov.GetLock(path)
	if !ok || lock.Level == governance.LockNone {
		return true
	}
	if lock.Level == governance.LockBrand {
		return false
	}
	return !blockedAbove[lock.Level][level]
}

// InheritanceLayer is one tier of token values in resolution order.
type InheritanceLayer struct {
	Name   string
	Level  InheritanceLevel
	Tokens map[string]any
}

// ResolvedToken is the outcome of resolving a token path through a
// Chain.
type ResolvedToken struct {
	Path   string
	Value  any
	Source string
	Level  InheritanceLevel
	Locked bool
}

// Chain is an ordered list of inheritance layers, lowest precedence
// (Brand) first.
type Chain struct {
	layers []InheritanceLayer
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// WithLayer appends a layer and re-sorts the chain by level, returning
// the chain for call chaining.
func (c *Chain) WithLayer(layer InheritanceLayer) *Chain {
	c.layers = append(c.layers, layer)
	c.sortLayers()
	return c
}

func (c *Chain) sortLayers() {
	sort.SliceStable(c.layers, func(i, j int) bool { return c.layers[i].Level < c.layers[j].Level })
}

// Layers returns the chain's layers in resolution order.
func (c *Chain) Layers() []InheritanceLayer {
	return c.layers
}

// Resolve walks the chain low to high for path, accepting a layer's
// value if the layer is Brand or gov currently permits override of
// path. The last accepted value wins. If no layer holds path, Resolve
// returns ErrNotFound.
func (c *Chain) Resolve(path string, gov *governance.Governance, context map[string]string) (ResolvedToken, error) {
	var (
		value  any
		source string
		level  InheritanceLevel
		found  bool
	)

	for _, layer := range c.layers {
		tokenValue, ok := layer.Tokens[path]
		if !ok {
			continue
		}
		if layer.Level == LevelBrand || gov.CanOverride(path, context) {
			value = tokenValue
			source = layer.Name
			level = layer.Level
			found = true
		}
	}

	if !found {
		return ResolvedToken{}, ErrNotFound
	}
	return ResolvedToken{
		Path:   path,
		Value:  value,
		Source: source,
		Level:  level,
		Locked: !gov.CanOverride(path, context),
	}, nil
}

// AllTokenPaths returns the union of every token path across every
// layer.
func (c *Chain) AllTokenPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, layer := range c.layers {
		for path := range layer.Tokens {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	sort.Strings(paths)
	return paths
}

// ApplyOverride updates (or creates) the unique layer at level,
// inserting value at path. The layer list remains sorted by level.
func (c *Chain) ApplyOverride(path string, value any, level InheritanceLevel, layerName string) {
	for i := range c.layers {
		if c.layers[i].Level == level {
			c.layers[i].Tokens[path] = value
			return
		}
	}
	c.layers = append(c.layers, InheritanceLayer{
		Name:   layerName,
		Level:  level,
		Tokens: map[string]any{path: value},
	})
	c.sortLayers()
}
