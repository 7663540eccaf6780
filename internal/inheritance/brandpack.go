package inheritance

import (
	"github.com/oxidekit/core/internal/brandpack"
	"github.com/oxidekit/core/internal/governance"
)

// FromBrandPack builds a Manager seeded with a single Brand layer
// derived from pack, governed by governance.FromBrandPack(pack).
func FromBrandPack(pack brandpack.BrandPack) *Manager {
	chain := NewChain().WithLayer(InheritanceLayer{
		Name:   "brand",
		Level:  LevelBrand,
		Tokens: pack.TokenMap(),
	})
	return NewManager(chain, governance.FromBrandPack(pack))
}

// WithAppLayer adds an App-level layer to chain from a plain token
// map (an already-flattened app pack), returning chain for chaining.
func (c *Chain) WithAppLayer(appID string, tokens map[string]any) *Chain {
	return c.WithLayer(InheritanceLayer{Name: "app:" + appID, Level: LevelApp, Tokens: tokens})
}
