package governance

import "github.com/oxidekit/core/internal/brandpack"

// FromBrandPack builds governance from a brand pack: every token path
// the pack marks locked (primary/secondary/accent colors, typography
// primary family, locked custom colors) gets a Brand-level lock, and
// the pack's own governance rules are carried over verbatim.
func FromBrandPack(pack brandpack.BrandPack) *Governance {
	g := New()
	g.Settings.StrictMode = pack.Governance.StrictMode

	for _, path := range pack.LockedPaths() {
		g.LockTokenWithReason(path, LockBrand, "locked by brand pack")
	}

	for _, spec := range pack.Governance.Rules {
		g.AddRule(Rule{
			Name:        spec.Name,
			Description: spec.Description,
			Patterns:    spec.Patterns,
			Type:        RuleType(spec.Type),
			Action:      RuleAction(spec.Action),
		})
	}

	return g
}
