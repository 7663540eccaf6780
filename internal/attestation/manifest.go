package attestation

import "github.com/oxidekit/core/internal/capability"

// CapabilityDeclaration is one capability entry in a Manifest, with an
// optional human-readable justification for why the app needs it.
type CapabilityDeclaration struct {
	Reason string // empty means undocumented
}

// NetworkPolicy is the manifest's declared network posture.
type NetworkPolicy struct {
	Allow             []string // domain allowlist; empty means unrestricted
	DenyPrivateRanges bool
	RequireHTTPS      bool
}

// PrivacyPolicy is the manifest's declared data-handling posture.
type PrivacyPolicy struct {
	AutoCrashReporting       bool
	AnalyticsEnabled         bool
	ManualExportAllowed      bool
	TelemetryRequiresConsent bool
	DataRetentionDays        int
}

// Manifest is the permission manifest a scanned binary is attested
// against: the set of capabilities it declares, plus its network and
// privacy policy. This is the C7 side of the capability/C7 boundary
// described for the attestation pipeline; capability names and risk
// levels are the same vocabulary the capability registry uses.
type Manifest struct {
	Capabilities map[capability.Name]CapabilityDeclaration
	Network      *NetworkPolicy
	Privacy      *PrivacyPolicy
}

// NewManifest returns an empty manifest ready for capability declarations.
func NewManifest() *Manifest {
	return &Manifest{Capabilities: make(map[capability.Name]CapabilityDeclaration)}
}

// Declare records cap as used by the application, with an optional reason.
func (m *Manifest) Declare(cap capability.Name, reason string) {
	if m.Capabilities == nil {
		m.Capabilities = make(map[capability.Name]CapabilityDeclaration)
	}
	m.Capabilities[cap] = CapabilityDeclaration{Reason: reason}
}

// AllCapabilities returns every declared capability name.
func (m *Manifest) AllCapabilities() []capability.Name {
	out := make([]capability.Name, 0, len(m.Capabilities))
	for c := range m.Capabilities {
		out = append(out, c)
	}
	return out
}

// CapabilitiesByCategory buckets declared capabilities by their registry
// category, using reg to look up each capability's category. Capabilities
// with no registry entry are bucketed under their own dotted-prefix
// category via capability.CategoryOf.
func (m *Manifest) CapabilitiesByCategory(reg *capability.Registry) map[capability.Category][]capability.Name {
	out := make(map[capability.Category][]capability.Name)
	for c := range m.Capabilities {
		cat := capability.CategoryOf(c)
		if reg != nil {
			if meta, ok := reg.Get(c); ok {
				cat = meta.Category
			}
		}
		out[cat] = append(out[cat], c)
	}
	return out
}

// MaxRiskLevel returns the highest risk level among declared capabilities,
// looked up against reg. Unregistered capabilities are treated as RiskLow.
func (m *Manifest) MaxRiskLevel(reg *capability.Registry) capability.RiskLevel {
	max := capability.RiskLow
	for c := range m.Capabilities {
		if reg == nil {
			continue
		}
		if meta, ok := reg.Get(c); ok && meta.Risk > max {
			max = meta.Risk
		}
	}
	return max
}

// AllowsNetwork reports whether any declared capability falls under the
// "network" category.
func (m *Manifest) AllowsNetwork() bool {
	for c := range m.Capabilities {
		if capability.CategoryOf(c) == "network" {
			return true
		}
	}
	return false
}

// HasNetworkAllowlist reports whether the network policy declares at
// least one allowed domain.
func (m *Manifest) HasNetworkAllowlist() bool {
	return m.Network != nil && len(m.Network.Allow) > 0
}

// AllHaveReasons reports whether every declared capability carries a
// non-empty reason.
func (m *Manifest) AllHaveReasons() bool {
	for _, decl := range m.Capabilities {
		if decl.Reason == "" {
			return false
		}
	}
	return true
}
