package attestation

import (
	"testing"

	"github.com/oxidekit/core/internal/capability"
)

func TestManifestAllHaveReasons(t *testing.T) {
	m := NewManifest()
	m.Declare("filesystem.read", "needed to read project files")
	if !m.AllHaveReasons() {
		t.Fatalf("expected all capabilities to have reasons")
	}

	m.Declare("network.http", "")
	if m.AllHaveReasons() {
		t.Fatalf("expected AllHaveReasons false once an undocumented capability exists")
	}
}

func TestManifestAllowsNetworkAndAllowlist(t *testing.T) {
	m := NewManifest()
	if m.AllowsNetwork() {
		t.Fatalf("expected no network use on empty manifest")
	}

	m.Declare("network.http", "api access")
	if !m.AllowsNetwork() {
		t.Fatalf("expected network use once network.* capability declared")
	}
	if m.HasNetworkAllowlist() {
		t.Fatalf("expected no allowlist without a Network policy")
	}

	m.Network = &NetworkPolicy{Allow: []string{"api.example.com"}}
	if !m.HasNetworkAllowlist() {
		t.Fatalf("expected allowlist enforced once domains declared")
	}
}

func TestManifestMaxRiskLevel(t *testing.T) {
	reg := capability.NewRegistry()
	reg.Register(capability.Registered{Name: "filesystem.read", Risk: capability.RiskHigh})
	reg.Register(capability.Registered{Name: "clipboard.write", Risk: capability.RiskLow})

	m := NewManifest()
	m.Declare("filesystem.read", "r")
	m.Declare("clipboard.write", "w")

	if got := m.MaxRiskLevel(reg); got != capability.RiskHigh {
		t.Fatalf("expected RiskHigh, got %v", got)
	}
}

func TestManifestCapabilitiesByCategoryFallsBackToPrefix(t *testing.T) {
	m := NewManifest()
	m.Declare("filesystem.read", "r")

	byCat := m.CapabilitiesByCategory(nil)
	if _, ok := byCat["filesystem"]; !ok {
		t.Fatalf("expected fallback category 'filesystem', got %v", byCat)
	}
}
