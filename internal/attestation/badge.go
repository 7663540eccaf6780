package attestation

import (
	"encoding/json"
	"fmt"
)

// Tier orders badges by significance, Bronze < Silver < Gold < Platinum.
type Tier int

const (
	TierBronze Tier = iota
	TierSilver
	TierGold
	TierPlatinum
)

func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "bronze"
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	default:
		return "unknown"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Tier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "bronze":
		*t = TierBronze
	case "silver":
		*t = TierSilver
	case "gold":
		*t = TierGold
	case "platinum":
		*t = TierPlatinum
	default:
		*t = TierBronze
	}
	return nil
}

// BadgeCategory groups badges by concern.
type BadgeCategory string

const (
	BadgeCategorySecurity    BadgeCategory = "security"
	BadgeCategoryPrivacy     BadgeCategory = "privacy"
	BadgeCategoryQuality     BadgeCategory = "quality"
	BadgeCategoryTrust       BadgeCategory = "trust"
	BadgeCategoryPerformance BadgeCategory = "performance"
)

// BadgeRequirement documents one condition a badge definition checks for.
type BadgeRequirement struct {
	Description string
	CheckType   string
	Mandatory   bool
}

// BadgeDefinition is static marketplace metadata for one badge kind,
// independent of any particular report.
type BadgeDefinition struct {
	ID              string
	Name            string
	Description     string
	LongDescription string
	Icon            string
	Category        BadgeCategory
	Tier            Tier
	Requirements    []BadgeRequirement
}

// BadgeRegistry is the static catalog of every badge kind the attestation
// pipeline can award. Tiers here are the single source of truth consulted
// by deriveBadges so a report's Badge.Tier always matches the registry.
type BadgeRegistry struct {
	defs []BadgeDefinition
}

// NewBadgeRegistry returns a registry pre-populated with the default
// OxideKit badge catalog.
func NewBadgeRegistry() *BadgeRegistry {
	r := &BadgeRegistry{}
	r.registerDefaults()
	return r
}

func (r *BadgeRegistry) registerDefaults() {
	r.defs = []BadgeDefinition{
		{
			ID:          "network_allowlist",
			Name:        "Network Allowlist",
			Description: "Network connections restricted to declared domains",
			LongDescription: "This application enforces a network allowlist policy, meaning it " +
				"can only connect to pre-declared domains. This prevents unexpected data " +
				"exfiltration and provides transparency about network activity.",
			Icon:     "shield",
			Category: BadgeCategorySecurity,
			Tier:     TierGold,
			Requirements: []BadgeRequirement{
				{Description: "Network mode set to allowlist", CheckType: "manifest_check", Mandatory: true},
				{Description: "At least one domain declared", CheckType: "manifest_check", Mandatory: true},
				{Description: "Private IP ranges blocked", CheckType: "manifest_check", Mandatory: false},
			},
		},
		{
			ID:          "verified_build",
			Name:        "Verified Build",
			Description: "Build passes all verification checks",
			LongDescription: "This application was built using the OxideKit verified build " +
				"profile and passed all security checks.",
			Icon:     "check-circle",
			Category: BadgeCategorySecurity,
			Tier:     TierPlatinum,
			Requirements: []BadgeRequirement{
				{Description: "No check with severity Error failed", CheckType: "build_check", Mandatory: true},
			},
		},
		{
			ID:          "privacy_conscious",
			Name:        "Privacy Conscious",
			Description: "Minimal data collection and strong privacy controls",
			LongDescription: "This application has strong privacy controls with no automatic " +
				"data collection. Crash reporting and analytics are disabled or require " +
				"explicit user consent.",
			Icon:     "eye-off",
			Category: BadgeCategoryPrivacy,
			Tier:     TierGold,
			Requirements: []BadgeRequirement{
				{Description: "Privacy score >= 80", CheckType: "privacy_check", Mandatory: true},
			},
		},
		{
			ID:          "signed",
			Name:        "Signed",
			Description: "Binary signed with verified identity",
			LongDescription: "This application binary is cryptographically signed, allowing " +
				"verification of its authenticity and integrity.",
			Icon:     "pen-tool",
			Category: BadgeCategoryTrust,
			Tier:     TierSilver,
			Requirements: []BadgeRequirement{
				{Description: "Valid code signature", CheckType: "signature_check", Mandatory: true},
			},
		},
		{
			ID:          "documented",
			Name:        "Well Documented",
			Description: "All permissions have documented reasons",
			LongDescription: "This application provides clear documentation for all requested " +
				"permissions, explaining why each capability is needed.",
			Icon:     "book",
			Category: BadgeCategoryQuality,
			Tier:     TierBronze,
			Requirements: []BadgeRequirement{
				{Description: "All capabilities have reason field", CheckType: "manifest_check", Mandatory: true},
			},
		},
	}
}

// All returns every badge definition.
func (r *BadgeRegistry) All() []BadgeDefinition { return r.defs }

// Get looks up a badge definition by ID.
func (r *BadgeRegistry) Get(id string) (BadgeDefinition, bool) {
	for _, d := range r.defs {
		if d.ID == id {
			return d, true
		}
	}
	return BadgeDefinition{}, false
}

// ByCategory returns every badge definition in the given category.
func (r *BadgeRegistry) ByCategory(cat BadgeCategory) []BadgeDefinition {
	var out []BadgeDefinition
	for _, d := range r.defs {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// ByTier returns every badge definition at the given tier.
func (r *BadgeRegistry) ByTier(tier Tier) []BadgeDefinition {
	var out []BadgeDefinition
	for _, d := range r.defs {
		if d.Tier == tier {
			out = append(out, d)
		}
	}
	return out
}

var defaultBadgeRegistry = NewBadgeRegistry()

// deriveBadges evaluates the default badge rule set against report,
// returning one Badge per registry definition with Earned set according
// to the fixed derivation rules.
func deriveBadges(report *Report) []Badge {
	reg := defaultBadgeRegistry

	allChecksPass := true
	for _, c := range report.Checks {
		if c.Severity == SeverityError && !c.Passed {
			allChecksPass = false
			break
		}
	}

	documented := report.Permissions.AllHaveReasons || report.Permissions.TotalCapabilities == 0

	earned := map[string]bool{
		"network_allowlist": report.Network.AllowlistEnforced || !report.Network.UsesNetwork,
		"verified_build":     allChecksPass,
		"privacy_conscious":  report.Privacy.PrivacyScore >= 80,
		"signed":             report.Signature.IsValid,
		"documented":         documented,
	}

	descriptions := map[string]string{
		"network_allowlist": networkAllowlistDescription(report),
		"verified_build":    verifiedBuildDescription(allChecksPass),
		"privacy_conscious": fmt.Sprintf("Privacy score: %d/100", report.Privacy.PrivacyScore),
		"signed":            signedDescription(report),
		"documented":        documentedDescription(documented),
	}

	out := make([]Badge, 0, len(reg.All()))
	for _, def := range reg.All() {
		out = append(out, Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: descriptions[def.ID],
			Earned:      earned[def.ID],
			Icon:        def.Icon,
			Category:    string(def.Category),
			Tier:        def.Tier,
		})
	}
	return out
}

func networkAllowlistDescription(report *Report) string {
	switch {
	case report.Network.AllowlistEnforced:
		return "Network connections restricted to declared domains"
	case report.Network.UsesNetwork:
		return "Network policy not enforced"
	default:
		return "No network access"
	}
}

func verifiedBuildDescription(allChecksPass bool) string {
	if allChecksPass {
		return "Build passes all verification checks"
	}
	return "Build has verification issues"
}

func signedDescription(report *Report) string {
	if !report.Signature.IsValid {
		return "Not signed"
	}
	signer := "Unknown"
	if report.Signature.Signer != nil {
		signer = *report.Signature.Signer
	}
	return "Signed by: " + signer
}

func documentedDescription(documented bool) string {
	if documented {
		return "All permissions have documented reasons"
	}
	return "Some permissions lack documentation"
}

// EarnedBadge is one badge in a MarketplaceDisplay, combining the
// report's earned state with the registry's static display metadata.
type EarnedBadge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Tier        Tier   `json:"tier"`
}

// PermissionSummaryDisplay is the permission rollup shown on a
// marketplace listing.
type PermissionSummaryDisplay struct {
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
	MaxRisk    string   `json:"max_risk"`
}

// NetworkSummaryDisplay is the network rollup shown on a marketplace
// listing.
type NetworkSummaryDisplay struct {
	UsesNetwork       bool     `json:"uses_network"`
	AllowlistEnforced bool     `json:"allowlist_enforced"`
	Status            string   `json:"status"`
	Domains           []string `json:"domains"`
}

// MarketplaceDisplay is the public-facing subset of a Report suitable for
// listing an app in a marketplace: earned badges, a permission/network
// rollup, and the trust level.
type MarketplaceDisplay struct {
	AppName           string                   `json:"app_name"`
	AppVersion        string                   `json:"app_version"`
	Publisher         *string                  `json:"publisher,omitempty"`
	Badges            []EarnedBadge            `json:"badges"`
	PermissionSummary PermissionSummaryDisplay `json:"permission_summary"`
	NetworkSummary    NetworkSummaryDisplay    `json:"network_summary"`
	TrustLevel        string                   `json:"trust_level"`
	AttestationURL    *string                  `json:"attestation_url,omitempty"`
	LastVerified      *string                  `json:"last_verified,omitempty"`
}

// NewMarketplaceDisplay derives a MarketplaceDisplay from a finalized
// report, using reg to resolve display metadata for each earned badge.
func NewMarketplaceDisplay(report *Report, reg *BadgeRegistry) MarketplaceDisplay {
	if reg == nil {
		reg = defaultBadgeRegistry
	}

	var badges []EarnedBadge
	for _, b := range report.EarnedBadges() {
		def, ok := reg.Get(b.ID)
		if !ok {
			continue
		}
		badges = append(badges, EarnedBadge{
			ID: b.ID, Name: def.Name, Description: def.Description, Icon: def.Icon, Tier: def.Tier,
		})
	}

	categories := make([]string, 0, len(report.Permissions.ByCategory))
	for cat := range report.Permissions.ByCategory {
		categories = append(categories, cat)
	}

	generated := report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")
	return MarketplaceDisplay{
		AppName:    report.App.Name,
		AppVersion: report.App.Version,
		Publisher:  report.App.Publisher,
		Badges:     badges,
		PermissionSummary: PermissionSummaryDisplay{
			Categories: categories,
			Count:      report.Permissions.TotalCapabilities,
			MaxRisk:    report.Permissions.MaxRiskLevelName,
		},
		NetworkSummary: NetworkSummaryDisplay{
			UsesNetwork:       report.Network.UsesNetwork,
			AllowlistEnforced: report.Network.AllowlistEnforced,
			Status:            report.Network.EnforcementStatus,
			Domains:           report.Network.AllowedDomains,
		},
		TrustLevel:   report.TrustClassification.Level.String(),
		LastVerified: &generated,
	}
}
