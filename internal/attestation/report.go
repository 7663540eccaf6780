// Package attestation implements the binary scanner, permission/privacy
// analysis, badge derivation, and report generation for the attestation
// pipeline: scan a built binary (plus its declared permission manifest),
// classify its trust posture, and emit a portable, immutable report.
package attestation

import (
	"encoding/json"
	"time"

	"github.com/oxidekit/core/internal/capability"
)

// ReportVersion is the schema version written into every generated report.
const ReportVersion = "1.0"

// CheckSeverity grades the consequence of a failed attestation check.
type CheckSeverity int

const (
	SeverityInfo CheckSeverity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s CheckSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (s CheckSeverity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *CheckSeverity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		*s = SeverityInfo
	}
	return nil
}

// Status is the overall outcome of an attestation run.
type Status int

const (
	StatusIncomplete Status = iota
	StatusPassed
	StatusPassedWithWarnings
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusPassedWithWarnings:
		return "passed_with_warnings"
	case StatusFailed:
		return "failed"
	default:
		return "incomplete"
	}
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "passed":
		*s = StatusPassed
	case "passed_with_warnings":
		*s = StatusPassedWithWarnings
	case "failed":
		*s = StatusFailed
	default:
		*s = StatusIncomplete
	}
	return nil
}

// TrustLevel classifies how much a report's subject can be trusted,
// ordered Untrusted < Unknown < Basic < Verified < Official.
type TrustLevel int

const (
	TrustUntrusted TrustLevel = iota
	TrustUnknown
	TrustBasic
	TrustVerified
	TrustOfficial
)

func (t TrustLevel) String() string {
	switch t {
	case TrustUntrusted:
		return "untrusted"
	case TrustBasic:
		return "basic"
	case TrustVerified:
		return "verified"
	case TrustOfficial:
		return "official"
	default:
		return "unknown"
	}
}

func (t TrustLevel) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TrustLevel) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "untrusted":
		*t = TrustUntrusted
	case "basic":
		*t = TrustBasic
	case "verified":
		*t = TrustVerified
	case "official":
		*t = TrustOfficial
	default:
		*t = TrustUnknown
	}
	return nil
}

// AppInfo identifies the application under attestation.
type AppInfo struct {
	Name       string  `json:"name"`
	Version    string  `json:"version"`
	Publisher  *string `json:"publisher,omitempty"`
	AppID      *string `json:"app_id,omitempty"`
	Website    *string `json:"website,omitempty"`
	Repository *string `json:"repository,omitempty"`
}

// BinaryInfo describes the scanned artifact.
type BinaryInfo struct {
	Filename        string  `json:"filename"`
	SizeBytes       int64   `json:"size_bytes"`
	SHA256          string  `json:"sha256"`
	Target          string  `json:"target"`
	BuildTime       *string `json:"build_time,omitempty"`
	OxideKitVersion *string `json:"oxidekit_version,omitempty"`
	GoVersion       *string `json:"go_version,omitempty"`
}

// SignatureStatus describes code-signature verification. Real signature
// checking (codesign/Authenticode/GPG) is out of scope here; this stays a
// stub that always reports unsigned unless a caller supplies a verified
// signature out of band.
type SignatureStatus struct {
	IsSigned  bool       `json:"is_signed"`
	Algorithm *string    `json:"algorithm,omitempty"`
	Signer    *string    `json:"signer,omitempty"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	IsValid   bool       `json:"is_valid"`
	Error     *string    `json:"error,omitempty"`
}

func unimplementedSignature() SignatureStatus {
	msg := "signature verification not implemented"
	return SignatureStatus{Error: &msg}
}

// FlaggedDependency is a dependency singled out by the SBOM analyzer as
// warranting manual review.
type FlaggedDependency struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// SBOMSummary is a software-bill-of-materials rollup. Real dependency
// graph extraction requires build-system integration this package does
// not have; it is populated only when a caller sets
// Report.SBOM itself, and is otherwise the empty-but-real shape carried end to end.
type SBOMSummary struct {
	TotalDependencies      int                 `json:"total_dependencies"`
	DirectDependencies     int                 `json:"direct_dependencies"`
	TransitiveDependencies int                 `json:"transitive_dependencies"`
	VulnerableDependencies int                 `json:"vulnerable_dependencies"`
	Licenses               map[string]int      `json:"licenses"`
	FlaggedDependencies    []FlaggedDependency `json:"flagged_dependencies"`
}

func emptySBOM() SBOMSummary {
	return SBOMSummary{Licenses: map[string]int{}}
}

// PermissionsSummary rolls up a manifest's declared capabilities.
type PermissionsSummary struct {
	TotalCapabilities    int                  `json:"total_capabilities"`
	ByCategory           map[string][]string  `json:"by_category"`
	MaxRiskLevel         capability.RiskLevel `json:"-"`
	MaxRiskLevelName     string               `json:"max_risk_level"`
	HighRiskCapabilities []string             `json:"high_risk_capabilities"`
	AllHaveReasons       bool                 `json:"all_have_reasons"`
}

func emptyPermissionsSummary() PermissionsSummary {
	return PermissionsSummary{
		ByCategory:       map[string][]string{},
		MaxRiskLevel:     capability.RiskLow,
		MaxRiskLevelName: capability.RiskLow.String(),
	}
}

// NetworkSummary rolls up a manifest's network policy block.
type NetworkSummary struct {
	UsesNetwork         bool     `json:"uses_network"`
	AllowlistEnforced   bool     `json:"allowlist_enforced"`
	EnforcementStatus   string   `json:"enforcement_status"`
	AllowedDomains      []string `json:"allowed_domains"`
	BlocksPrivateRanges bool     `json:"blocks_private_ranges"`
	RequiresHTTPS       bool     `json:"requires_https"`
}

func emptyNetworkSummary() NetworkSummary {
	return NetworkSummary{EnforcementStatus: "unknown"}
}

// PrivacySummary rolls up a manifest's privacy block plus a derived score.
type PrivacySummary struct {
	AutoCrashReporting    bool    `json:"auto_crash_reporting"`
	AnalyticsEnabled      bool    `json:"analytics_enabled"`
	ManualExportAllowed   bool    `json:"manual_export_allowed"`
	TelemetryRequiresConsent bool `json:"telemetry_requires_consent"`
	DataRetention         string  `json:"data_retention"`
	PrivacyScore          int     `json:"privacy_score"`
}

func defaultPrivacySummary() PrivacySummary {
	return PrivacySummary{ManualExportAllowed: true, TelemetryRequiresConsent: true, DataRetention: "none", PrivacyScore: 100}
}

// Check is one attestation verification result.
type Check struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Passed      bool          `json:"passed"`
	Details     *string       `json:"details,omitempty"`
	Severity    CheckSeverity `json:"severity"`
}

// TrustClassification explains the derived TrustLevel.
type TrustClassification struct {
	Level           TrustLevel `json:"level"`
	Reasons         []string   `json:"reasons"`
	Recommendations []string   `json:"recommendations"`
}

// Badge is one marketplace badge earned or not earned by a report.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Tier        Tier   `json:"tier"`
}

// Report is the complete, immutable attestation document produced by a
// scan. Once Finalize has run, a Report is never mutated further.
type Report struct {
	Version             string              `json:"version"`
	GeneratedAt         time.Time           `json:"generated_at"`
	App                 AppInfo             `json:"app"`
	Binary              BinaryInfo          `json:"binary"`
	Signature           SignatureStatus     `json:"signature"`
	SBOM                SBOMSummary         `json:"sbom"`
	Permissions         PermissionsSummary  `json:"permissions"`
	Network             NetworkSummary      `json:"network"`
	Privacy             PrivacySummary      `json:"privacy"`
	Checks              []Check             `json:"checks"`
	TrustClassification TrustClassification `json:"trust_classification"`
	Badges              []Badge             `json:"badges"`
	Status              Status              `json:"status"`
	Metadata            map[string]string   `json:"metadata,omitempty"`
}

// NewReport starts an in-progress report for the named application.
// Finalize must be called before the report is considered complete.
func NewReport(appName, appVersion string) *Report {
	return &Report{
		Version:             ReportVersion,
		App:                 AppInfo{Name: appName, Version: appVersion},
		Signature:           unimplementedSignature(),
		SBOM:                emptySBOM(),
		Permissions:         emptyPermissionsSummary(),
		Network:             emptyNetworkSummary(),
		Privacy:             defaultPrivacySummary(),
		TrustClassification: TrustClassification{Level: TrustUnknown},
		Status:              StatusIncomplete,
	}
}

// AddCheck records one verification check result.
func (r *Report) AddCheck(c Check) { r.Checks = append(r.Checks, c) }

// AddBadge records one badge evaluation.
func (r *Report) AddBadge(b Badge) { r.Badges = append(r.Badges, b) }

// Finalize computes Status and TrustClassification from the accumulated
// checks and signature/network posture, and stamps GeneratedAt. Call once,
// after all checks and badges have been added.
func (r *Report) Finalize() {
	r.GeneratedAt = time.Now().UTC()

	var hasCritical, hasError, hasWarning bool
	for _, c := range r.Checks {
		if c.Passed {
			continue
		}
		switch c.Severity {
		case SeverityCritical:
			hasCritical = true
		case SeverityError:
			hasError = true
		case SeverityWarning:
			hasWarning = true
		}
	}

	switch {
	case hasCritical || hasError:
		r.Status = StatusFailed
	case hasWarning:
		r.Status = StatusPassedWithWarnings
	default:
		r.Status = StatusPassed
	}

	switch {
	case hasCritical:
		r.TrustClassification.Level = TrustUntrusted
	case hasError:
		r.TrustClassification.Level = TrustUnknown
	case r.Signature.IsValid && r.Network.AllowlistEnforced:
		r.TrustClassification.Level = TrustVerified
	case !hasWarning:
		r.TrustClassification.Level = TrustBasic
	default:
		r.TrustClassification.Level = TrustUnknown
	}
}

// IsVerified reports whether the report passed (with or without warnings)
// and reached at least TrustVerified.
func (r *Report) IsVerified() bool {
	return (r.Status == StatusPassed || r.Status == StatusPassedWithWarnings) &&
		r.TrustClassification.Level >= TrustVerified
}

// FailedChecks returns every check that did not pass.
func (r *Report) FailedChecks() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// EarnedBadges returns every badge marked Earned.
func (r *Report) EarnedBadges() []Badge {
	var out []Badge
	for _, b := range r.Badges {
		if b.Earned {
			out = append(out, b)
		}
	}
	return out
}

// ToJSON serializes the report as indented JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ReportFromJSON deserializes a report previously produced by ToJSON.
func ReportFromJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
