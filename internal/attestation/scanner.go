package attestation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oxidekit/core/internal/capability"
	"github.com/oxidekit/core/internal/logging"
)

// ErrFileNotFound is returned when the scan target does not exist.
var ErrFileNotFound = errors.New("attestation: binary not found")

// ErrBinaryTooLarge is returned when the scan target exceeds the
// scanner's configured size limit.
var ErrBinaryTooLarge = errors.New("attestation: binary exceeds max file size")

const defaultMaxFileSize = 500 * 1024 * 1024 // 500 MiB

// ScannerConfig controls BinaryScanner behavior.
type ScannerConfig struct {
	ExtractManifest    bool
	AnalyzeDependencies bool
	CheckSignatures    bool
	MaxFileSize        int64
	Registry           *capability.Registry // defaults to capability.Global()
}

// DefaultScannerConfig returns the scanner's default configuration.
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		ExtractManifest:     true,
		AnalyzeDependencies: true,
		CheckSignatures:     true,
		MaxFileSize:         defaultMaxFileSize,
	}
}

// BinaryScanner scans a built binary and produces an AttestationReport.
type BinaryScanner struct {
	config ScannerConfig
}

// NewBinaryScanner returns a scanner with default configuration.
func NewBinaryScanner() *BinaryScanner { return &BinaryScanner{config: DefaultScannerConfig()} }

// NewBinaryScannerWithConfig returns a scanner using the given config.
func NewBinaryScannerWithConfig(cfg ScannerConfig) *BinaryScanner { return &BinaryScanner{config: cfg} }

func (s *BinaryScanner) registry() *capability.Registry {
	if s.config.Registry != nil {
		return s.config.Registry
	}
	return capability.Global()
}

// Scan reads binaryPath, hashes it, and produces a report. No permission
// manifest is attached unless the binary carries an embedded one (which
// this implementation never finds, matching the location-defined embedded
// format original_source leaves unspecified) — callers with an external
// manifest should use ScanWithManifest instead.
func (s *BinaryScanner) Scan(binaryPath string) (*Report, error) {
	return s.scan(binaryPath, nil)
}

// ScanWithManifest scans binaryPath and populates the report's permission,
// network, and privacy summaries from manifest.
func (s *BinaryScanner) ScanWithManifest(binaryPath string, manifest *Manifest) (*Report, error) {
	return s.scan(binaryPath, manifest)
}

func (s *BinaryScanner) scan(binaryPath string, manifest *Manifest) (*Report, error) {
	log := logging.Get(logging.CategoryAttestation)

	info, err := os.Stat(binaryPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, binaryPath)
	}
	if err != nil {
		return nil, err
	}

	maxSize := s.config.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrBinaryTooLarge, info.Size(), maxSize)
	}

	sum, err := hashFile(binaryPath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(binaryPath)
	report := NewReport("Unknown", "0.0.0")
	report.Binary = BinaryInfo{
		Filename:  filename,
		SizeBytes: info.Size(),
		SHA256:    sum,
		Target:    detectTarget(filename),
	}

	if s.config.CheckSignatures {
		report.Signature = unimplementedSignature()
	}

	if manifest != nil {
		s.populateFromManifest(report, manifest)
	}

	s.runChecks(report)
	s.assignBadges(report)
	report.Finalize()

	log.Debugw("scanned binary", "path", binaryPath, "sha256", sum, "status", report.Status)
	return report, nil
}

// hashFile returns the lowercase hex SHA-256 of path's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// detectTarget infers a target platform triple from filename suffix
// heuristics: .exe -> Windows, darwin/.app -> macOS, linux -> Linux,
// else unknown.
func detectTarget(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".exe"):
		return "x86_64-pc-windows-msvc"
	case strings.HasSuffix(lower, ".app") || strings.Contains(lower, "darwin"):
		return "aarch64-apple-darwin"
	case strings.Contains(lower, "linux"):
		return "x86_64-unknown-linux-gnu"
	default:
		return "unknown"
	}
}

func (s *BinaryScanner) populateFromManifest(report *Report, manifest *Manifest) {
	reg := s.registry()
	all := manifest.AllCapabilities()
	byCategory := manifest.CapabilitiesByCategory(reg)

	byCategoryStrings := make(map[string][]string, len(byCategory))
	for cat, caps := range byCategory {
		names := make([]string, 0, len(caps))
		for _, c := range caps {
			names = append(names, string(c))
		}
		byCategoryStrings[string(cat)] = names
	}

	var highRisk []string
	for _, c := range all {
		if meta, ok := reg.Get(c); ok && meta.Risk >= capability.RiskHigh {
			highRisk = append(highRisk, string(c))
		}
	}

	maxRisk := manifest.MaxRiskLevel(reg)
	report.Permissions = PermissionsSummary{
		TotalCapabilities:    len(all),
		ByCategory:           byCategoryStrings,
		MaxRiskLevel:         maxRisk,
		MaxRiskLevelName:     maxRisk.String(),
		HighRiskCapabilities: highRisk,
		AllHaveReasons:       manifest.AllHaveReasons(),
	}

	report.Network.UsesNetwork = manifest.AllowsNetwork()
	if manifest.Network != nil {
		enforced := manifest.HasNetworkAllowlist()
		status := "not_enforced"
		if enforced {
			status = "enforced"
		} else if !manifest.AllowsNetwork() {
			status = "unknown"
		}
		report.Network = NetworkSummary{
			UsesNetwork:         manifest.AllowsNetwork(),
			AllowlistEnforced:   enforced,
			EnforcementStatus:   status,
			AllowedDomains:      append([]string(nil), manifest.Network.Allow...),
			BlocksPrivateRanges: manifest.Network.DenyPrivateRanges,
			RequiresHTTPS:       manifest.Network.RequireHTTPS,
		}
	} else if manifest.AllowsNetwork() {
		report.Network.EnforcementStatus = "unknown"
	}

	if manifest.Privacy != nil {
		report.Privacy = PrivacySummary{
			AutoCrashReporting:       manifest.Privacy.AutoCrashReporting,
			AnalyticsEnabled:         manifest.Privacy.AnalyticsEnabled,
			ManualExportAllowed:      manifest.Privacy.ManualExportAllowed,
			TelemetryRequiresConsent: manifest.Privacy.TelemetryRequiresConsent,
			DataRetention:            retentionLabel(manifest.Privacy.DataRetentionDays),
			PrivacyScore:             calculatePrivacyScore(manifest.Privacy),
		}
	}
}

func retentionLabel(days int) string {
	if days <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d days", days)
}

// calculatePrivacyScore starts at 100 and deducts for each privacy-eroding
// setting, saturating at 0.
func calculatePrivacyScore(p *PrivacyPolicy) int {
	score := 100
	if p.AutoCrashReporting {
		score -= 20
	}
	if p.AnalyticsEnabled {
		score -= 30
	}
	if !p.TelemetryRequiresConsent {
		score -= 20
	}
	if p.DataRetentionDays > 30 {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (s *BinaryScanner) runChecks(report *Report) {
	report.AddCheck(Check{
		Name:        "manifest_present",
		Description: "Application has a permission manifest",
		Passed:      report.Permissions.TotalCapabilities > 0,
		Severity:    SeverityWarning,
	})

	if report.Network.UsesNetwork {
		var details *string
		if report.Network.AllowlistEnforced {
			d := "Domains: " + strings.Join(report.Network.AllowedDomains, ", ")
			details = &d
		} else {
			d := "Network domains unknown (policy not enforced)"
			details = &d
		}
		report.AddCheck(Check{
			Name:        "network_policy",
			Description: "Network access has allowlist policy",
			Passed:      report.Network.AllowlistEnforced,
			Details:     details,
			Severity:    SeverityWarning,
		})
	}

	if len(report.Permissions.HighRiskCapabilities) > 0 {
		d := fmt.Sprintf("%d high-risk capabilities", len(report.Permissions.HighRiskCapabilities))
		report.AddCheck(Check{
			Name:        "high_risk_documented",
			Description: "High-risk permissions have documented reasons",
			Passed:      report.Permissions.AllHaveReasons,
			Details:     &d,
			Severity:    SeverityWarning,
		})
	}

	report.AddCheck(Check{
		Name:        "code_signature",
		Description: "Binary is signed with valid signature",
		Passed:      report.Signature.IsValid,
		Details:     report.Signature.Error,
		Severity:    SeverityInfo,
	})

	scoreDetail := fmt.Sprintf("Score: %d/100", report.Privacy.PrivacyScore)
	report.AddCheck(Check{
		Name:        "privacy_score",
		Description: "Privacy score meets threshold",
		Passed:      report.Privacy.PrivacyScore >= 70,
		Details:     &scoreDetail,
		Severity:    SeverityInfo,
	})
}

func (s *BinaryScanner) assignBadges(report *Report) {
	for _, b := range deriveBadges(report) {
		report.AddBadge(b)
	}
}
