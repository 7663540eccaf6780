package attestation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	summaryLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryPassStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summaryFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Summary renders a human-readable, colorized plain-text report, the
// `oxide attest` default output: app identity, status, trust level,
// declared permissions, network and privacy posture, and badges.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", summaryHeaderStyle.Render(fmt.Sprintf("Attestation Report: %s v%s", r.App.Name, r.App.Version)))
	fmt.Fprintf(&b, "%s %s\n", summaryLabelStyle.Render("Binary:"), fmt.Sprintf("%s (%s, %s)", r.Binary.Filename, humanize.Bytes(uint64(r.Binary.SizeBytes)), r.Binary.Target))
	fmt.Fprintf(&b, "%s %s\n", summaryLabelStyle.Render("Status:"), statusStyle(r.Status).Render(r.Status.String()))
	fmt.Fprintf(&b, "%s %s\n\n", summaryLabelStyle.Render("Trust Level:"), r.TrustClassification.Level.String())

	b.WriteString(summaryLabelStyle.Render("Permissions:"))
	b.WriteString("\n")
	categories := make([]string, 0, len(r.Permissions.ByCategory))
	for cat := range r.Permissions.ByCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		for _, cap := range r.Permissions.ByCategory[cat] {
			fmt.Fprintf(&b, "  - %s: %s\n", cat, cap)
		}
	}
	b.WriteString("\n")

	b.WriteString(summaryLabelStyle.Render("Network:"))
	b.WriteString("\n")
	if r.Network.AllowlistEnforced {
		fmt.Fprintf(&b, "  Allowlist enforced: %s\n", strings.Join(r.Network.AllowedDomains, ", "))
	} else {
		b.WriteString("  Domains: unknown (policy not enforced)\n")
	}
	b.WriteString("\n")

	b.WriteString(summaryLabelStyle.Render("Privacy:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Crash reporting: %s\n", boolLabel(r.Privacy.AutoCrashReporting, "auto", "disabled"))
	fmt.Fprintf(&b, "  Analytics: %s\n", boolLabel(r.Privacy.AnalyticsEnabled, "enabled", "disabled"))
	fmt.Fprintf(&b, "  Score: %d/100\n\n", r.Privacy.PrivacyScore)

	b.WriteString(summaryLabelStyle.Render("Checks:"))
	b.WriteString("\n")
	for _, c := range r.Checks {
		mark := summaryPassStyle.Render("[x]")
		if !c.Passed {
			mark = summaryFailStyle.Render("[ ]")
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, c.Description)
	}
	b.WriteString("\n")

	b.WriteString(summaryLabelStyle.Render("Badges:"))
	b.WriteString("\n")
	for _, badge := range r.Badges {
		mark := "[ ]"
		if badge.Earned {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "  %s %s (%s): %s\n", mark, badge.Name, badge.Tier, badge.Description)
	}

	return b.String()
}

func statusStyle(s Status) lipgloss.Style {
	if s == StatusPassed {
		return summaryPassStyle
	}
	if s == StatusFailed {
		return summaryFailStyle
	}
	return summaryLabelStyle
}

func boolLabel(v bool, whenTrue, whenFalse string) string {
	if v {
		return whenTrue
	}
	return whenFalse
}
