// Package brandpack defines the on-disk brand identity document that
// seeds token governance and the base inheritance layer.
package brandpack

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Color is a single brand color definition. Locked colors translate
// into a Brand-level governance lock on their token path.
type Color struct {
	Value    string `yaml:"value"`
	Light    string `yaml:"light,omitempty"`
	Dark     string `yaml:"dark,omitempty"`
	Contrast string `yaml:"contrast,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Usage    string `yaml:"usage,omitempty"`
	Locked   bool   `yaml:"locked"`
}

// Colors is the `[colors]` section of a brand pack.
type Colors struct {
	Primary    Color            `yaml:"primary"`
	Secondary  Color            `yaml:"secondary"`
	Accent     Color            `yaml:"accent"`
	Background *Color           `yaml:"background,omitempty"`
	Foreground *Color           `yaml:"foreground,omitempty"`
	Custom     map[string]Color `yaml:"custom,omitempty"`
}

// FontFamily names a font, its fallbacks, and whether it is locked.
type FontFamily struct {
	Name      string `yaml:"name"`
	Fallbacks []string `yaml:"fallbacks,omitempty"`
	Locked    bool   `yaml:"locked"`
}

// Typography is the `[typography]` section of a brand pack.
type Typography struct {
	PrimaryFamily FontFamily `yaml:"primary_family"`
	MonoFamily    *FontFamily `yaml:"mono_family,omitempty"`
	BaseSize      float64     `yaml:"base_size"`
}

// Tokens is the `[tokens]` section: free-form supplemental token
// values not otherwise modeled by Colors/Typography.
type Tokens struct {
	Spacing map[string]float64 `yaml:"spacing,omitempty"`
	Radius  map[string]float64 `yaml:"radius,omitempty"`
	Shadows map[string]string  `yaml:"shadows,omitempty"`
}

// RuleSpec mirrors governance.Rule in a YAML-friendly shape for the
// `[governance]` section.
type RuleSpec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Patterns    []string `yaml:"patterns"`
	Type        string   `yaml:"type"`
	Action      string   `yaml:"action"`
}

// Governance is the `[governance]` section of a brand pack.
type Governance struct {
	StrictMode bool       `yaml:"strict_mode"`
	Rules      []RuleSpec `yaml:"rules,omitempty"`
}

// Identity is the `[identity]` section of a brand pack.
type Identity struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name,omitempty"`
	Tagline     string `yaml:"tagline,omitempty"`
}

// BrandPack is a brand's complete token identity: colors, typography,
// supplemental tokens, and the governance rules that protect them.
type BrandPack struct {
	Identity   Identity   `yaml:"identity"`
	Colors     Colors     `yaml:"colors"`
	Typography Typography `yaml:"typography"`
	Tokens     Tokens     `yaml:"tokens,omitempty"`
	Governance Governance `yaml:"governance,omitempty"`
}

// New returns a brand pack seeded with the same defaults as a minimal
// OxideKit brand: a blue/gray/amber palette on Inter/JetBrains Mono.
func New(name string) BrandPack {
	return BrandPack{
		Identity: Identity{Name: name},
		Colors: Colors{
			Primary:   Color{Value: "#3B82F6"},
			Secondary: Color{Value: "#6B7280"},
			Accent:    Color{Value: "#F59E0B"},
		},
		Typography: Typography{
			PrimaryFamily: FontFamily{Name: "Inter", Fallbacks: []string{"system-ui", "sans-serif"}},
			BaseSize:      16,
		},
	}
}

// Load reads and parses a brand pack from a YAML file.
func Load(path string) (BrandPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BrandPack{}, fmt.Errorf("read brand pack %s: %w", path, err)
	}
	var pack BrandPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return BrandPack{}, fmt.Errorf("parse brand pack %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return BrandPack{}, err
	}
	return pack, nil
}

// Validate checks the minimal required fields of a brand pack.
func (b BrandPack) Validate() error {
	if b.Identity.Name == "" {
		return fmt.Errorf("brand pack: identity.name is required")
	}
	if b.Colors.Primary.Value == "" {
		return fmt.Errorf("brand pack: colors.primary is required")
	}
	return nil
}

// Tokens flattens the brand pack's colors/typography/tokens sections
// into a dotted-path token map suitable as a Chain's Brand layer.
func (b BrandPack) TokenMap() map[string]any {
	tokens := map[string]any{
		"colors.primary":   b.Colors.Primary.Value,
		"colors.secondary": b.Colors.Secondary.Value,
		"colors.accent":    b.Colors.Accent.Value,
	}
	if b.Colors.Background != nil {
		tokens["colors.background"] = b.Colors.Background.Value
	}
	if b.Colors.Foreground != nil {
		tokens["colors.foreground"] = b.Colors.Foreground.Value
	}
	for name, color := range b.Colors.Custom {
		tokens["colors."+name] = color.Value
	}

	tokens["typography.primary_family"] = b.Typography.PrimaryFamily.Name
	if b.Typography.MonoFamily != nil {
		tokens["typography.mono_family"] = b.Typography.MonoFamily.Name
	}
	tokens["typography.base_size"] = b.Typography.BaseSize

	for name, value := range b.Tokens.Spacing {
		tokens["spacing."+name] = value
	}
	for name, value := range b.Tokens.Radius {
		tokens["radius."+name] = value
	}
	for name, value := range b.Tokens.Shadows {
		tokens["shadows."+name] = value
	}
	return tokens
}

// LockedPaths returns every token path this brand pack marks locked:
// the three base colors and typography primary family when flagged,
// plus any locked custom color.
func (b BrandPack) LockedPaths() []string {
	var paths []string
	if b.Colors.Primary.Locked {
		paths = append(paths, "colors.primary")
	}
	if b.Colors.Secondary.Locked {
		paths = append(paths, "colors.secondary")
	}
	if b.Colors.Accent.Locked {
		paths = append(paths, "colors.accent")
	}
	for name, color := range b.Colors.Custom {
		if color.Locked {
			paths = append(paths, "colors."+name)
		}
	}
	if b.Typography.PrimaryFamily.Locked {
		paths = append(paths, "typography.primary_family")
	}
	return paths
}
