// Package version implements SemVer 2.0.0 parsing, ordering, and the
// caret/tilde constraint solver used to resolve plugin and dependency
// version requirements.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed semantic version: major.minor.patch[-pre][+build].
// Build metadata is preserved for Display but ignored by ordering and
// equality, per SemVer 2.0.0.
type Version struct {
	Major, Minor, Patch uint64
	Pre                 PreRelease
	Build               string
}

// New constructs a stable version with no pre-release or build metadata.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses a version string. A leading "v" is stripped. Build metadata
// (after the first "+") and pre-release (after the first "-" in what
// remains) are split off before major.minor[.patch] is parsed; patch
// defaults to 0 when absent.
func Parse(s string) (Version, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")

	var build string
	if i := strings.IndexByte(s, '+'); i >= 0 {
		build = s[i+1:]
		s = s[:i]
	}

	var preStr string
	hasPre := false
	if i := strings.IndexByte(s, '-'); i >= 0 {
		preStr = s[i+1:]
		hasPre = true
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("version %q: must have at least major.minor: %w", orig, ErrInvalidFormat)
	}

	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("version %q: invalid major version %q: %w", orig, parts[0], ErrInvalidFormat)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("version %q: invalid minor version %q: %w", orig, parts[1], ErrInvalidFormat)
	}

	var patch uint64
	if len(parts) > 2 {
		patch, err = strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("version %q: invalid patch version %q: %w", orig, parts[2], ErrInvalidFormat)
		}
	}

	var pre PreRelease
	if hasPre {
		pre, err = parsePreRelease(preStr)
		if err != nil {
			return Version{}, fmt.Errorf("version %q: %w", orig, err)
		}
	}

	return Version{Major: major, Minor: minor, Patch: patch, Pre: pre, Build: build}, nil
}

// MustParse parses s and panics on error. Intended for tests and
// statically-known version literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version in canonical form; Parse(v.String()) always
// round-trips to an equal Version.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if !v.Pre.IsEmpty() {
		b.WriteByte('-')
		b.WriteString(v.Pre.String())
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// IsStable reports whether v has no pre-release identifier.
func (v Version) IsStable() bool { return v.Pre.IsEmpty() }

// IsPrerelease reports whether v has a pre-release identifier.
func (v Version) IsPrerelease() bool { return !v.Pre.IsEmpty() }

// IsInitialDevelopment reports whether v is a 0.x.x version.
func (v Version) IsInitialDevelopment() bool { return v.Major == 0 }

// NextMajor returns the next major version (1.2.3 -> 2.0.0).
func (v Version) NextMajor() Version { return New(v.Major+1, 0, 0) }

// NextMinor returns the next minor version (1.2.3 -> 1.3.0).
func (v Version) NextMinor() Version { return New(v.Major, v.Minor+1, 0) }

// NextPatch returns the next patch version (1.2.3 -> 1.2.4).
func (v Version) NextPatch() Version { return New(v.Major, v.Minor, v.Patch+1) }

// BaseVersion strips pre-release and build metadata.
func (v Version) BaseVersion() Version { return New(v.Major, v.Minor, v.Patch) }

// IsCompatibleWith reports semver compatibility: major versions must match
// for stable releases; for 0.x.x, minor versions must also match.
func (v Version) IsCompatibleWith(other Version) bool {
	if v.Major == 0 && other.Major == 0 {
		return v.Minor == other.Minor
	}
	return v.Major == other.Major
}

// Equal reports equality ignoring build metadata.
func (v Version) Equal(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch && v.Pre.Equal(other.Pre)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other. Build metadata is ignored.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpUint(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpUint(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return cmpUint(v.Patch, other.Patch)
	}
	switch {
	case v.Pre.IsEmpty() && other.Pre.IsEmpty():
		return 0
	case v.Pre.IsEmpty():
		return 1 // 1.0.0 > 1.0.0-alpha
	case other.Pre.IsEmpty():
		return -1 // 1.0.0-alpha < 1.0.0
	default:
		return v.Pre.Compare(other.Pre)
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bump describes a version-bump kind applied by Version.Bump.
type Bump int

const (
	BumpMajor Bump = iota
	BumpMinor
	BumpPatch
)

// Bump returns the version produced by applying b to v.
func (v Version) Bump(b Bump) Version {
	switch b {
	case BumpMajor:
		return v.NextMajor()
	case BumpMinor:
		return v.NextMinor()
	default:
		return v.NextPatch()
	}
}

// BumpTypeTo reports the smallest bump kind that turns v into to, or
// (_, false) if to is not an upgrade from v.
func (v Version) BumpTypeTo(to Version) (Bump, bool) {
	switch {
	case to.Major > v.Major:
		return BumpMajor, true
	case to.Major == v.Major && to.Minor > v.Minor:
		return BumpMinor, true
	case to.Major == v.Major && to.Minor == v.Minor && to.Patch > v.Patch:
		return BumpPatch, true
	default:
		return 0, false
	}
}

// PreRelease is an ordered, dot-separated list of pre-release identifiers.
type PreRelease struct {
	idents []preReleaseIdentifier
}

type preReleaseIdentifier struct {
	numeric bool
	num     uint64
	text    string
}

func parsePreRelease(s string) (PreRelease, error) {
	if s == "" {
		return PreRelease{}, fmt.Errorf("empty pre-release identifier: %w", ErrInvalidFormat)
	}
	segs := strings.Split(s, ".")
	idents := make([]preReleaseIdentifier, len(segs))
	for i, seg := range segs {
		ident, err := parsePreReleaseIdentifier(seg)
		if err != nil {
			return PreRelease{}, err
		}
		idents[i] = ident
	}
	return PreRelease{idents: idents}, nil
}

func parsePreReleaseIdentifier(s string) (preReleaseIdentifier, error) {
	if s == "" {
		return preReleaseIdentifier{}, fmt.Errorf("empty pre-release identifier: %w", ErrInvalidFormat)
	}
	allDigits := true
	for _, c := range s {
		if c < '0' || c > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		if len(s) > 1 && s[0] == '0' {
			return preReleaseIdentifier{}, fmt.Errorf("numeric pre-release identifier %q has a leading zero: %w", s, ErrInvalidFormat)
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return preReleaseIdentifier{}, fmt.Errorf("invalid numeric pre-release identifier %q: %w", s, ErrInvalidFormat)
		}
		return preReleaseIdentifier{numeric: true, num: n}, nil
	}
	for _, c := range s {
		if !isAlphanumASCII(c) && c != '-' {
			return preReleaseIdentifier{}, fmt.Errorf("invalid characters in pre-release identifier %q: %w", s, ErrInvalidFormat)
		}
	}
	return preReleaseIdentifier{text: s}, nil
}

func isAlphanumASCII(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsEmpty reports whether p has no identifiers.
func (p PreRelease) IsEmpty() bool { return len(p.idents) == 0 }

// String renders p as dot-separated identifiers.
func (p PreRelease) String() string {
	parts := make([]string, len(p.idents))
	for i, id := range p.idents {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// Equal reports identifier-wise equality.
func (p PreRelease) Equal(other PreRelease) bool {
	return p.Compare(other) == 0 && len(p.idents) == len(other.idents)
}

// Compare orders pre-release identifier lists per SemVer 2.0.0 §11:
// identifiers compare pairwise (numeric identifiers have lower precedence
// than alphanumeric ones when compared against each other), and a proper
// prefix sorts before its extension.
func (p PreRelease) Compare(other PreRelease) int {
	n := len(p.idents)
	if len(other.idents) < n {
		n = len(other.idents)
	}
	for i := 0; i < n; i++ {
		if c := p.idents[i].Compare(other.idents[i]); c != 0 {
			return c
		}
	}
	return cmpUint(uint64(len(p.idents)), uint64(len(other.idents)))
}

func (id preReleaseIdentifier) String() string {
	if id.numeric {
		return strconv.FormatUint(id.num, 10)
	}
	return id.text
}

func (id preReleaseIdentifier) Compare(other preReleaseIdentifier) int {
	switch {
	case id.numeric && other.numeric:
		return cmpUint(id.num, other.num)
	case !id.numeric && !other.numeric:
		return strings.Compare(id.text, other.text)
	case id.numeric:
		return -1 // numeric has lower precedence than alphanumeric
	default:
		return 1
	}
}
