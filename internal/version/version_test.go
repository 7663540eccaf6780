package version

import (
	"errors"
	"testing"
)

func TestParseSimple(t *testing.T) {
	v, err := Parse("1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Major != 1 || v.Minor != 2 || v.Patch != 3 {
		t.Errorf("got %+v", v)
	}
	if !v.Pre.IsEmpty() || v.Build != "" {
		t.Errorf("expected no pre/build, got %+v", v)
	}
}

func TestParseVPrefix(t *testing.T) {
	v, err := Parse("v1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Major != 1 {
		t.Errorf("got %+v", v)
	}
}

func TestParsePatchDefaultsToZero(t *testing.T) {
	v, err := Parse("1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Patch != 0 {
		t.Errorf("expected patch 0, got %d", v.Patch)
	}
}

func TestParsePrerelease(t *testing.T) {
	v, err := Parse("1.0.0-alpha.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Pre.IsEmpty() || v.Pre.String() != "alpha.1" {
		t.Errorf("got pre=%q", v.Pre.String())
	}
}

func TestParseBuildMetadata(t *testing.T) {
	v, err := Parse("1.0.0+build.123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Build != "build.123" {
		t.Errorf("got build=%q", v.Build)
	}
}

func TestParseFull(t *testing.T) {
	v, err := Parse("1.0.0-beta.2+build.456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Pre.String() != "beta.2" || v.Build != "build.456" {
		t.Errorf("got %+v", v)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"1.2.3", "1.2.3-alpha.1", "1.2.3-alpha.1+build.123", "0.0.1"} {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		v2, err := Parse(v.String())
		if err != nil {
			t.Fatalf("re-parse %q: %v", v.String(), err)
		}
		if !v.Equal(v2) {
			t.Errorf("round trip mismatch: %v != %v", v, v2)
		}
	}
}

func TestParseInvalidFormat(t *testing.T) {
	for _, s := range []string{"1", "a.b.c", "1.2.x", ""} {
		_, err := Parse(s)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q): expected ErrInvalidFormat, got %v", s, err)
		}
	}
}

func TestParsePrereleaseLeadingZero(t *testing.T) {
	_, err := Parse("1.0.0-01")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for leading-zero numeric identifier, got %v", err)
	}
}

func TestOrderingBasic(t *testing.T) {
	if !MustParse("1.0.0").Less(MustParse("2.0.0")) {
		t.Error("1.0.0 should be less than 2.0.0")
	}
	if !MustParse("1.0.0").Less(MustParse("1.1.0")) {
		t.Error("1.0.0 should be less than 1.1.0")
	}
	if !MustParse("1.0.0").Less(MustParse("1.0.1")) {
		t.Error("1.0.0 should be less than 1.0.1")
	}
}

func TestOrderingPrerelease(t *testing.T) {
	if !MustParse("1.0.0-alpha").Less(MustParse("1.0.0")) {
		t.Error("1.0.0-alpha should be less than 1.0.0")
	}
	if !MustParse("1.0.0-alpha").Less(MustParse("1.0.0-beta")) {
		t.Error("1.0.0-alpha should be less than 1.0.0-beta")
	}
	if !MustParse("1.0.0-alpha.1").Less(MustParse("1.0.0-alpha.2")) {
		t.Error("1.0.0-alpha.1 should be less than 1.0.0-alpha.2")
	}
	if !MustParse("1.0.0-alpha").Less(MustParse("1.0.0-alpha.1")) {
		t.Error("shorter prefix should be less than its extension")
	}
}

func TestOrderingNumericVsAlpha(t *testing.T) {
	if !MustParse("1.0.0-1").Less(MustParse("1.0.0-alpha")) {
		t.Error("numeric identifiers should have lower precedence than alphanumeric")
	}
}

func TestEqualityIgnoresBuild(t *testing.T) {
	v1 := MustParse("1.0.0+build1")
	v2 := MustParse("1.0.0+build2")
	if !v1.Equal(v2) {
		t.Error("build metadata should be ignored for equality")
	}
}

func TestDisplay(t *testing.T) {
	v := MustParse("1.2.3-alpha.1+build.123")
	if v.String() != "1.2.3-alpha.1+build.123" {
		t.Errorf("got %q", v.String())
	}
}

func TestBump(t *testing.T) {
	v := New(1, 2, 3)
	if got := v.Bump(BumpMajor); !got.Equal(New(2, 0, 0)) {
		t.Errorf("major bump: got %v", got)
	}
	if got := v.Bump(BumpMinor); !got.Equal(New(1, 3, 0)) {
		t.Errorf("minor bump: got %v", got)
	}
	if got := v.Bump(BumpPatch); !got.Equal(New(1, 2, 4)) {
		t.Errorf("patch bump: got %v", got)
	}
}

func TestIsCompatible(t *testing.T) {
	v1 := MustParse("1.0.0")
	v2 := MustParse("1.5.0")
	v3 := MustParse("2.0.0")
	if !v1.IsCompatibleWith(v2) {
		t.Error("1.0.0 and 1.5.0 should be compatible")
	}
	if v1.IsCompatibleWith(v3) {
		t.Error("1.0.0 and 2.0.0 should not be compatible")
	}
}

func TestInitialDevelopmentCompat(t *testing.T) {
	v1 := MustParse("0.1.0")
	v2 := MustParse("0.1.5")
	v3 := MustParse("0.2.0")
	if !v1.IsCompatibleWith(v2) {
		t.Error("0.1.0 and 0.1.5 should be compatible")
	}
	if v1.IsCompatibleWith(v3) {
		t.Error("0.1.0 and 0.2.0 should not be compatible")
	}
}
