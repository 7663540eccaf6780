package capability

import "testing"

func TestDefaultPolicyBlocksAll(t *testing.T) {
	p := DefaultPolicy()
	if p.AllowWebView || p.AllowJSRuntime || p.AllowRemoteWebView || p.AllowJSEval {
		t.Error("default policy should disable all compatibility features")
	}
}

func TestCheckFeatureWebView(t *testing.T) {
	p := DefaultPolicy()
	v := p.CheckFeature(FeatureWebView)
	if len(v) != 1 || v[0].Feature != "webview" {
		t.Errorf("expected single webview violation, got %v", v)
	}
}

func TestAllowedPolicyNoViolation(t *testing.T) {
	p := DefaultPolicy()
	p.AllowWebView = true
	if v := p.CheckFeature(FeatureWebView); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
}

func TestOriginAllowed(t *testing.T) {
	p := DefaultPolicy()
	p.AllowRemoteWebView = true
	p.AllowedOrigins = []string{"example.com", "*.trusted.com"}

	cases := map[string]bool{
		"example.com":       true,
		"sub.trusted.com":   true,
		"trusted.com":       true,
		"evil.com":          false,
		"nottrusted.com":    false,
		"x.nottrusted.com":  false,
	}
	for origin, want := range cases {
		if got := p.IsOriginAllowed(origin); got != want {
			t.Errorf("IsOriginAllowed(%q) = %v, want %v", origin, got, want)
		}
	}
}

func TestWildcardOrigin(t *testing.T) {
	p := DefaultPolicy()
	p.AllowRemoteWebView = true
	p.AllowedOrigins = []string{"*"}

	if !p.IsOriginAllowed("any.domain.com") {
		t.Error("expected wildcard to allow any origin")
	}
}

func TestOriginNotAllowedWithoutRemoteWebView(t *testing.T) {
	p := DefaultPolicy()
	p.AllowedOrigins = []string{"*"}
	if p.IsOriginAllowed("example.com") {
		t.Error("origin should be denied when remote webview is disabled")
	}
}

func TestPolicyValidation(t *testing.T) {
	p := DefaultPolicy()
	p.AllowRemoteWebView = true

	if v := p.Validate(); len(v) == 0 {
		t.Error("expected a violation for remote webview with no origins")
	}
}

func TestEnforcer(t *testing.T) {
	p := DefaultPolicy()
	e := NewEnforcer(p, true)

	if e.Enforce(FeatureWebView) {
		t.Error("expected webview to be denied")
	}
	if !e.HasErrorViolations() {
		t.Error("expected an error violation")
	}
	if !e.ShouldFail() {
		t.Error("expected release build with error violation to fail")
	}
}

func TestEnforcerDebugOnlyFailsOnCritical(t *testing.T) {
	p := DefaultPolicy()
	e := NewEnforcer(p, false)

	e.Enforce(FeatureWebView) // Error severity, but this is a debug build
	if e.ShouldFail() {
		t.Error("debug build should not fail on an Error violation")
	}

	e.Enforce(FeatureJSEval) // Critical severity
	if !e.ShouldFail() {
		t.Error("debug build should fail on a Critical violation")
	}
}

func TestEnforcerStrictModeFailsOnWarning(t *testing.T) {
	p := DefaultPolicy()
	p.StrictMode = true
	e := NewEnforcer(p, false)

	e.Enforce(FeatureNPMBundling) // Warning severity
	if !e.ShouldFail() {
		t.Error("strict mode should fail on any violation, including Warning")
	}
}
