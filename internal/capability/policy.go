package capability

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ViolationSeverity grades how serious a policy check failure is.
type ViolationSeverity int

const (
	SeverityWarning ViolationSeverity = iota
	SeverityError
	SeverityCritical
)

func (s ViolationSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Violation describes one policy check failure.
type Violation struct {
	Feature     string
	Message     string
	Severity    ViolationSeverity
	Suggestions []string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.Feature, v.Message)
}

// Feature identifies a compatibility surface a policy check can be run
// against.
type Feature int

const (
	FeatureWebView Feature = iota
	FeatureRemoteWebView
	FeatureJSRuntime
	FeatureJSEval
	FeatureNPMBundling
	FeatureDevtoolsInRelease
)

// Policy is the WebView/JS/devtools compatibility policy. All
// compatibility features are disabled by default; a project opts in
// explicitly via config.
type Policy struct {
	AllowWebView            bool     `yaml:"allow_webview"`
	AllowJSRuntime          bool     `yaml:"allow_js_runtime"`
	AllowNPMBundling        bool     `yaml:"allow_npm_bundling"`
	AllowRemoteWebView      bool     `yaml:"allow_remote_webview"`
	AllowedOrigins          []string `yaml:"allowed_origins"`
	AllowJSEval             bool     `yaml:"allow_js_eval"`
	JSMemoryLimitMB         uint32   `yaml:"js_memory_limit_mb"`
	JSTimeoutMS             uint32   `yaml:"js_timeout_ms"`
	AllowDevtoolsInRelease  bool     `yaml:"allow_devtools_in_release"`
	StrictMode              bool     `yaml:"strict_mode"`
	WebViewCSP              string   `yaml:"webview_csp"`
}

const defaultCSP = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'none'"

// DefaultPolicy returns a policy with every compatibility feature disabled
// and a strict default CSP.
func DefaultPolicy() Policy {
	return Policy{
		JSMemoryLimitMB: 64,
		JSTimeoutMS:     5000,
		WebViewCSP:      defaultCSP,
	}
}

// AllowAllPolicy returns a policy with every compatibility feature
// enabled. Intended only for local development.
func AllowAllPolicy() Policy {
	return Policy{
		AllowWebView:           true,
		AllowJSRuntime:         true,
		AllowNPMBundling:       true,
		AllowRemoteWebView:     true,
		AllowedOrigins:         []string{"*"},
		AllowJSEval:            true,
		JSMemoryLimitMB:        256,
		JSTimeoutMS:            30000,
		AllowDevtoolsInRelease: true,
	}
}

type policyConfigFile struct {
	Policy *Policy `yaml:"policy"`
}

// FromConfig loads a policy from the `policy:` section of a YAML
// configuration file, falling back to DefaultPolicy if that section is
// absent.
func FromConfig(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy config %s: %w", path, err)
	}
	var file policyConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Policy{}, fmt.Errorf("parse policy config %s: %w", path, err)
	}
	if file.Policy == nil {
		return DefaultPolicy(), nil
	}
	return *file.Policy, nil
}

// CheckFeature checks a single feature against the policy, returning any
// violation (empty slice when the feature is permitted).
func (p Policy) CheckFeature(feature Feature) []Violation {
	switch feature {
	case FeatureWebView:
		if !p.AllowWebView {
			return []Violation{{
				Feature:  "webview",
				Message:  "WebView embedding is not allowed by policy",
				Severity: SeverityError,
				Suggestions: []string{
					"Set allow_webview: true under policy in the config file",
					"Consider using native components instead",
				},
			}}
		}
	case FeatureRemoteWebView:
		if !p.AllowRemoteWebView {
			return []Violation{{
				Feature:  "remote_webview",
				Message:  "Remote content in WebView is not allowed",
				Severity: SeverityCritical,
				Suggestions: []string{
					"Set allow_remote_webview: true under policy in the config file",
					"Bundle web assets locally instead",
				},
			}}
		}
	case FeatureJSRuntime:
		if !p.AllowJSRuntime {
			return []Violation{{
				Feature:  "js_runtime",
				Message:  "JavaScript runtime is not allowed by policy",
				Severity: SeverityError,
				Suggestions: []string{
					"Set allow_js_runtime: true under policy in the config file",
					"Port the logic to the host language instead",
				},
			}}
		}
	case FeatureJSEval:
		if !p.AllowJSEval {
			return []Violation{{
				Feature:  "js_eval",
				Message:  "eval() is disabled in the JavaScript runtime",
				Severity: SeverityCritical,
				Suggestions: []string{
					"Set allow_js_eval: true under policy in the config file (DANGEROUS)",
					"Refactor the code to avoid eval()",
				},
			}}
		}
	case FeatureNPMBundling:
		if !p.AllowNPMBundling {
			return []Violation{{
				Feature:     "npm_bundling",
				Message:     "NPM bundling is not allowed by policy",
				Severity:    SeverityWarning,
				Suggestions: []string{"Set allow_npm_bundling: true under policy in the config file"},
			}}
		}
	case FeatureDevtoolsInRelease:
		if !p.AllowDevtoolsInRelease {
			return []Violation{{
				Feature:  "devtools",
				Message:  "Devtools are disabled in release builds",
				Severity: SeverityWarning,
				Suggestions: []string{
					"Use debug builds for development",
					"Set allow_devtools_in_release: true under policy",
				},
			}}
		}
	}
	return nil
}

// IsOriginAllowed reports whether origin is permitted as a remote WebView
// content source. Matching is: exact domain match, `*.suffix` pattern
// match where origin must end with ".suffix" or equal "suffix", or the
// literal "*" meaning any origin.
func (p Policy) IsOriginAllowed(origin string) bool {
	if !p.AllowRemoteWebView {
		return false
	}
	for _, allowed := range p.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if strings.HasPrefix(allowed, "*.") {
			suffix := allowed[2:]
			if origin == suffix || strings.HasSuffix(origin, "."+suffix) {
				return true
			}
			continue
		}
		if origin == allowed {
			return true
		}
	}
	return false
}

// EffectiveCSP returns the policy's CSP, falling back to the strict
// default if none is configured.
func (p Policy) EffectiveCSP() string {
	if p.WebViewCSP == "" {
		return defaultCSP
	}
	return p.WebViewCSP
}

// Validate checks the policy for internally inconsistent or risky
// combinations that CheckFeature alone would not surface.
func (p Policy) Validate() []Violation {
	var violations []Violation

	if p.AllowRemoteWebView && len(p.AllowedOrigins) == 0 {
		violations = append(violations, Violation{
			Feature:     "remote_webview",
			Message:     "Remote WebView allowed but no origins specified",
			Severity:    SeverityWarning,
			Suggestions: []string{"Add specific origins to allowed_origins"},
		})
	}
	for _, o := range p.AllowedOrigins {
		if o == "*" {
			violations = append(violations, Violation{
				Feature:     "remote_webview",
				Message:     "Wildcard origin (*) allows any remote content",
				Severity:    SeverityWarning,
				Suggestions: []string{"Specify exact origins instead of a wildcard"},
			})
			break
		}
	}
	if p.AllowJSEval {
		violations = append(violations, Violation{
			Feature:     "js_eval",
			Message:     "eval() is enabled which can execute arbitrary code",
			Severity:    SeverityWarning,
			Suggestions: []string{"Disable eval() if not strictly necessary"},
		})
	}
	if p.AllowWebView && p.WebViewCSP == "" {
		violations = append(violations, Violation{
			Feature:     "webview",
			Message:     "No Content Security Policy configured for WebView",
			Severity:    SeverityWarning,
			Suggestions: []string{"Set webview_csp to restrict script execution"},
		})
	}
	return violations
}

// Enforcer accumulates violations across a sequence of feature checks and
// decides whether the build should fail.
type Enforcer struct {
	policy     Policy
	isRelease  bool
	violations []Violation
}

// NewEnforcer creates an enforcer for policy, scoped to a release or debug
// build.
func NewEnforcer(policy Policy, isRelease bool) *Enforcer {
	return &Enforcer{policy: policy, isRelease: isRelease}
}

// Enforce runs CheckFeature for feature, records any violations, and
// reports whether the feature was permitted.
func (e *Enforcer) Enforce(feature Feature) bool {
	v := e.policy.CheckFeature(feature)
	allowed := len(v) == 0
	e.violations = append(e.violations, v...)
	return allowed
}

// Violations returns every violation recorded so far.
func (e *Enforcer) Violations() []Violation { return e.violations }

// HasCriticalViolations reports whether any recorded violation is Critical.
func (e *Enforcer) HasCriticalViolations() bool {
	for _, v := range e.violations {
		if v.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// HasErrorViolations reports whether any recorded violation is Error or
// worse.
func (e *Enforcer) HasErrorViolations() bool {
	for _, v := range e.violations {
		if v.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// ShouldFail decides build failure from the accumulated violations: in
// strict mode, any violation fails the build; in a release build, Error or
// Critical violations fail it; in a debug build, only Critical violations
// do.
func (e *Enforcer) ShouldFail() bool {
	if e.policy.StrictMode {
		return len(e.violations) > 0
	}
	if e.isRelease {
		return e.HasErrorViolations()
	}
	return e.HasCriticalViolations()
}
