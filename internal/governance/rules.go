package governance

import (
	"context"
	"strings"

	"github.com/oxidekit/core/internal/mangle"
)

// RuleType classifies how strictly a governance rule constrains
// override.
type RuleType string

const (
	RuleTypeLock     RuleType = "lock"
	RuleTypeRestrict RuleType = "restrict"
	RuleTypeRequire  RuleType = "require"
	RuleTypeValidate RuleType = "validate"
)

// RuleAction is the action a governance rule takes once it matches.
type RuleAction string

const (
	ActionAllow           RuleAction = "allow"
	ActionDeny            RuleAction = "deny"
	ActionWarn            RuleAction = "warn"
	ActionRequireApproval RuleAction = "require_approval"
)

// ConditionType names the kind of runtime fact a RuleCondition checks.
type ConditionType string

const (
	ConditionEnvironment ConditionType = "environment"
	ConditionRole        ConditionType = "role"
	ConditionDateTime    ConditionType = "datetime"
	ConditionFeatureFlag ConditionType = "feature_flag"
	ConditionCustom      ConditionType = "custom"
)

// RuleCondition narrows when a Rule applies: it only counts toward a
// match once the caller-supplied context contains Type=Value.
type RuleCondition struct {
	Type  ConditionType
	Value string
}

// Rule is a wildcard governance rule over token paths.
type Rule struct {
	Name        string
	Description string
	Patterns    []string
	Type        RuleType
	Action      RuleAction
	Conditions  []RuleCondition
}

// LockRule builds a Lock-type rule over patterns: Lock rules never
// admit an override.
func LockRule(name string, patterns []string) Rule {
	return Rule{Name: name, Patterns: patterns, Type: RuleTypeLock, Action: ActionDeny}
}

// RestrictRule builds a Restrict-type rule over patterns, warning but
// admitting overrides unless its action is deny.
func RestrictRule(name string, patterns []string) Rule {
	return Rule{Name: name, Patterns: patterns, Type: RuleTypeRestrict, Action: ActionWarn}
}

// Matches reports whether any of the rule's patterns match path.
func (r Rule) Matches(path string) bool {
	for _, pattern := range r.Patterns {
		if patternMatches(pattern, path) {
			return true
		}
	}
	return false
}

// AdmitsOverride reports whether this rule, taken alone, would allow
// an override of a path it matches. Lock-type rules never admit;
// Restrict-type rules admit unless their action is Deny.
func (r Rule) AdmitsOverride() bool {
	switch r.Type {
	case RuleTypeLock:
		return false
	case RuleTypeRestrict:
		return r.Action != ActionDeny
	default:
		return true
	}
}

// patternMatches implements the wildcard grammar spec.md names: "*"
// alone matches everything, a leading or trailing "*" is a suffix or
// prefix match, a single embedded "*" splits the pattern into a
// required prefix and suffix, and anything else is an exact match.
func patternMatches(pattern, path string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") && !strings.HasPrefix(pattern, "*") {
		return strings.HasPrefix(path, pattern[:len(pattern)-1])
	}
	if strings.HasPrefix(pattern, "*") && !strings.HasSuffix(pattern, "*") {
		return strings.HasSuffix(path, pattern[1:])
	}
	if strings.Contains(pattern, "*") {
		parts := strings.SplitN(pattern, "*", 2)
		if len(parts) == 2 {
			return strings.HasPrefix(path, parts[0]) && strings.HasSuffix(path, parts[1])
		}
	}
	return pattern == path
}

// schema is the Mangle program backing RuleEngine.Denies. Pattern
// matching and per-rule admits-override logic are computed in Go
// (patternMatches / Rule.AdmitsOverride) and asserted as facts; the
// engine's job is the part that is genuinely relational: joining a
// rule's conditions against the caller-supplied context so a rule with
// conditions becomes active when at least one of them matches a context
// fact (conditions are alternatives, not all required).
const schema = `
Decl rule_pattern_match(name: string).
Decl rule_denies(name: string).
Decl rule_unconditional(name: string).
Decl rule_condition(name: string, cond_type: string, cond_value: string).
Decl context_fact(cond_type: string, cond_value: string).
Decl rule_active(name: string).
Decl path_denied(flag: string).

rule_active(Name) :- rule_pattern_match(Name), rule_unconditional(Name).
rule_active(Name) :-
    rule_pattern_match(Name),
    rule_condition(Name, Type, Value),
    context_fact(Type, Value).

path_denied("true") :- rule_active(Name), rule_denies(Name).
`

// RuleEngine evaluates governance rules against a token path and a
// runtime context (environment, role, feature flags, ...) using a
// Mangle Datalog program to join rule conditions against context
// facts.
type RuleEngine struct {
	engine *mangle.Engine
}

// NewRuleEngine constructs a RuleEngine, loading its fixed schema.
func NewRuleEngine() *RuleEngine {
	e, err := mangle.NewEngine(mangle.DefaultConfig())
	if err != nil {
		panic("governance: failed to construct rule engine: " + err.Error())
	}
	if err := e.LoadSchemaString(schema); err != nil {
		// The schema above is a fixed literal validated by hand; a
		// failure here means the engine's grammar changed underneath us.
		panic("governance: invalid rule schema: " + err.Error())
	}
	return &RuleEngine{engine: e}
}

// Denies reports whether any active rule matching path denies
// override, given the runtime context.
func (re *RuleEngine) Denies(path string, rules []Rule, ctxFacts map[string]string) bool {
	if len(rules) == 0 {
		return false
	}
	re.engine.Clear()

	for _, r := range rules {
		if !r.Matches(path) {
			continue
		}
		_ = re.engine.AddFact("rule_pattern_match", r.Name)
		if !r.AdmitsOverride() {
			_ = re.engine.AddFact("rule_denies", r.Name)
		}
		if len(r.Conditions) == 0 {
			_ = re.engine.AddFact("rule_unconditional", r.Name)
			continue
		}
		for _, c := range r.Conditions {
			_ = re.engine.AddFact("rule_condition", r.Name, string(c.Type), c.Value)
		}
	}
	for condType, value := range ctxFacts {
		_ = re.engine.AddFact("context_fact", condType, value)
	}

	result, err := re.engine.Query(context.Background(), `path_denied(X)?`)
	if err != nil {
		return false
	}
	return len(result.Bindings) > 0
}
