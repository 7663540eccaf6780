package inheritance

import "github.com/oxidekit/core/internal/governance"

// OverrideContext batches a set of token overrides to apply at a
// single inheritance level.
type OverrideContext struct {
	Name      string
	Level     InheritanceLevel
	Overrides map[string]any
}

// NewThemeOverride starts a theme-level override context.
func NewThemeOverride(name string) OverrideContext {
	return OverrideContext{Name: name, Level: LevelTheme, Overrides: map[string]any{}}
}

// NewComponentOverride starts a component-level override context.
func NewComponentOverride(name string) OverrideContext {
	return OverrideContext{Name: name, Level: LevelComponent, Overrides: map[string]any{}}
}

// With adds a single override and returns the context for chaining.
func (c OverrideContext) With(path string, value any) OverrideContext {
	c.Overrides[path] = value
	return c
}

// Manager resolves token paths through a Chain, enforcing Governance
// and caching resolved values per path. ApplyContext drops the cached
// entries of the paths it overrides; other changes to the chain or
// governance are not seen until ClearCache is called.
type Manager struct {
	chain      *Chain
	governance *governance.Governance
	context    map[string]string
	cache      map[string]ResolvedToken
}

// NewManager builds a resolution manager over chain and gov.
func NewManager(chain *Chain, gov *governance.Governance) *Manager {
	return &Manager{chain: chain, governance: gov, cache: map[string]ResolvedToken{}}
}

// WithContext attaches runtime context facts (environment, role, ...)
// consulted by conditional governance rules.
func (m *Manager) WithContext(context map[string]string) *Manager {
	m.context = context
	return m
}

// Chain exposes the underlying layer chain, e.g. for debugging.
func (m *Manager) Chain() *Chain { return m.chain }

// Governance exposes the underlying governance, e.g. for debugging.
func (m *Manager) Governance() *governance.Governance { return m.governance }

// Resolve resolves path, serving from cache when possible.
func (m *Manager) Resolve(path string) (ResolvedToken, error) {
	if resolved, ok := m.cache[path]; ok {
		return resolved, nil
	}
	resolved, err := m.chain.Resolve(path, m.governance, m.context)
	if err != nil {
		return ResolvedToken{}, err
	}
	m.cache[path] = resolved
	return resolved, nil
}

// ResolveAll resolves every token path present in the chain.
func (m *Manager) ResolveAll() (map[string]ResolvedToken, error) {
	out := make(map[string]ResolvedToken)
	for _, path := range m.chain.AllTokenPaths() {
		resolved, err := m.Resolve(path)
		if err != nil {
			return nil, err
		}
		out[path] = resolved
	}
	return out, nil
}

// GetValue resolves path and returns only its value.
func (m *Manager) GetValue(path string) (any, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	return resolved.Value, nil
}

// ApplyContext applies every override in ctx, verifying
// CanOverrideAt(path, ctx.Level) for each one before mutating the
// chain. The first disallowed override aborts the whole batch and
// returns governance.ErrTokenLocked unchanged; overrides already
// applied earlier in the batch are not rolled back.
func (m *Manager) ApplyContext(ctx OverrideContext) error {
	for path, value := range ctx.Overrides {
		if !CanOverrideAt(m.governance, path, ctx.Level) {
			lock, _ := m.governance.GetLock(path)
			return &governance.ErrTokenLocked{Token: path, Level: lock.Level}
		}
		m.chain.ApplyOverride(path, value, ctx.Level, ctx.Name)
		delete(m.cache, path)
	}
	return nil
}

// ClearCache drops every cached resolution.
func (m *Manager) ClearCache() {
	m.cache = map[string]ResolvedToken{}
}
