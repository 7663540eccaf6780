package inheritance

import (
	"errors"
	"testing"

	"github.com/oxidekit/core/internal/governance"
)

func brandLayer(tokens map[string]any) InheritanceLayer {
	return InheritanceLayer{Name: "brand", Level: LevelBrand, Tokens: tokens}
}

func TestResolveFromBrandLayer(t *testing.T) {
	chain := NewChain().WithLayer(brandLayer(map[string]any{"colors.primary": "#3B82F6"}))
	mgr := NewManager(chain, governance.New())

	resolved, err := mgr.Resolve("colors.primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != "brand" || resolved.Value != "#3B82F6" {
		t.Errorf("unexpected resolution: %+v", resolved)
	}
}

func TestAppLayerOverridesBrand(t *testing.T) {
	chain := NewChain().
		WithLayer(brandLayer(map[string]any{"colors.secondary": "#6B7280"})).
		WithLayer(InheritanceLayer{Name: "app:test-app", Level: LevelApp, Tokens: map[string]any{"colors.secondary": "#00FF00"}})
	mgr := NewManager(chain, governance.New())

	resolved, err := mgr.Resolve("colors.secondary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Value != "#00FF00" || resolved.Level != LevelApp {
		t.Errorf("expected app override to win, got %+v", resolved)
	}
}

func TestLockedTokenCannotBeOverriddenAtAnyLayer(t *testing.T) {
	gov := governance.New()
	gov.LockToken("colors.primary", governance.LockBrand)

	chain := NewChain().
		WithLayer(brandLayer(map[string]any{"colors.primary": "#FF0000"})).
		WithLayer(InheritanceLayer{Name: "app:test-app", Level: LevelApp, Tokens: map[string]any{"colors.primary": "#00FF00"}})
	mgr := NewManager(chain, gov)

	resolved, err := mgr.Resolve("colors.primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Value != "#FF0000" || resolved.Level != LevelBrand || !resolved.Locked {
		t.Errorf("expected brand value to win over a locked override, got %+v", resolved)
	}
}

func TestCanOverrideAtPairwiseLegality(t *testing.T) {
	gov := governance.New()
	gov.LockToken("colors.primary", governance.LockOrg)

	if CanOverrideAt(gov, "colors.primary", LevelApp) {
		t.Error("expected an Org lock to block an App-level override")
	}
	if CanOverrideAt(gov, "colors.primary", LevelTheme) {
		t.Error("expected an Org lock to block a Theme-level override")
	}
	if CanOverrideAt(gov, "colors.primary", LevelComponent) {
		t.Error("expected an Org lock to block a Component-level override")
	}
}

func TestBrandLockBlocksEverything(t *testing.T) {
	gov := governance.New()
	gov.LockToken("colors.primary", governance.LockBrand)

	for _, level := range []InheritanceLevel{LevelOrg, LevelApp, LevelTheme, LevelComponent} {
		if CanOverrideAt(gov, "colors.primary", level) {
			t.Errorf("expected Brand lock to block override at level %s", level)
		}
	}
}

func TestOverrideContextAppliesAndResolves(t *testing.T) {
	chain := NewChain().WithLayer(brandLayer(map[string]any{}))
	mgr := NewManager(chain, governance.New())

	ctx := NewThemeOverride("dark").With("colors.background", "#000000")
	if err := mgr.ApplyContext(ctx); err != nil {
		t.Fatalf("unexpected error applying override: %v", err)
	}

	resolved, err := mgr.Resolve("colors.background")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Value != "#000000" {
		t.Errorf("expected overridden value, got %v", resolved.Value)
	}
}

func TestApplyContextRejectsLockedOverride(t *testing.T) {
	gov := governance.New()
	gov.LockToken("colors.primary", governance.LockBrand)
	chain := NewChain().WithLayer(brandLayer(map[string]any{"colors.primary": "#3B82F6"}))
	mgr := NewManager(chain, gov)

	err := mgr.ApplyContext(NewThemeOverride("dark").With("colors.primary", "#FF0000"))
	if err == nil {
		t.Fatal("expected an error overriding a brand-locked token")
	}
	var lockedErr *governance.ErrTokenLocked
	if !errors.As(err, &lockedErr) || lockedErr.Token != "colors.primary" {
		t.Errorf("expected ErrTokenLocked for colors.primary, got %v", err)
	}
}

func TestResolveUnknownPathReturnsErrNotFound(t *testing.T) {
	chain := NewChain().WithLayer(brandLayer(map[string]any{}))
	mgr := NewManager(chain, governance.New())

	_, err := mgr.Resolve("nonexistent.path")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveAllReturnsEveryLayerPath(t *testing.T) {
	chain := NewChain().
		WithLayer(brandLayer(map[string]any{"colors.primary": "#3B82F6"})).
		WithLayer(InheritanceLayer{Name: "theme:dark", Level: LevelTheme, Tokens: map[string]any{"colors.background": "#000000"}})
	mgr := NewManager(chain, governance.New())

	all, err := mgr.ResolveAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 resolved tokens, got %d", len(all))
	}
}

func TestResolveCachesUntilInvalidated(t *testing.T) {
	chain := NewChain().WithLayer(brandLayer(map[string]any{"spacing.md": 16.0}))
	mgr := NewManager(chain, governance.New())

	first, _ := mgr.Resolve("spacing.md")
	chain.ApplyOverride("spacing.md", 24.0, LevelTheme, "theme:dark")
	mgr.ClearCache()
	second, _ := mgr.Resolve("spacing.md")

	if first.Value == second.Value {
		t.Error("expected cache invalidation to pick up the new override")
	}
}

func TestApplyOverrideKeepsLayersSortedByLevel(t *testing.T) {
	chain := NewChain().WithLayer(brandLayer(map[string]any{}))
	chain.ApplyOverride("colors.accent", "#FFAA00", LevelComponent, "component:button")
	chain.ApplyOverride("colors.accent", "#FFBB00", LevelTheme, "theme:dark")

	layers := chain.Layers()
	for i := 1; i < len(layers); i++ {
		if layers[i].Level < layers[i-1].Level {
			t.Fatalf("layers not sorted by level: %+v", layers)
		}
	}
}
