package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/config"
	"github.com/oxidekit/core/internal/devtools"
)

func withTestConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = config.DefaultConfig()
	t.Cleanup(func() { cfg = prev })
}

func TestVersionParseAndSolve(t *testing.T) {
	if err := versionParseCmd.RunE(&cobra.Command{}, []string{"1.2.3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	versionAvailable = []string{"1.0.0,1.2.0,1.5.0,2.0.0"}
	defer func() { versionAvailable = nil }()

	if err := versionSolveCmd.RunE(&cobra.Command{}, []string{"^1.0.0"}); err != nil {
		t.Fatalf("solve: %v", err)
	}
}

func TestVersionSolveRequiresAvailable(t *testing.T) {
	versionAvailable = nil
	if err := versionSolveCmd.RunE(&cobra.Command{}, []string{"^1.0.0"}); err == nil {
		t.Fatalf("expected error without --available")
	}
}

func TestCapabilityListRuns(t *testing.T) {
	if err := capabilityListCmd.RunE(&cobra.Command{}, nil); err != nil {
		t.Fatalf("capability list: %v", err)
	}
}

func TestTokensResolveFromBrandPack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brand.yaml")
	yamlBody := `
identity:
  name: Acme
colors:
  primary:
    value: "#3B82F6"
  secondary:
    value: "#6B7280"
  accent:
    value: "#F59E0B"
typography:
  primary_family:
    name: Inter
  base_size: 16
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("path", "", "")
	if err := tokensCmd.RunE(cmd, []string{path}); err != nil {
		t.Fatalf("tokens resolve: %v", err)
	}
}

func TestPatchShowRoundTrip(t *testing.T) {
	patch := devtools.NewEditPatch("set spacing")
	patch.SessionID = "sess-1"
	data, err := json.Marshal(patch)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "patch.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := patchShowCmd.RunE(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("patch show: %v", err)
	}
}

func TestPatchHistoryEmptyIsNotAnError(t *testing.T) {
	patchHistoryDB = filepath.Join(t.TempDir(), "patches.db")
	defer func() { patchHistoryDB = ".oxide/patches.db" }()

	if err := patchHistoryCmd.RunE(&cobra.Command{}, []string{"no-such-session"}); err != nil {
		t.Fatalf("patch history: %v", err)
	}
}

func TestAttestScansTempBinary(t *testing.T) {
	withTestConfig(t)

	path := filepath.Join(t.TempDir(), "app")
	if err := os.WriteFile(path, []byte("binary-payload"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	attestManifestPath = ""
	attestJSON = false
	attestCacheDB = ""

	if err := attestCmd.RunE(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("attest: %v", err)
	}
}
