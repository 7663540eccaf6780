package attestation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oxidekit/core/internal/store"
)

func TestScanCachedMissThenHit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer cache.Close()

	scanner := NewBinaryScanner()

	first, err := scanner.ScanCached(path, cache, nil)
	if err != nil {
		t.Fatalf("ScanCached (miss): %v", err)
	}

	cached, ok, err := cache.LookupAttestationReport(first.Binary.SHA256)
	if err != nil || !ok {
		t.Fatalf("expected report to be cached after first scan, ok=%v err=%v", ok, err)
	}
	if cached == "" {
		t.Fatalf("expected non-empty cached report")
	}

	second, err := scanner.ScanCached(path, cache, nil)
	if err != nil {
		t.Fatalf("ScanCached (hit): %v", err)
	}
	if second.Binary.SHA256 != first.Binary.SHA256 {
		t.Fatalf("expected identical sha256 across cache hit")
	}
}

func TestScanCachedWithNilCacheFallsBackToPlainScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app")
	os.WriteFile(path, []byte("payload"), 0o644)

	scanner := NewBinaryScanner()
	report, err := scanner.ScanCached(path, nil, nil)
	if err != nil {
		t.Fatalf("ScanCached: %v", err)
	}
	if report.Binary.SHA256 == "" {
		t.Fatalf("expected scan to still compute hash")
	}
}
