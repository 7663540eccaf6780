package attestation

import "github.com/oxidekit/core/internal/store"

// ScanCached scans binaryPath, consulting cache first: binaries are
// content-addressed by sha256, so a hash match against a previously
// cached report skips the analysis passes entirely and returns the
// cached report. On a miss, it runs a full Scan (or ScanWithManifest if
// manifest is non-nil) and stores the result before returning it.
func (s *BinaryScanner) ScanCached(binaryPath string, cache *store.Store, manifest *Manifest) (*Report, error) {
	if cache == nil {
		return s.scan(binaryPath, manifest)
	}

	sum, err := hashFile(binaryPath)
	if err != nil {
		return nil, err
	}

	if cached, ok, lookupErr := cache.LookupAttestationReport(sum); lookupErr == nil && ok {
		if report, parseErr := ReportFromJSON([]byte(cached)); parseErr == nil {
			return report, nil
		}
	}

	report, err := s.scan(binaryPath, manifest)
	if err != nil {
		return nil, err
	}
	if data, marshalErr := report.ToJSON(); marshalErr == nil {
		_ = cache.CacheAttestationReport(report.Binary.SHA256, string(data))
	}
	return report, nil
}
