package store

import (
	"database/sql"
	"time"
)

// CacheAttestationReport stores reportJSON (a serialized attestation
// report) keyed by the scanned binary's sha256, replacing any prior
// cached report for that hash. Binaries are content-addressed, so a
// cache hit on the same hash always reflects the same scan output
// modulo signature/manifest inputs supplied at scan time.
func (s *Store) CacheAttestationReport(sha256 string, reportJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO attestation_cache (sha256, generated_at, report_json)
		VALUES (?, ?, ?)
		ON CONFLICT(sha256) DO UPDATE SET
			generated_at = excluded.generated_at,
			report_json = excluded.report_json
	`, sha256, time.Now().UTC(), reportJSON)
	return err
}

// LookupAttestationReport returns the cached report JSON for sha256, or
// ("", false, nil) if no entry exists.
func (s *Store) LookupAttestationReport(sha256 string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reportJSON string
	err := s.db.QueryRow(`SELECT report_json FROM attestation_cache WHERE sha256 = ?`, sha256).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return reportJSON, true, nil
}
