package store

import (
	"database/sql"
	"time"
)

// Direction records whether a logged patch application was forward
// (applied) or reverse (undone).
type Direction string

const (
	DirectionApplied Direction = "applied"
	DirectionUndone  Direction = "undone"
)

// PatchLogEntry is one row of the append-only patch history log: the
// patch as applied, never mutated or deleted once written.
type PatchLogEntry struct {
	Seq         int64
	PatchID     string
	SessionID   string
	Description string
	AppliedAt   time.Time
	Direction   Direction
	PatchJSON   string
}

// AppendPatch appends one entry to the patch log. The log is append-only:
// undoing a patch appends a new DirectionUndone entry rather than
// removing the original DirectionApplied one, so the full history of a
// session's edits (including undos and redos) is reconstructible.
func (s *Store) AppendPatch(entry PatchLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO patch_log (patch_id, session_id, description, applied_at, direction, patch_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.PatchID, entry.SessionID, entry.Description, entry.AppliedAt, string(entry.Direction), entry.PatchJSON)
	return err
}

// PatchHistoryForSession returns every logged entry for sessionID in the
// order it was appended (oldest first).
func (s *Store) PatchHistoryForSession(sessionID string) ([]PatchLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT seq, patch_id, session_id, description, applied_at, direction, patch_json
		FROM patch_log
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PatchLogEntry
	for rows.Next() {
		var e PatchLogEntry
		var direction string
		if err := rows.Scan(&e.Seq, &e.PatchID, &e.SessionID, &e.Description, &e.AppliedAt, &direction, &e.PatchJSON); err != nil {
			return nil, err
		}
		e.Direction = Direction(direction)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestPatch returns the most recently appended entry for patchID, or
// (zero value, sql.ErrNoRows) if none exists.
func (s *Store) LatestPatch(patchID string) (PatchLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e PatchLogEntry
	var direction string
	err := s.db.QueryRow(`
		SELECT seq, patch_id, session_id, description, applied_at, direction, patch_json
		FROM patch_log
		WHERE patch_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, patchID).Scan(&e.Seq, &e.PatchID, &e.SessionID, &e.Description, &e.AppliedAt, &direction, &e.PatchJSON)
	if err == sql.ErrNoRows {
		return PatchLogEntry{}, err
	}
	if err != nil {
		return PatchLogEntry{}, err
	}
	e.Direction = Direction(direction)
	return e, nil
}
