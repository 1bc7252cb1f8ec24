package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RecordSource notes the input report the groups were derived from.
func (s *Store) RecordSource(fp FileFingerprint) error {
	_, err := s.db.Exec("INSERT INTO report_sources VALUES (?, ?, ?, ?)",
		fp.Path, fp.Size, fp.ModTime.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record source: %w", err)
	}
	return nil
}

// Sources returns the recorded input reports, oldest first.
func (s *Store) Sources() ([]FileFingerprint, error) {
	rows, err := s.db.Query("SELECT path, size, mod_time FROM report_sources ORDER BY written_at")
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var out []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		if err := rows.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}
