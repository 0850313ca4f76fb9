package introspection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SnapshotFile is the file name a snapshot is saved under.
	SnapshotFile = "gnomad_schema.json"
	// FetchLogFile records where and when the snapshot came from.
	FetchLogFile = "gnomad_schema_fetch.log"
)

// Save writes the snapshot under dir as SnapshotFile, plus a small fetch log
// alongside it. Returns the snapshot path.
func Save(s *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, SnapshotFile)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	logPath := filepath.Join(dir, FetchLogFile)
	var log string
	if s.Metadata != nil {
		log = fmt.Sprintf("api_url: %s\nfetched_at: %s\noutput_file: %s\n",
			s.Metadata.APIURL, s.Metadata.FetchedAt, path)
	} else {
		log = fmt.Sprintf("output_file: %s\n", path)
	}
	if err := os.WriteFile(logPath, []byte(log), 0o644); err != nil {
		return "", fmt.Errorf("write fetch log: %w", err)
	}

	return path, nil
}

// Load reads a snapshot previously written by Save.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &s, nil
}
