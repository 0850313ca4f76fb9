package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/genelab/gnomad-mcp/internal/dispatch"
)

// Record is one archived query execution within a batch run.
type Record struct {
	RunID      string
	Query      string
	Version    string
	OutputFile string
	Envelope   dispatch.Envelope
	CreatedAt  time.Time
}

// RunInfo summarizes an archived run.
type RunInfo struct {
	ID        string
	StartedAt time.Time
	Envelopes int
}

// BeginRun registers a run before its envelopes are written.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - re-registering a run
// keeps the original start time.
func (s *Store) BeginRun(ctx context.Context, runID string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, runID, startedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// SaveEnvelope archives one query envelope under its run.
// Uses ON CONFLICT(run_id, output_file) DO NOTHING for idempotency - a
// record that was already archived for this run is silently ignored.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) SaveEnvelope(ctx context.Context, rec Record) error {
	envJSON, err := json.Marshal(rec.Envelope)
	if err != nil {
		return fmt.Errorf("save envelope: marshal: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO envelopes
		(run_id, query, version, output_file, envelope, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, output_file) DO NOTHING
	`,
		rec.RunID,
		rec.Query,
		rec.Version,
		rec.OutputFile,
		string(envJSON),
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save envelope: %w", err)
	}

	return nil
}

// EnvelopesByRun returns every archived record for a run, in insertion order.
func (s *Store) EnvelopesByRun(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, query, version, output_file, envelope, created_at
		FROM envelopes
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("envelopes by run: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var envJSON, createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Query, &rec.Version, &rec.OutputFile, &envJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("envelopes by run: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(envJSON), &rec.Envelope); err != nil {
			return nil, fmt.Errorf("envelopes by run: unmarshal %s: %w", rec.OutputFile, err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("envelopes by run: %w", err)
	}

	return records, nil
}

// Runs lists archived runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, COUNT(e.id)
		FROM runs r
		LEFT JOIN envelopes e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var startedAt string
		if err := rows.Scan(&info.ID, &startedAt, &info.Envelopes); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			info.StartedAt = t
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}
