// Package batch runs a parameter file of gnomAD queries and writes one
// envelope JSON file per record, grouped by resolved gnomAD version.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/genelab/gnomad-mcp/internal/dispatch"
	"github.com/genelab/gnomad-mcp/internal/registry"
	"github.com/genelab/gnomad-mcp/internal/store"
)

// Record is one query request from a parameter file.
type Record struct {
	Query     string         `yaml:"query"`
	Output    string         `yaml:"output"`
	Variables map[string]any `yaml:"variables"`
}

// Params is a parsed parameter file.
type Params struct {
	Queries []Record `yaml:"queries"`
}

// LoadParams reads and validates a YAML parameter file.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}

	var params Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse params %s: %w", path, err)
	}

	if len(params.Queries) == 0 {
		return nil, fmt.Errorf("params %s: no queries defined", path)
	}
	for i, rec := range params.Queries {
		if rec.Query == "" {
			return nil, fmt.Errorf("params %s: queries[%d]: missing query name", path, i)
		}
		if rec.Output == "" {
			return nil, fmt.Errorf("params %s: queries[%d]: missing output filename", path, i)
		}
		if rec.Output != filepath.Base(rec.Output) {
			return nil, fmt.Errorf("params %s: queries[%d]: output %q must be a bare filename", path, i, rec.Output)
		}
	}

	return &params, nil
}

// Outcome is the result of one record in a run.
type Outcome struct {
	Record  Record
	Version registry.Version
	Path    string
	Err     error
}

// Summary describes a completed run. Per-record failures are collected
// here rather than aborting the run.
type Summary struct {
	RunID    string
	Started  time.Time
	Outcomes []Outcome
}

// Failed counts records that did not produce an output file.
func (s *Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Runner executes parameter files against a dispatcher.
type Runner struct {
	dispatcher *dispatch.Dispatcher
	archive    *store.Store
	log        *slog.Logger
}

// NewRunner builds a Runner. The archive may be nil to skip SQLite
// archival; the logger defaults to slog.Default.
func NewRunner(d *dispatch.Dispatcher, archive *store.Store, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{dispatcher: d, archive: archive, log: log}
}

// Run executes every record in the parameter file, writing envelopes to
// outDir/<version>/<output>. A failing record is logged and recorded in
// the summary; remaining records still run.
func (r *Runner) Run(ctx context.Context, params *Params, outDir string) (*Summary, error) {
	summary := &Summary{
		RunID:   uuid.Must(uuid.NewV7()).String(),
		Started: time.Now(),
	}

	if r.archive != nil {
		if err := r.archive.BeginRun(ctx, summary.RunID, summary.Started); err != nil {
			return nil, fmt.Errorf("batch run: %w", err)
		}
	}

	r.log.Info("batch run starting",
		"run_id", summary.RunID,
		"records", len(params.Queries),
		"out_dir", outDir)

	for _, rec := range params.Queries {
		outcome := r.runRecord(ctx, summary.RunID, rec, outDir)
		if outcome.Err != nil {
			r.log.Error("record failed",
				"query", rec.Query,
				"output", rec.Output,
				"error", outcome.Err)
		} else {
			r.log.Info("record written",
				"query", rec.Query,
				"version", outcome.Version,
				"path", outcome.Path)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	r.log.Info("batch run finished",
		"run_id", summary.RunID,
		"records", len(summary.Outcomes),
		"failed", summary.Failed())

	return summary, nil
}

func (r *Runner) runRecord(ctx context.Context, runID string, rec Record, outDir string) Outcome {
	outcome := Outcome{Record: rec}

	version, err := registry.Resolve(
		stringVar(rec.Variables, "dataset"),
		stringVar(rec.Variables, "reference_genome"),
		stringVar(rec.Variables, "version"),
	)
	if err != nil {
		outcome.Err = fmt.Errorf("record %s: %w", rec.Output, err)
		return outcome
	}
	outcome.Version = version

	env := r.dispatcher.DispatchEnvelope(ctx, rec.Query, rec.Variables)

	dir := filepath.Join(outDir, string(version))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		outcome.Err = fmt.Errorf("record %s: %w", rec.Output, err)
		return outcome
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		outcome.Err = fmt.Errorf("record %s: marshal envelope: %w", rec.Output, err)
		return outcome
	}

	path := filepath.Join(dir, rec.Output)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		outcome.Err = fmt.Errorf("record %s: %w", rec.Output, err)
		return outcome
	}
	outcome.Path = path

	if r.archive != nil {
		err := r.archive.SaveEnvelope(ctx, store.Record{
			RunID:      runID,
			Query:      rec.Query,
			Version:    string(version),
			OutputFile: rec.Output,
			Envelope:   env,
		})
		if err != nil {
			outcome.Err = fmt.Errorf("record %s: archive: %w", rec.Output, err)
		}
	}

	return outcome
}

func stringVar(vars map[string]any, key string) string {
	if vars == nil {
		return ""
	}
	if s, ok := vars[key].(string); ok {
		return s
	}
	return ""
}
