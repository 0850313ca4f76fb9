// Package dispatch resolves a logical query name and caller-supplied
// variables to a version-specific query document and executes it. The
// sequence per call: resolve version, backfill dataset and reference genome
// from version defaults, validate query support, cross-check consistency,
// load the document, execute.
//
// Dispatchers hold only read-only state; concurrent calls never interfere.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/genelab/gnomad-mcp/internal/docstore"
	"github.com/genelab/gnomad-mcp/internal/registry"
)

// Executor is the transport collaborator: it sends one document with one
// variable set and returns the decoded response data.
type Executor interface {
	Execute(ctx context.Context, document string, vars map[string]any) (map[string]any, error)
}

// Envelope is the uniform per-call result wrapper. RequestVariables echoes
// the variables as the caller supplied them, before default backfill.
// Response holds either the decoded JSON data or {"error": message}.
type Envelope struct {
	Endpoint         string         `json:"endpoint"`
	RequestQuery     string         `json:"request_query"`
	RequestVariables map[string]any `json:"request_variables"`
	Response         map[string]any `json:"response"`
}

// Dispatcher routes query calls to version-specific documents.
type Dispatcher struct {
	docs     docstore.Store
	client   Executor
	endpoint string
}

// New builds a dispatcher over a document store and a transport client.
func New(docs docstore.Store, client Executor, endpoint string) *Dispatcher {
	return &Dispatcher{docs: docs, client: client, endpoint: endpoint}
}

// Endpoint returns the endpoint reported in envelopes.
func (d *Dispatcher) Endpoint() string {
	return d.endpoint
}

// Dispatch resolves and executes one query call.
//
// A version-resolution failure is a soft error: the returned map is
// {"error": message} with a nil error, so batch callers are not
// interrupted. Everything else that goes wrong returns a typed *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, queryName string, vars map[string]any) (map[string]any, error) {
	version, err := registry.Resolve(
		stringVar(vars, "dataset"),
		stringVar(vars, "reference_genome"),
		stringVar(vars, "version"),
	)
	if err != nil {
		return map[string]any{"error": "Cannot determine version from dataset/reference_genome/version."}, nil
	}

	// Complete the variable set from version defaults without touching the
	// caller's map.
	completed := make(map[string]any, len(vars)+2)
	for k, v := range vars {
		completed[k] = v
	}
	if stringVar(completed, "dataset") == "" {
		completed["dataset"] = version.DefaultDataset()
	}
	if stringVar(completed, "reference_genome") == "" {
		completed["reference_genome"] = version.ReferenceGenome()
	}

	if !version.Supports(queryName) {
		return nil, &Error{
			Code:    CodeUnsupportedQuery,
			Message: fmt.Sprintf("query %q is not supported in gnomAD %s (supported: %s)", queryName, version, strings.Join(version.SupportedQueries(), ", ")),
			Query:   queryName,
			Version: version,
		}
	}

	// The completed (dataset, reference_genome) pair must agree with the
	// version resolved from the caller's hints. A dataset implying v4 next
	// to an explicit v2 tag is a caller contradiction, not something to
	// guess through.
	check, err := registry.Resolve(stringVar(completed, "dataset"), stringVar(completed, "reference_genome"), "")
	if err != nil || check != version {
		return nil, &Error{
			Code:    CodeInconsistentVersion,
			Message: fmt.Sprintf("inconsistent version: got %s, dataset/reference_genome imply %s", version, check),
			Query:   queryName,
			Version: version,
		}
	}

	document, err := d.docs.Document(version, queryName)
	if err != nil {
		return nil, &Error{
			Code:    CodeDocumentMissing,
			Message: "query document not found",
			Query:   queryName,
			Version: version,
			Err:     err,
		}
	}

	resp, err := d.client.Execute(ctx, document, completed)
	if err != nil {
		return nil, &Error{
			Code:    CodeTransport,
			Message: "query execution failed",
			Query:   queryName,
			Version: version,
			Err:     err,
		}
	}
	return resp, nil
}

// DispatchEnvelope runs Dispatch and wraps the outcome in the uniform
// envelope. Failures of any kind end up as {"error": message} in the
// response; the envelope itself is always well-formed.
func (d *Dispatcher) DispatchEnvelope(ctx context.Context, queryName string, vars map[string]any) Envelope {
	echo := make(map[string]any, len(vars))
	for k, v := range vars {
		echo[k] = v
	}

	env := Envelope{
		Endpoint:         d.endpoint,
		RequestQuery:     queryName,
		RequestVariables: echo,
	}

	resp, err := d.Dispatch(ctx, queryName, vars)
	if err != nil {
		env.Response = map[string]any{"error": err.Error()}
		return env
	}
	env.Response = resp
	return env
}

func stringVar(vars map[string]any, key string) string {
	if s, ok := vars[key].(string); ok {
		return s
	}
	return ""
}
