package dispatch

import (
	"errors"
	"fmt"

	"github.com/genelab/gnomad-mcp/internal/registry"
)

// Code categorizes dispatch failures. Version-resolution failure is not
// here: it is reported as a soft error value, not a typed fault, so batch
// callers keep running.
type Code string

const (
	// CodeUnsupportedQuery: the resolved version does not support the query.
	CodeUnsupportedQuery Code = "UNSUPPORTED_QUERY"

	// CodeInconsistentVersion: caller-supplied hints contradict each other
	// after defaults are backfilled.
	CodeInconsistentVersion Code = "INCONSISTENT_VERSION"

	// CodeDocumentMissing: no query document exists for (version, query).
	CodeDocumentMissing Code = "DOCUMENT_MISSING"

	// CodeTransport: the outbound call failed (HTTP status, GraphQL error
	// list, network fault).
	CodeTransport Code = "TRANSPORT"
)

// Error is a typed dispatch failure.
type Error struct {
	Code    Code
	Message string
	Query   string
	Version registry.Version
	Err     error
}

func (e *Error) Error() string {
	var msg string
	if e.Version != "" {
		msg = fmt.Sprintf("%s: %s (query=%s, version=%s)", e.Code, e.Message, e.Query, e.Version)
	} else {
		msg = fmt.Sprintf("%s: %s (query=%s)", e.Code, e.Message, e.Query)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a dispatch failure from the
// outbound call rather than from validation.
func IsTransportError(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == CodeTransport
	}
	return false
}
