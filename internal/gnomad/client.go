// Package gnomad is the GraphQL transport for the gnomAD API. It is a thin
// wrapper: no retries, no caching, no pagination. Every failure mode of the
// underlying client - non-success HTTP status, a GraphQL error list in the
// response, a network fault - surfaces as a *TransportError.
package gnomad

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
)

// DefaultEndpoint is the public gnomAD API endpoint.
const DefaultEndpoint = "https://gnomad.broadinstitute.org/api"

// TransportError wraps any failure reported while executing a document.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gnomad request failed (endpoint=%s): %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client executes GraphQL documents against a single endpoint.
type Client struct {
	endpoint string
	gql      *graphql.Client
}

// NewClient builds a client for the given endpoint, defaulting to the
// public gnomAD API when endpoint is empty.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		gql:      graphql.NewClient(endpoint),
	}
}

// Endpoint returns the endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Run executes a document and decodes the response data into out.
func (c *Client) Run(ctx context.Context, document string, vars map[string]any, out any) error {
	req := graphql.NewRequest(document)
	for k, v := range vars {
		req.Var(k, v)
	}
	if err := c.gql.Run(ctx, req, out); err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}
	return nil
}

// Execute executes a document and returns the decoded response data.
func (c *Client) Execute(ctx context.Context, document string, vars map[string]any) (map[string]any, error) {
	var resp map[string]any
	if err := c.Run(ctx, document, vars, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
