package introspection

import (
	"context"
	"fmt"
	"time"
)

// Query is the full introspection query sent to the endpoint by the
// fetch-schema command.
const Query = `query IntrospectionQuery {
  __schema {
    queryType {
      name
      fields {
        name
        description
        args {
          ...InputValue
        }
        type {
          ...TypeRef
        }
      }
    }
    types {
      kind
      name
      description
      fields {
        name
        description
        args {
          ...InputValue
        }
        type {
          ...TypeRef
        }
      }
      inputFields {
        ...InputValue
      }
      interfaces {
        ...TypeRef
      }
      enumValues {
        name
        description
      }
      possibleTypes {
        ...TypeRef
      }
    }
    directives {
      name
      description
      locations
      args {
        ...InputValue
      }
    }
  }
}
fragment InputValue on __InputValue {
  name
  description
  type {
    ...TypeRef
  }
  defaultValue
}
fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

// Runner executes a GraphQL document and decodes the response data into out.
// Satisfied by *gnomad.Client.
type Runner interface {
	Run(ctx context.Context, document string, vars map[string]any, out any) error
}

// Fetch retrieves a full introspection snapshot from the endpoint behind the
// runner and stamps it with fetch metadata.
func Fetch(ctx context.Context, runner Runner, endpoint string) (*Snapshot, error) {
	var resp struct {
		Schema Schema `json:"__schema"`
	}
	if err := runner.Run(ctx, Query, nil, &resp); err != nil {
		return nil, fmt.Errorf("introspection query: %w", err)
	}
	return &Snapshot{
		Schema: resp.Schema,
		Metadata: &Metadata{
			APIURL:    endpoint,
			FetchedAt: time.Now().Format(time.RFC3339),
		},
	}, nil
}
