package errors

import (
	"fmt"
	"strings"
)

// ErrMissingHeaders is returned when the Shopify identification headers are absent
type ErrMissingHeaders struct{}

func (e *ErrMissingHeaders) Error() string {
	return "Missing Shopify headers: X-Shopify-Shop-Domain or X-Shopify-Access-Token"
}

// ErrValidation is returned when the request body fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// UpstreamError is returned for transport-level failures (Status == 0) and
// non-2xx HTTP responses from the Shopify API. Body carries the raw response
// body, when there was one, for caller diagnostics.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("shopify request failed: status %d", e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("shopify request failed: %v", e.Err)
	}
	return "shopify request failed"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// GraphQLError is returned when the GraphQL response itself reports errors
// (malformed query, auth failure) at the top level.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphQL errors: " + strings.Join(e.Messages, "; ")
}

// UserError is one business-rule violation reported inside an otherwise
// successful mutation response.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors is returned when a mutation reports a non-empty userErrors list.
// Operation names the mutation (e.g. "productCreate") so the caller can see
// which stage rejected the request.
type UserErrors struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		msgs[i] = ue.Message
	}
	return fmt.Sprintf("%s.userErrors: %s", e.Operation, strings.Join(msgs, "; "))
}

// ErrNoLocations is returned when the store has no fulfillment location
type ErrNoLocations struct{}

func (e *ErrNoLocations) Error() string {
	return "No locations found in Shopify store"
}
