package client

import (
	"fmt"
	"strings"
)

// GraphQLError is a single entry of the "errors" array of a GraphQL response.
type GraphQLError struct {
	Message   string        `json:"message"`
	Type      string        `json:"type,omitempty"`
	Path      []interface{} `json:"path,omitempty"`
	Locations []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations,omitempty"`
}

// OperationError is returned when the endpoint answered with a 2xx status but
// reported one or more GraphQL errors. Error() is the first entry's message.
type OperationError struct {
	Errors []GraphQLError
}

func (e *OperationError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: operation failed"
	}
	return e.Errors[0].Message
}

// Messages returns every error message in response order.
func (e *OperationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return msgs
}

// RequestError is returned when the round trip itself failed: the request
// could not be sent, the status was not 2xx, or the body could not be decoded.
// StatusCode is zero when no response was received.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graphql request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graphql request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// joinMessages is used for log attributes only.
func joinMessages(e *OperationError) string {
	return strings.Join(e.Messages(), "; ")
}
