package client

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/shurcooL/githubv4"
)

// MockGitHubV4Client is a mock implementation of the GitHubV4Client interface for testing.
type MockGitHubV4Client struct {
	// ExpectedVariables is the map of variables the mock expects to receive.
	ExpectedVariables map[string]interface{}
	// ResponseToReturn is the data structure to be marshalled into the query result.
	ResponseToReturn interface{}
	// ErrorToReturn is the error to return when Query or Mutate is called.
	ErrorToReturn error
	// QueryCallCount and MutateCallCount track how many times each method was called.
	QueryCallCount  int
	MutateCallCount int
	// LastInput is the input passed to the most recent Mutate call.
	LastInput githubv4.Input
	// LastVariables is the variables map passed to the most recent call.
	LastVariables map[string]interface{}
	// T is a testing object for reporting errors (*testing.T or *testing.B)
	T testingT
}

// testingT is an interface wrapper around *testing.T
type testingT interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Query mocks the Query method of the GitHubV4Client interface.
func (m *MockGitHubV4Client) Query(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	m.QueryCallCount++
	m.LastVariables = variables
	return m.respond(q, variables)
}

// Mutate mocks the Mutate method of the GitHubV4Client interface.
// Unlike githubv4 it does not add input to variables, so ExpectedVariables
// only describes the caller's own variables.
func (m *MockGitHubV4Client) Mutate(ctx context.Context, mut interface{}, input githubv4.Input, variables map[string]interface{}) error {
	m.MutateCallCount++
	m.LastInput = input
	m.LastVariables = variables
	return m.respond(mut, variables)
}

func (m *MockGitHubV4Client) respond(q interface{}, variables map[string]interface{}) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}

	if m.ExpectedVariables != nil && !reflect.DeepEqual(m.ExpectedVariables, variables) {
		err := fmt.Errorf("mock: variables mismatch. Expected %v, Got %v", m.ExpectedVariables, variables)
		if m.T != nil {
			m.T.Errorf("%v", err)
		}
		return err
	}

	if m.ResponseToReturn == nil {
		return nil
	}
	return Fill(q, m.ResponseToReturn)
}

// Fill marshals resp and unmarshals it into q, the way the real client
// populates a query struct. q must be a pointer.
func Fill(q interface{}, resp interface{}) error {
	if reflect.ValueOf(q).Kind() != reflect.Ptr {
		return fmt.Errorf("mock: query must be a pointer, got %T", q)
	}
	respBytes, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("mock: failed to marshal mock response: %w", err)
	}
	if err := json.Unmarshal(respBytes, q); err != nil {
		return fmt.Errorf("mock: failed to unmarshal mock response into query struct: %w", err)
	}
	return nil
}

func (m *MockGitHubV4Client) SetResponse(resp interface{}) {
	m.ResponseToReturn = resp
	m.ErrorToReturn = nil
}

func (m *MockGitHubV4Client) SetError(err error) {
	m.ErrorToReturn = err
	m.ResponseToReturn = nil
}
