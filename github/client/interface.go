package client

import (
	"context"

	"github.com/shurcooL/githubv4"
)

// GitHubV4Client defines the interface for the methods used from the githubv4 client.
// This allows for mocking the client in tests.
type GitHubV4Client interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
	Mutate(ctx context.Context, m interface{}, input githubv4.Input, variables map[string]interface{}) error
}
