package issues

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

func newClient(mock *client.MockGitHubV4Client) *client.Client {
	return client.NewWithGraphQL(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetID_Success(t *testing.T) {
	mockClient := &client.MockGitHubV4Client{T: t}

	mockResponse := issueIDQuery{}
	mockResponse.Repository.Issue.ID = "I_kwDOissue56"
	mockClient.SetResponse(mockResponse)
	mockClient.ExpectedVariables = map[string]interface{}{
		"owner":  githubv4.String("octo-org"),
		"name":   githubv4.String("repo"),
		"number": githubv4.Int(56),
	}

	id, err := GetID(context.Background(), newClient(mockClient), "octo-org", "repo", 56)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "I_kwDOissue56" {
		t.Errorf("Expected id I_kwDOissue56, got %q", id)
	}
}

func TestGetID_Error(t *testing.T) {
	mockClient := &client.MockGitHubV4Client{T: t}
	mockClient.SetError(&client.OperationError{Errors: []client.GraphQLError{{Message: "Could not resolve to an Issue with the number of 999."}}})

	_, err := GetID(context.Background(), newClient(mockClient), "octo-org", "repo", 999)
	if err == nil {
		t.Fatalf("Expected error, got nil")
	}
	if got := mockClient.LastVariables["number"]; got != githubv4.Int(999) {
		t.Errorf("Expected number variable 999, got %v", got)
	}
	if err.Error() != "Could not resolve to an Issue with the number of 999." {
		t.Errorf("Unexpected error message %q", err.Error())
	}
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantBody *githubv4.String
	}{
		{name: "with body", body: "this is an issue", wantBody: githubv4.NewString("this is an issue")},
		{name: "empty body is omitted", body: "", wantBody: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := &client.MockGitHubV4Client{T: t}
			mockResponse := createIssueMutation{}
			mockResponse.CreateIssue.Issue.ID = "I_new"
			mockClient.SetResponse(mockResponse)

			id, err := Create(context.Background(), newClient(mockClient), "R_1", "test issue", tc.body)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if id != "I_new" {
				t.Errorf("Expected id I_new, got %q", id)
			}
			if mockClient.MutateCallCount != 1 {
				t.Errorf("Expected Mutate to be called 1 time, got %d", mockClient.MutateCallCount)
			}

			input, ok := mockClient.LastInput.(githubv4.CreateIssueInput)
			if !ok {
				t.Fatalf("Expected CreateIssueInput, got %T", mockClient.LastInput)
			}
			if input.RepositoryID != githubv4.ID("R_1") || input.Title != "test issue" {
				t.Errorf("Unexpected input %+v", input)
			}
			switch {
			case tc.wantBody == nil && input.Body != nil:
				t.Errorf("Expected no body, got %q", *input.Body)
			case tc.wantBody != nil && (input.Body == nil || *input.Body != *tc.wantBody):
				t.Errorf("Expected body %q, got %v", *tc.wantBody, input.Body)
			}
		})
	}
}
