// Package issues resolves and creates repository issues.
package issues

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

type issueIDQuery struct {
	Repository struct {
		Issue struct {
			ID githubv4.String
		} `graphql:"issue(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type createIssueMutation struct {
	CreateIssue struct {
		Issue struct {
			ID githubv4.String
		}
	} `graphql:"createIssue(input: $input)"`
}

// GetID resolves the node ID of issue number in owner/repo.
func GetID(ctx context.Context, c *client.Client, owner, repo string, number int) (string, error) {
	op := client.NewQuery[issueIDQuery](map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	})
	r, err := client.Execute(ctx, c, op)
	if err != nil {
		return "", err
	}
	if r.Repository.Issue.ID == "" {
		return "", fmt.Errorf("issue %s/%s#%d not found", owner, repo, number)
	}
	return string(r.Repository.Issue.ID), nil
}

// Create opens an issue in the repository with node ID repoID and returns the
// new issue's node ID. An empty body is omitted from the input.
func Create(ctx context.Context, c *client.Client, repoID, title, body string) (string, error) {
	input := githubv4.CreateIssueInput{
		RepositoryID: githubv4.ID(repoID),
		Title:        githubv4.String(title),
	}
	if body != "" {
		input.Body = githubv4.NewString(githubv4.String(body))
	}

	r, err := client.Execute(ctx, c, client.NewMutation[createIssueMutation](input, nil))
	if err != nil {
		return "", err
	}
	return string(r.CreateIssue.Issue.ID), nil
}
