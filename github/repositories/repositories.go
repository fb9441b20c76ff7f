package repositories

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

type repoIDQuery struct {
	Repository struct {
		ID githubv4.String
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GetID resolves the node ID of owner/name.
func GetID(ctx context.Context, c *client.Client, owner, name string) (string, error) {
	op := client.NewQuery[repoIDQuery](map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	})
	r, err := client.Execute(ctx, c, op)
	if err != nil {
		return "", err
	}
	if r.Repository.ID == "" {
		return "", fmt.Errorf("repository %s/%s not found", owner, name)
	}
	return string(r.Repository.ID), nil
}
