// Package projects works with GitHub Projects (v2): resolving boards, adding
// items, reading custom field definitions and setting field values.
package projects

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

type orgProjectQuery struct {
	Organization struct {
		ProjectV2 struct {
			ID githubv4.String
		} `graphql:"projectV2(number: $number)"`
	} `graphql:"organization(login: $login)"`
}

type userProjectQuery struct {
	User struct {
		ProjectV2 struct {
			ID githubv4.String
		} `graphql:"projectV2(number: $number)"`
	} `graphql:"user(login: $login)"`
}

type addItemMutation struct {
	AddProjectV2ItemByID struct {
		Item struct {
			ID githubv4.String
		}
	} `graphql:"addProjectV2ItemById(input: $input)"`
}

func projectVariables(login string, number int) map[string]interface{} {
	return map[string]interface{}{
		"login":  githubv4.String(login),
		"number": githubv4.Int(number),
	}
}

// GetID resolves the node ID of project number owned by the organization owner.
func GetID(ctx context.Context, c *client.Client, owner string, number int) (string, error) {
	r, err := client.Execute(ctx, c, client.NewQuery[orgProjectQuery](projectVariables(owner, number)))
	if err != nil {
		return "", err
	}
	if r.Organization.ProjectV2.ID == "" {
		return "", fmt.Errorf("project %s/%d not found", owner, number)
	}
	return string(r.Organization.ProjectV2.ID), nil
}

// GetUserProjectID resolves the node ID of project number owned by the user login.
func GetUserProjectID(ctx context.Context, c *client.Client, login string, number int) (string, error) {
	r, err := client.Execute(ctx, c, client.NewQuery[userProjectQuery](projectVariables(login, number)))
	if err != nil {
		return "", err
	}
	if r.User.ProjectV2.ID == "" {
		return "", fmt.Errorf("project %s/%d not found", login, number)
	}
	return string(r.User.ProjectV2.ID), nil
}

// AddItem attaches the issue or pull request contentID to the project and
// returns the node ID of the created project item. The item ID is what
// SetFieldValue expects; it is not the content's ID.
func AddItem(ctx context.Context, c *client.Client, projectID, contentID string) (string, error) {
	input := githubv4.AddProjectV2ItemByIdInput{
		ProjectID: githubv4.ID(projectID),
		ContentID: githubv4.ID(contentID),
	}
	r, err := client.Execute(ctx, c, client.NewMutation[addItemMutation](input, nil))
	if err != nil {
		return "", err
	}
	return string(r.AddProjectV2ItemByID.Item.ID), nil
}
