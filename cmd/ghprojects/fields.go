package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vavalomi/ghprojects/github/client"
	"github.com/vavalomi/ghprojects/github/projects"
	"gopkg.in/yaml.v3"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print a project's field lookup as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		number, _ := cmd.Flags().GetInt("project")
		user, _ := cmd.Flags().GetBool("user")

		l := logger()
		c, err := newClient(cmd.Context(), l)
		if err != nil {
			return err
		}
		return runFields(cmd.Context(), c, cmd.OutOrStdout(), owner, number, user)
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().String("owner", "", "Organization or user login that owns the project")
	fieldsCmd.Flags().Int("project", 0, "Project number")
	fieldsCmd.Flags().Bool("user", false, "The owner is a user, not an organization")
	fieldsCmd.MarkFlagRequired("owner")
	fieldsCmd.MarkFlagRequired("project")
}

func resolveProject(ctx context.Context, c *client.Client, owner string, number int, user bool) (string, error) {
	if user {
		return projects.GetUserProjectID(ctx, c, owner, number)
	}
	return projects.GetID(ctx, c, owner, number)
}

func runFields(ctx context.Context, c *client.Client, out io.Writer, owner string, number int, user bool) error {
	projectID, err := resolveProject(ctx, c, owner, number, user)
	if err != nil {
		return fmt.Errorf("resolving project %s/%d: %w", owner, number, err)
	}
	info, err := projects.CollectFieldInfo(ctx, c, projectID)
	if err != nil {
		return fmt.Errorf("collecting fields: %w", err)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return err
	}
	return enc.Close()
}
