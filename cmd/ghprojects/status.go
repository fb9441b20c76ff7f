package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vavalomi/ghprojects/github/client"
	"github.com/vavalomi/ghprojects/store"
	"gopkg.in/yaml.v3"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the issues filed into a project and the field values last applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		number, _ := cmd.Flags().GetInt("project")
		user, _ := cmd.Flags().GetBool("user")
		ctx := cmd.Context()
		l := logger()

		ledger, err := openLedger(ctx, l)
		if err != nil {
			return err
		}
		if ledger == nil {
			return errors.New("status needs the ledger: set the POSTGRES_* variables")
		}
		defer ledger.Close()

		c, err := newClient(ctx, l)
		if err != nil {
			return err
		}
		return runStatus(ctx, c, ledger, cmd.OutOrStdout(), owner, number, user)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("owner", "", "Organization or user login that owns the project")
	statusCmd.Flags().Int("project", 0, "Project number")
	statusCmd.Flags().Bool("user", false, "The owner is a user, not an organization")
	statusCmd.MarkFlagRequired("owner")
	statusCmd.MarkFlagRequired("project")
}

type statusEntry struct {
	Key        string            `yaml:"key"`
	Title      string            `yaml:"title,omitempty"`
	Repository string            `yaml:"repository"`
	IssueID    string            `yaml:"issue_id"`
	ItemID     string            `yaml:"item_id"`
	Fields     map[string]string `yaml:"fields,omitempty"`
}

func runStatus(ctx context.Context, c *client.Client, ledger store.Store, out io.Writer, owner string, number int, user bool) error {
	projectID, err := resolveProject(ctx, c, owner, number, user)
	if err != nil {
		return fmt.Errorf("resolving project %s/%d: %w", owner, number, err)
	}

	filed, err := ledger.ListFiledIssues(ctx, projectID)
	if err != nil {
		return err
	}
	entries := make([]statusEntry, 0, len(filed))
	for _, f := range filed {
		values, err := ledger.GetFieldValues(ctx, projectID, f.Key)
		if err != nil {
			return err
		}
		entries = append(entries, statusEntry{
			Key:        f.Key,
			Title:      f.Title,
			Repository: f.Repository,
			IssueID:    f.IssueID,
			ItemID:     f.ItemID,
			Fields:     values,
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}
