package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shurcooL/githubv4"
	"github.com/spf13/cobra"
	"github.com/vavalomi/ghprojects/github/client"
	"github.com/vavalomi/ghprojects/github/issues"
	"github.com/vavalomi/ghprojects/github/projects"
	"github.com/vavalomi/ghprojects/github/repositories"
	"github.com/vavalomi/ghprojects/internal/plan"
	"github.com/vavalomi/ghprojects/store"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "File the issues of a plan into its project",
	Long: `Create every issue listed in the plan, add it to the project and set the
listed field values. With POSTGRES_* set, filed issues are recorded so a
re-run updates fields on the existing items instead of creating duplicates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("plan")
		ctx := cmd.Context()
		l := logger()

		p, err := plan.Load(path)
		if err != nil {
			return err
		}
		c, err := newClient(ctx, l)
		if err != nil {
			return err
		}
		ledger, err := openLedger(ctx, l)
		if err != nil {
			return err
		}
		if ledger != nil {
			defer ledger.Close()
		}

		summary, err := runFile(ctx, c, ledger, p, l)
		if err != nil {
			return err
		}
		l.Info("Plan filed", "created", summary.Created, "reused", summary.Reused, "fields_set", summary.FieldsSet)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fileCmd)

	fileCmd.Flags().String("plan", "plan.yaml", "Path to the plan file")
}

// openLedger returns nil when Postgres is not configured.
func openLedger(ctx context.Context, l *slog.Logger) (store.Store, error) {
	cfg := store.ConfigFromEnv()
	if !cfg.Configured() {
		l.Debug("POSTGRES_* not set, running without a ledger")
		return nil, nil
	}
	if err := store.Migrate(cfg, envOr("MIGRATIONS_PATH", store.DefaultMigrationsPath), l); err != nil {
		return nil, err
	}
	return store.NewPostgres(ctx, cfg, l)
}

type summary struct {
	Created   int
	Reused    int
	FieldsSet int
}

type pendingIssue struct {
	plan.Issue
	values map[string]githubv4.ProjectV2FieldValue
}

// runFile stops at the first failure. Field values are converted before
// anything is created, so a bad value in the plan creates nothing.
func runFile(ctx context.Context, c *client.Client, ledger store.Store, p *plan.Plan, l *slog.Logger) (summary, error) {
	var s summary

	projectID, err := resolveProject(ctx, c, p.Project.Owner, p.Project.Number, p.Project.User)
	if err != nil {
		return s, fmt.Errorf("resolving project %s/%d: %w", p.Project.Owner, p.Project.Number, err)
	}
	owner, name, err := p.RepositoryOwnerName()
	if err != nil {
		return s, err
	}
	repoID, err := repositories.GetID(ctx, c, owner, name)
	if err != nil {
		return s, fmt.Errorf("resolving repository %s: %w", p.Repository, err)
	}
	info, err := projects.CollectFieldInfo(ctx, c, projectID)
	if err != nil {
		return s, fmt.Errorf("collecting fields: %w", err)
	}

	pending := make([]pendingIssue, 0, len(p.Issues))
	for _, issue := range p.Issues {
		values := make(map[string]githubv4.ProjectV2FieldValue, len(issue.Fields))
		for field, raw := range issue.Fields {
			v, err := info.Value(field, raw)
			if err != nil {
				return s, fmt.Errorf("issue %q: %w", issue.Key, err)
			}
			values[field] = v
		}
		pending = append(pending, pendingIssue{Issue: issue, values: values})
	}

	for _, issue := range pending {
		itemID, created, err := ensureItem(ctx, c, ledger, projectID, repoID, p.Repository, issue.Issue, l)
		if err != nil {
			return s, err
		}
		if created {
			s.Created++
		} else {
			s.Reused++
		}

		names := make([]string, 0, len(issue.values))
		for field := range issue.values {
			names = append(names, field)
		}
		sort.Strings(names)
		for _, field := range names {
			if _, err := projects.SetFieldValue(ctx, c, projectID, itemID, info.Fields[field], issue.values[field]); err != nil {
				return s, fmt.Errorf("issue %q: setting %s: %w", issue.Key, field, err)
			}
			s.FieldsSet++
		}

		if ledger != nil {
			if err := ledger.SaveFieldValues(ctx, projectID, issue.Key, issue.Fields); err != nil {
				return s, err
			}
		}
		l.Info("Issue filed", "key", issue.Key, "item", itemID, "created", created, "fields", len(names))
	}
	return s, nil
}

// ensureItem returns the project item for issue, creating the issue and item
// unless the ledger already has them. The issue is recorded as soon as it
// exists, so a run that fails before the item is added resumes with AddItem.
func ensureItem(ctx context.Context, c *client.Client, ledger store.Store, projectID, repoID, repository string, issue plan.Issue, l *slog.Logger) (string, bool, error) {
	var filed *store.FiledIssue
	if ledger != nil {
		f, err := ledger.GetFiledIssue(ctx, projectID, issue.Key)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", false, err
		}
		filed = f
		if filed != nil && filed.ItemID != "" {
			l.Debug("Reusing filed issue", "key", issue.Key, "item", filed.ItemID)
			return filed.ItemID, false, nil
		}
	}

	record := store.FiledIssue{
		ProjectID:  projectID,
		Key:        issue.Key,
		Repository: repository,
		Title:      issue.Title,
	}
	created := filed == nil
	if created {
		issueID, err := issues.Create(ctx, c, repoID, issue.Title, issue.Body)
		if err != nil {
			return "", false, fmt.Errorf("issue %q: creating: %w", issue.Key, err)
		}
		record.IssueID = issueID
		if ledger != nil {
			if err := ledger.SaveFiledIssue(ctx, record); err != nil {
				return "", false, err
			}
		}
	} else {
		l.Info("Resuming filed issue without a project item", "key", issue.Key, "issue", filed.IssueID)
		record.IssueID = filed.IssueID
	}

	itemID, err := projects.AddItem(ctx, c, projectID, record.IssueID)
	if err != nil {
		return "", false, fmt.Errorf("issue %q: adding to project: %w", issue.Key, err)
	}
	record.ItemID = itemID

	if ledger != nil {
		if err := ledger.SaveFiledIssue(ctx, record); err != nil {
			return "", false, err
		}
	}
	return itemID, created, nil
}
