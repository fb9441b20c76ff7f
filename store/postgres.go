package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vavalomi/ghprojects/store/sqlc"
)

type Postgres struct {
	connPool *pgxpool.Pool
	queries  *sqlc.Queries
	Logger   *slog.Logger
}

// NewPostgres connects a pool and verifies the database is reachable.
func NewPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return &Postgres{connPool: pool, queries: sqlc.New(pool), Logger: logger}, nil
}

func (p *Postgres) Close() {
	p.connPool.Close()
}

func (p *Postgres) GetFiledIssue(ctx context.Context, projectID, key string) (*FiledIssue, error) {
	row, err := p.queries.GetFiledIssue(ctx, sqlc.GetFiledIssueParams{ProjectID: projectID, PlanKey: key})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.Logger.Error("can't fetch filed issue", "project", projectID, "key", key, "error", err)
		return nil, err
	}
	issue := fromRow(row)
	return &issue, nil
}

func (p *Postgres) ListFiledIssues(ctx context.Context, projectID string) ([]FiledIssue, error) {
	rows, err := p.queries.ListFiledIssues(ctx, projectID)
	if err != nil {
		p.Logger.Error("can't list filed issues", "project", projectID, "error", err)
		return nil, err
	}
	issues := make([]FiledIssue, 0, len(rows))
	for _, r := range rows {
		issues = append(issues, fromRow(r))
	}
	return issues, nil
}

func (p *Postgres) SaveFiledIssue(ctx context.Context, issue FiledIssue) error {
	err := p.queries.UpsertFiledIssue(ctx, sqlc.UpsertFiledIssueParams{
		ProjectID:  issue.ProjectID,
		PlanKey:    issue.Key,
		Repository: issue.Repository,
		IssueID:    issue.IssueID,
		ItemID:     issue.ItemID,
		Title:      pgtype.Text{String: issue.Title, Valid: issue.Title != ""},
	})
	if err != nil {
		p.Logger.Error("can't save filed issue", "project", issue.ProjectID, "key", issue.Key, "error", err)
		return err
	}
	p.Logger.Debug("Recorded filed issue", "project", issue.ProjectID, "key", issue.Key, "item", issue.ItemID)
	return nil
}

func (p *Postgres) SaveFieldValues(ctx context.Context, projectID, key string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := p.connPool.Begin(ctx)
	if err != nil {
		p.Logger.Error("Failed to begin transaction for field values", "error", err)
		return err
	}
	defer tx.Rollback(ctx)

	qtx := p.queries.WithTx(tx)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		err := qtx.UpsertFieldValue(ctx, sqlc.UpsertFieldValueParams{
			ProjectID: projectID,
			PlanKey:   key,
			FieldName: name,
			Value:     values[name],
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: %s", ErrNotFound, key)
			}
			p.Logger.Error("Failed to save field value", "key", key, "field", name, "error", err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (p *Postgres) GetFieldValues(ctx context.Context, projectID, key string) (map[string]string, error) {
	rows, err := p.queries.ListFieldValues(ctx, sqlc.ListFieldValuesParams{ProjectID: projectID, PlanKey: key})
	if err != nil {
		p.Logger.Error("can't fetch field values", "key", key, "error", err)
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.FieldName] = r.Value
	}
	return values, nil
}

func fromRow(r sqlc.FiledIssue) FiledIssue {
	issue := FiledIssue{
		ProjectID:  r.ProjectID,
		Key:        r.PlanKey,
		Repository: r.Repository,
		IssueID:    r.IssueID,
		ItemID:     r.ItemID,
	}
	if r.Title.Valid {
		issue.Title = r.Title.String
	}
	if r.CreatedAt.Valid {
		issue.CreatedAt = r.CreatedAt.Time
	}
	return issue
}
