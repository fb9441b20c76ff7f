package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the ledger has no entry for a plan key.
var ErrNotFound = errors.New("not found in ledger")

// FiledIssue records an issue created from a plan entry and the project item it became.
type FiledIssue struct {
	ProjectID  string
	Key        string
	Repository string
	IssueID    string
	ItemID     string
	Title      string
	CreatedAt  time.Time
}

type Store interface {
	Close()
	GetFiledIssue(ctx context.Context, projectID, key string) (*FiledIssue, error)
	ListFiledIssues(ctx context.Context, projectID string) ([]FiledIssue, error)
	SaveFiledIssue(ctx context.Context, issue FiledIssue) error
	// SaveFieldValues records the raw values last applied to an item, all or nothing.
	SaveFieldValues(ctx context.Context, projectID, key string, values map[string]string) error
	GetFieldValues(ctx context.Context, projectID, key string) (map[string]string, error)
}
