// Package store persists conversion run history.
package store

import (
	"context"

	"github.com/sells-group/leadbridge/internal/model"
)

// Store records and lists conversion runs.
type Store interface {
	RecordRun(ctx context.Context, run model.Run) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	Close() error
}
