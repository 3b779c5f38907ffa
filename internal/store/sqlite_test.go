package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadbridge/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "leadbridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestRecordAndListRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := model.Run{
		ID:            uuid.NewString(),
		Source:        "leads.csv",
		Status:        model.RunStatusComplete,
		People:        42,
		Organizations: 7,
		RowsRead:      50,
		RowsSkipped:   8,
		CreatedAt:     time.Now().UTC().Add(-time.Minute),
	}
	second := model.Run{
		ID:        uuid.NewString(),
		Source:    "leads2.csv",
		Status:    model.RunStatusFailed,
		Error:     "missing columns: Email",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, st.RecordRun(ctx, first))
	require.NoError(t, st.RecordRun(ctx, second))

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, model.RunStatusFailed, runs[0].Status)
	assert.Equal(t, "missing columns: Email", runs[0].Error)

	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 42, runs[1].People)
	assert.Equal(t, 7, runs[1].Organizations)
	assert.Equal(t, 50, runs[1].RowsRead)
	assert.Equal(t, 8, runs[1].RowsSkipped)
}

func TestListRuns_Limit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.RecordRun(ctx, model.Run{
			ID:        uuid.NewString(),
			Source:    "leads.csv",
			Status:    model.RunStatusComplete,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}

	runs, err := st.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListRuns_Empty(t *testing.T) {
	st := newTestStore(t)

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
