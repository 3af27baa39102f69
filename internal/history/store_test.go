package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, outcome := range []string{"success", "failed", "success"} {
		err := store.Record(ctx, Record{
			BuildID:    string(rune('a' + i)),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + 30*time.Second),
			Outcome:    outcome,
			Posts:      i + 1,
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "c", records[0].BuildID)
	require.Equal(t, "b", records[1].BuildID)
	require.Equal(t, 3, records[0].Posts)
	require.Equal(t, 30*time.Second, records[0].Duration())
}

func TestRecent_EmptyStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(context.Background(), Record{
		BuildID:    "x",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Outcome:    "success",
	}))
	require.FileExists(t, path)
}
