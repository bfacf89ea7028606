package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordconnect/assets"
	"github.com/robalobadob/wordconnect/internal/storage"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-10-18", DateKey(time.Date(2026, 10, 19, 5, 0, 0, 0, loc)))
}

func TestRingRotation(t *testing.T) {
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	a := RingRotation(day, "salt", 4)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 4)
	assert.Equal(t, a, RingRotation(day.Add(3*time.Hour), "salt", 4), "same day, same ring")
	assert.Equal(t, 0, RingRotation(day, "salt", 0))
	assert.Equal(t, 0, RingRotation(day, "salt", 1))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db, assets.Migrations()))

	s := NewStore(db)
	done, err := s.AlreadyCompleted(ctx, "u1", "2026-10-19", "gold")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Level: "gold", Gestures: 6, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-19", Level: "gold", Gestures: 4, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-19", Level: "gold", Gestures: 9, ElapsedMs: 3000}))
	// duplicate ignored
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Level: "gold", Gestures: 4, ElapsedMs: 1}))
	// other day
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u4", Date: "2026-10-18", Level: "gold", Gestures: 4, ElapsedMs: 1}))

	done, err = s.AlreadyCompleted(ctx, "u1", "2026-10-19", "gold")
	require.NoError(t, err)
	assert.True(t, done)

	rows, err := s.Leaderboard(ctx, "2026-10-19", "gold", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "u3", Gestures: 9, ElapsedMs: 3000},
		{UserID: "u2", Gestures: 4, ElapsedMs: 9000},
		{UserID: "u1", Gestures: 6, ElapsedMs: 9000},
	}, rows)

	rows, err = s.Leaderboard(ctx, "2026-10-19", "gold", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
