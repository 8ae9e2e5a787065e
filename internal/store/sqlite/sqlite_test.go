package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/db"
	"github.com/chaizz/lumen-Park/internal/repository"
	"github.com/chaizz/lumen-Park/internal/store/sqlstore"
	"github.com/chaizz/lumen-Park/internal/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.NotificationRepository {
		sqlDB, err := Open(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })
		return sqlstore.New(db.New(sqlDB), zap.NewNop())
	})
}

func TestOpenAppliesSchemaIdempotently(t *testing.T) {
	path := t.TempDir() + "/notifications.db"
	ctx := context.Background()

	first, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = first.ExecContext(ctx, `INSERT INTO users (id, username) VALUES ('user-a', 'alice')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	var username string
	require.NoError(t, second.QueryRowContext(ctx, `SELECT username FROM users WHERE id = 'user-a'`).Scan(&username))
	require.Equal(t, "alice", username)
}
