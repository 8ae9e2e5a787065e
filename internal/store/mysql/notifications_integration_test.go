//go:build integration

package mysql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/db"
	"github.com/chaizz/lumen-Park/internal/directory"
	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
	"github.com/chaizz/lumen-Park/internal/repository"
	"github.com/chaizz/lumen-Park/internal/store/sqlstore"
	"github.com/chaizz/lumen-Park/internal/store/storetest"
)

func TestMySQLStoreIntegration(t *testing.T) {
	ctx := context.Background()
	dsn, cleanup := setupMySQLContainer(t, ctx)
	defer cleanup()

	dbConn, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer dbConn.Close()

	storetest.Run(t, func(t *testing.T) repository.NotificationRepository {
		_, err := dbConn.ExecContext(ctx, "DELETE FROM notifications")
		require.NoError(t, err)
		return sqlstore.New(db.New(dbConn), zap.NewNop())
	})
}

func TestGormDirectoryIntegration(t *testing.T) {
	ctx := context.Background()
	dsn, cleanup := setupMySQLContainer(t, ctx)
	defer cleanup()

	dbConn, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer dbConn.Close()

	_, err = dbConn.ExecContext(ctx, "INSERT INTO users (id, username, avatar) VALUES ('user-a', 'alice', 'a.png')")
	require.NoError(t, err)

	users, err := directory.NewGorm(dbConn, zap.NewNop())
	require.NoError(t, err)

	sender, err := users.LookupSender(ctx, "user-a")
	require.NoError(t, err)
	require.Equal(t, "alice", sender.Username)
	require.Equal(t, "a.png", *sender.Avatar)

	_, err = users.LookupSender(ctx, "ghost")
	require.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestOpenWithBareDSN(t *testing.T) {
	ctx := context.Background()
	dsn, cleanup := setupMySQLContainer(t, ctx)
	defer cleanup()

	bare, _, _ := strings.Cut(dsn, "?")
	dbConn, err := Open(ctx, bare)
	require.NoError(t, err)
	defer dbConn.Close()

	store := sqlstore.New(db.New(dbConn), zap.NewNop())
	sender, post := "user-a", "p-1"
	created, err := store.CreateNotification(ctx, model.Notification{
		RecipientID: "user-b", SenderID: &sender, Type: domain.NotificationTypeLike, PostID: &post,
	})
	require.NoError(t, err)

	found, err := store.FindUnreadLike(ctx, "user-b", sender, post)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Second)
}
