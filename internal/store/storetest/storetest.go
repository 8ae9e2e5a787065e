// Package storetest holds the behaviour every NotificationRepository must share.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
	"github.com/chaizz/lumen-Park/internal/repository"
)

// Factory returns an empty repository for one subtest.
type Factory func(t *testing.T) repository.NotificationRepository

func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAssignsIdentity", func(t *testing.T) { testCreate(t, newStore(t)) })
	t.Run("ListNewestFirst", func(t *testing.T) { testList(t, newStore(t)) })
	t.Run("ListByType", func(t *testing.T) { testListByType(t, newStore(t)) })
	t.Run("CountAndMark", func(t *testing.T) { testCountAndMark(t, newStore(t)) })
	t.Run("MarkReadOwnership", func(t *testing.T) { testMarkReadOwnership(t, newStore(t)) })
	t.Run("UnreadLike", func(t *testing.T) { testUnreadLike(t, newStore(t)) })
}

func ptr(s string) *string { return &s }

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, store repository.NotificationRepository, n model.Notification) model.Notification {
	t.Helper()
	created, err := store.CreateNotification(context.Background(), n)
	require.NoError(t, err)
	return created
}

func testCreate(t *testing.T, store repository.NotificationRepository) {
	created := seed(t, store, model.Notification{
		RecipientID: "user-b",
		SenderID:    ptr("user-a"),
		Type:        domain.NotificationTypeComment,
		PostID:      ptr("p-1"),
		CommentID:   ptr("c-1"),
		Content:     ptr("lovely"),
	})
	require.NotEmpty(t, created.ID)
	require.False(t, created.IsRead)
	require.False(t, created.CreatedAt.IsZero())

	rows, err := store.ListNotifications(context.Background(), "user-b", domain.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got := rows[0]
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "user-a", *got.SenderID)
	require.Equal(t, "p-1", *got.PostID)
	require.Equal(t, "c-1", *got.CommentID)
	require.Equal(t, "lovely", *got.Content)
	require.True(t, created.CreatedAt.Equal(got.CreatedAt))

	system := seed(t, store, model.Notification{RecipientID: "user-b", Type: domain.NotificationTypeSystem})
	rows, err = store.ListNotifications(context.Background(), "user-b", domain.Page{Limit: 10, Type: domain.NotificationTypeSystem})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, system.ID, rows[0].ID)
	require.Nil(t, rows[0].SenderID)
	require.Nil(t, rows[0].PostID)
	require.Nil(t, rows[0].Content)
}

func testList(t *testing.T, store repository.NotificationRepository) {
	ctx := context.Background()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		n := seed(t, store, model.Notification{
			RecipientID: "user-b",
			SenderID:    ptr("user-a"),
			Type:        domain.NotificationTypeFollow,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		ids = append(ids, n.ID)
	}
	seed(t, store, model.Notification{RecipientID: "user-c", Type: domain.NotificationTypeSystem, CreatedAt: base})

	rows, err := store.ListNotifications(ctx, "user-b", domain.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for i, row := range rows {
		require.Equal(t, ids[4-i], row.ID)
		require.Equal(t, "user-b", row.RecipientID)
	}

	rows, err = store.ListNotifications(ctx, "user-b", domain.Page{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, ids[3], rows[0].ID)
	require.Equal(t, ids[2], rows[1].ID)

	rows, err = store.ListNotifications(ctx, "user-b", domain.Page{Skip: 5, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = store.ListNotifications(ctx, "nobody", domain.Page{Limit: 2})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func testListByType(t *testing.T, store repository.NotificationRepository) {
	ctx := context.Background()
	types := []string{
		domain.NotificationTypeLike,
		domain.NotificationTypeComment,
		domain.NotificationTypeLike,
		domain.NotificationTypeFollow,
	}
	for i, typ := range types {
		seed(t, store, model.Notification{
			RecipientID: "user-b",
			SenderID:    ptr("user-a"),
			Type:        typ,
			PostID:      ptr(fmt.Sprintf("p-%d", i)),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
	}

	rows, err := store.ListNotifications(ctx, "user-b", domain.Page{Limit: 10, Type: domain.NotificationTypeLike})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "p-2", *rows[0].PostID)
	require.Equal(t, "p-0", *rows[1].PostID)

	rows, err = store.ListNotifications(ctx, "user-b", domain.Page{Skip: 1, Limit: 10, Type: domain.NotificationTypeLike})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p-0", *rows[0].PostID)
}

func testCountAndMark(t *testing.T, store repository.NotificationRepository) {
	ctx := context.Background()
	var ids []string
	for i := 0; i < 4; i++ {
		n := seed(t, store, model.Notification{RecipientID: "user-b", Type: domain.NotificationTypeSystem, CreatedAt: base.Add(time.Duration(i) * time.Second)})
		ids = append(ids, n.ID)
	}
	seed(t, store, model.Notification{RecipientID: "user-c", Type: domain.NotificationTypeSystem})

	count, err := store.CountUnread(ctx, "user-b")
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	read, err := store.MarkRead(ctx, ids[0], "user-b")
	require.NoError(t, err)
	require.True(t, read.IsRead)
	require.Equal(t, ids[0], read.ID)

	again, err := store.MarkRead(ctx, ids[0], "user-b")
	require.NoError(t, err)
	require.True(t, again.IsRead)

	count, err = store.CountUnread(ctx, "user-b")
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	changed, err := store.MarkAllRead(ctx, "user-b")
	require.NoError(t, err)
	require.Equal(t, int64(3), changed)

	changed, err = store.MarkAllRead(ctx, "user-b")
	require.NoError(t, err)
	require.Zero(t, changed)

	count, err = store.CountUnread(ctx, "user-b")
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = store.CountUnread(ctx, "user-c")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func testMarkReadOwnership(t *testing.T, store repository.NotificationRepository) {
	ctx := context.Background()
	n := seed(t, store, model.Notification{RecipientID: "user-b", Type: domain.NotificationTypeSystem})

	_, err := store.MarkRead(ctx, n.ID, "user-c")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.MarkRead(ctx, "does-not-exist", "user-b")
	require.ErrorIs(t, err, domain.ErrNotFound)

	count, err := store.CountUnread(ctx, "user-b")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func testUnreadLike(t *testing.T, store repository.NotificationRepository) {
	ctx := context.Background()

	_, err := store.FindUnreadLike(ctx, "user-b", "user-a", "p-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	like := seed(t, store, model.Notification{
		RecipientID: "user-b", SenderID: ptr("user-a"), Type: domain.NotificationTypeLike, PostID: ptr("p-1"),
	})
	// a comment on the same post never matches
	seed(t, store, model.Notification{
		RecipientID: "user-b", SenderID: ptr("user-a"), Type: domain.NotificationTypeComment, PostID: ptr("p-1"),
	})

	found, err := store.FindUnreadLike(ctx, "user-b", "user-a", "p-1")
	require.NoError(t, err)
	require.Equal(t, like.ID, found.ID)

	_, err = store.FindUnreadLike(ctx, "user-b", "user-a", "p-2")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.FindUnreadLike(ctx, "user-c", "user-a", "p-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.MarkRead(ctx, like.ID, "user-b")
	require.NoError(t, err)
	_, err = store.FindUnreadLike(ctx, "user-b", "user-a", "p-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := store.DeleteUnreadLike(ctx, "user-b", "user-a", "p-1")
	require.NoError(t, err)
	require.Zero(t, deleted, "read likes are kept")

	seed(t, store, model.Notification{
		RecipientID: "user-b", SenderID: ptr("user-a"), Type: domain.NotificationTypeLike, PostID: ptr("p-1"),
	})
	deleted, err = store.DeleteUnreadLike(ctx, "user-b", "user-a", "p-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	rows, err := store.ListNotifications(ctx, "user-b", domain.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
