package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/db"
	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
	"github.com/chaizz/lumen-Park/internal/service/notify"
	"github.com/chaizz/lumen-Park/internal/store/sqlite"
	"github.com/chaizz/lumen-Park/internal/store/sqlstore"
)

// A client that was offline reconciles by listing; pushes are never replayed.
func TestHistoryAfterReconnect(t *testing.T) {
	sqlDB, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	s := newStack(t, baseConfig(), sqlstore.New(db.New(sqlDB), zap.NewNop()), &noopPublisher{})

	ctx := context.Background()
	alice := "alice"
	var ids []string
	for i := 0; i < 3; i++ {
		post := fmt.Sprintf("p-%d", i)
		res, err := s.svc.CreateNotification(ctx, notify.CreateParams{
			Type: domain.NotificationTypeLike, RecipientID: "bob", SenderID: &alice, PostID: &post,
		})
		require.NoError(t, err)
		ids = append(ids, res.Notification.ID)
		time.Sleep(2 * time.Millisecond)
	}
	_, err = s.svc.CreateNotification(ctx, notify.CreateParams{Type: domain.NotificationTypeFollow, RecipientID: "bob", SenderID: &alice})
	require.NoError(t, err)

	stream := s.openStream(t, "bob")
	stream.requireSilent(t, 100*time.Millisecond)

	resp := s.do(t, http.MethodGet, "/notifications?type=like&limit=2", "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page []model.NotificationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 2)
	require.Equal(t, ids[2], page[0].ID)
	require.Equal(t, ids[1], page[1].ID)
	require.Equal(t, "Alice", page[0].Sender.Username)

	resp = s.do(t, http.MethodGet, "/notifications?type=like&skip=2&limit=2", "bob", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 1)
	require.Equal(t, ids[0], page[0].ID)

	resp = s.do(t, http.MethodPost, "/notifications/"+ids[0]+"/read", "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodPost, "/notifications/"+ids[0]+"/read", "alice", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/notifications/unread-count", "bob", nil)
	var count struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&count))
	require.Equal(t, int64(3), count.Count)

	resp = s.do(t, http.MethodPost, "/notifications/read-all", "bob", nil)
	var readAll struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&readAll))
	require.Equal(t, int64(3), readAll.Updated)

	// a like on a post whose earlier like was read starts a new row
	post := "p-0"
	res, err := s.svc.CreateNotification(ctx, notify.CreateParams{
		Type: domain.NotificationTypeLike, RecipientID: "bob", SenderID: &alice, PostID: &post,
	})
	require.NoError(t, err)
	require.Equal(t, notify.OutcomeCreated, res.Outcome)

	var pushed model.Payload
	require.NoError(t, json.Unmarshal([]byte(stream.nextData(t, 2*time.Second)), &pushed))
	require.Equal(t, res.Notification.ID, pushed.Data.ID)
	require.Equal(t, int64(1), pushed.UnreadCount)
}
