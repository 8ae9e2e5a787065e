package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/db"
	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
)

func (s *Store) CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = s.now()
	}
	notification.IsRead = false
	err := s.queries.CreateNotification(ctx, db.CreateNotificationParams{
		ID:          notification.ID,
		RecipientID: notification.RecipientID,
		SenderID:    nullString(notification.SenderID),
		Type:        notification.Type,
		PostID:      nullString(notification.PostID),
		CommentID:   nullString(notification.CommentID),
		Content:     nullString(notification.Content),
		CreatedAt:   notification.CreatedAt,
	})
	if err != nil {
		s.log.Error("sql create notification failed",
			zap.String("recipient_id", notification.RecipientID),
			zap.String("type", notification.Type),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	return notification, nil
}

func (s *Store) FindUnreadLike(ctx context.Context, recipientID, senderID, postID string) (model.Notification, error) {
	row, err := s.queries.FindUnreadLike(ctx, db.FindUnreadLikeParams{
		RecipientID: recipientID,
		SenderID:    sql.NullString{String: senderID, Valid: true},
		PostID:      sql.NullString{String: postID, Valid: true},
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, domain.ErrNotFound
	}
	if err != nil {
		s.log.Error("sql find unread like failed",
			zap.String("recipient_id", recipientID),
			zap.String("sender_id", senderID),
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	return toModel(row), nil
}

func (s *Store) ListNotifications(ctx context.Context, recipientID string, page domain.Page) ([]model.Notification, error) {
	var (
		rows []db.Notification
		err  error
	)
	if page.Type == "" {
		rows, err = s.queries.ListNotifications(ctx, db.ListNotificationsParams{
			RecipientID: recipientID,
			Limit:       int32(page.Limit),
			Offset:      int32(page.Skip),
		})
	} else {
		rows, err = s.queries.ListNotificationsByType(ctx, db.ListNotificationsByTypeParams{
			RecipientID: recipientID,
			Type:        page.Type,
			Limit:       int32(page.Limit),
			Offset:      int32(page.Skip),
		})
	}
	if err != nil {
		s.log.Error("sql list notifications failed",
			zap.String("recipient_id", recipientID),
			zap.Int("skip", page.Skip),
			zap.Int("limit", page.Limit),
			zap.String("type", page.Type),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, toModel(row))
	}
	return result, nil
}

func (s *Store) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.queries.CountUnread(ctx, recipientID)
	if err != nil {
		s.log.Error("sql count unread failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Store) MarkRead(ctx context.Context, id, recipientID string) (model.Notification, error) {
	params := db.MarkReadParams{ID: id, RecipientID: recipientID}
	if err := s.queries.MarkRead(ctx, params); err != nil {
		s.log.Error("sql mark read failed", zap.String("id", id), zap.String("recipient_id", recipientID), zap.Error(err))
		return model.Notification{}, err
	}
	// MySQL reports zero affected rows for an already-read row, so ownership is
	// decided by reading the row back.
	row, err := s.queries.GetNotification(ctx, db.GetNotificationParams{ID: id, RecipientID: recipientID})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, domain.ErrNotFound
	}
	if err != nil {
		s.log.Error("sql get notification failed", zap.String("id", id), zap.Error(err))
		return model.Notification{}, err
	}
	return toModel(row), nil
}

func (s *Store) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result, err := s.queries.MarkAllRead(ctx, recipientID)
	if err != nil {
		s.log.Error("sql mark all read failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) DeleteUnreadLike(ctx context.Context, recipientID, senderID, postID string) (int64, error) {
	result, err := s.queries.DeleteUnreadLike(ctx, db.DeleteUnreadLikeParams{
		RecipientID: recipientID,
		SenderID:    sql.NullString{String: senderID, Valid: true},
		PostID:      sql.NullString{String: postID, Valid: true},
	})
	if err != nil {
		s.log.Error("sql delete unread like failed",
			zap.String("recipient_id", recipientID),
			zap.String("sender_id", senderID),
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return 0, err
	}
	return result.RowsAffected()
}

func toModel(row db.Notification) model.Notification {
	return model.Notification{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		SenderID:    stringPtr(row.SenderID),
		Type:        row.Type,
		PostID:      stringPtr(row.PostID),
		CommentID:   stringPtr(row.CommentID),
		Content:     stringPtr(row.Content),
		IsRead:      row.IsRead,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
