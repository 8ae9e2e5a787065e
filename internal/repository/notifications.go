package repository

import (
	"context"

	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error)
	// FindUnreadLike returns domain.ErrNotFound when no unread like exists for the triple.
	FindUnreadLike(ctx context.Context, recipientID, senderID, postID string) (model.Notification, error)
	ListNotifications(ctx context.Context, recipientID string, page domain.Page) ([]model.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead returns domain.ErrNotFound when the row is missing or owned by someone else.
	MarkRead(ctx context.Context, id, recipientID string) (model.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	DeleteUnreadLike(ctx context.Context, recipientID, senderID, postID string) (int64, error)
}

// UserDirectory resolves display identities. Implementations may fail; callers degrade.
type UserDirectory interface {
	LookupSender(ctx context.Context, userID string) (model.Sender, error)
}
