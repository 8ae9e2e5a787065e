package notify

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/metrics"
	"github.com/chaizz/lumen-Park/internal/model"
	"github.com/chaizz/lumen-Park/internal/repository"
	"github.com/chaizz/lumen-Park/internal/sse"
)

const (
	placeholderUsername = "Unknown user"
	systemUsername      = "Lumen Park"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeDeduped Outcome = "deduped"
	OutcomeSkipped Outcome = "skipped"
)

type CreateParams struct {
	Type        string
	RecipientID string
	SenderID    *string
	PostID      *string
	CommentID   *string
	Content     *string
}

// Result carries the persisted or deduped row. For OutcomeSkipped the
// notification is zero.
type Result struct {
	Notification model.Notification
	Outcome      Outcome
}

type Service struct {
	store    repository.NotificationRepository
	users    repository.UserDirectory
	registry *sse.Registry
	dedup    *DedupPolicy
	maxLimit int
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewService(cfg *config.Config, store repository.NotificationRepository, users repository.UserDirectory, registry *sse.Registry, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		users:    users,
		registry: registry,
		dedup:    NewDedupPolicy(store),
		maxLimit: cfg.ListMaxLimit,
		metrics:  m,
		log:      logger,
	}
}

// CreateNotification turns a committed like, comment, follow or system event
// into a notification row and pushes it to the recipient's open streams.
// Push failures never fail the call.
func (s *Service) CreateNotification(ctx context.Context, p CreateParams) (Result, error) {
	ctx, span := otel.Tracer("notify").Start(ctx, "notify.create_notification")
	defer span.End()

	p = normalize(p)
	span.SetAttributes(
		attribute.String("notification.type", p.Type),
		attribute.String("notification.recipient_id", p.RecipientID),
	)
	if p.SenderID != nil && *p.SenderID == p.RecipientID && domain.IsValidNotificationType(p.Type) {
		s.metrics.Notifications.WithLabelValues(p.Type, string(OutcomeSkipped)).Inc()
		return Result{Outcome: OutcomeSkipped}, nil
	}

	if err := validateCreate(p); err != nil {
		span.SetStatus(codes.Error, "invalid params")
		return Result{}, err
	}

	result, err := s.dedup.Apply(ctx, p, func(ctx context.Context) (Result, error) {
		return s.persistAndPush(ctx, p)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create notification failed")
		return Result{}, err
	}
	span.SetAttributes(attribute.String("notification.outcome", string(result.Outcome)))
	s.metrics.Notifications.WithLabelValues(p.Type, string(result.Outcome)).Inc()
	return result, nil
}

func (s *Service) persistAndPush(ctx context.Context, p CreateParams) (Result, error) {
	created, err := s.store.CreateNotification(ctx, model.Notification{
		RecipientID: p.RecipientID,
		SenderID:    p.SenderID,
		Type:        p.Type,
		PostID:      p.PostID,
		CommentID:   p.CommentID,
		Content:     p.Content,
	})
	if err != nil {
		s.log.Error("store create notification failed",
			zap.String("recipient_id", p.RecipientID),
			zap.String("type", p.Type),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("create notification: %w", err)
	}

	// the row is committed from here on; everything below only affects the push
	s.push(ctx, created)
	return Result{Notification: created, Outcome: OutcomeCreated}, nil
}

func (s *Service) push(ctx context.Context, n model.Notification) {
	sender := s.resolveSender(ctx, n.SenderID)

	unread, err := s.store.CountUnread(ctx, n.RecipientID)
	if err != nil {
		s.log.Warn("unread count failed, push skipped",
			zap.String("recipient_id", n.RecipientID),
			zap.String("notification_id", n.ID),
			zap.Error(err),
		)
		return
	}

	delivered := s.registry.Publish(n.RecipientID, model.Payload{
		Type:        n.Type,
		UnreadCount: unread,
		Data: model.PayloadData{
			ID:        n.ID,
			Sender:    sender,
			Content:   n.Content,
			PostID:    n.PostID,
			CommentID: n.CommentID,
			CreatedAt: n.CreatedAt,
		},
	})
	s.log.Debug("notification published",
		zap.String("recipient_id", n.RecipientID),
		zap.String("notification_id", n.ID),
		zap.Int("channels", delivered),
	)
}

func (s *Service) resolveSender(ctx context.Context, senderID *string) model.Sender {
	if senderID == nil {
		return model.Sender{Username: systemUsername}
	}
	sender, err := s.users.LookupSender(ctx, *senderID)
	if err != nil {
		s.log.Warn("sender lookup failed, using placeholder", zap.String("sender_id", *senderID), zap.Error(err))
		return model.Sender{ID: *senderID, Username: placeholderUsername}
	}
	return sender
}

// ListNotifications returns a newest-first page with senders resolved.
func (s *Service) ListNotifications(ctx context.Context, recipientID string, page domain.Page) ([]model.NotificationView, error) {
	if err := domain.ValidatePage(page, s.maxLimit); err != nil {
		return nil, err
	}
	rows, err := s.store.ListNotifications(ctx, recipientID, page)
	if err != nil {
		s.log.Error("store list notifications failed",
			zap.String("recipient_id", recipientID),
			zap.Int("skip", page.Skip),
			zap.Int("limit", page.Limit),
			zap.Error(err),
		)
		return nil, err
	}

	cache := make(map[string]model.Sender)
	views := make([]model.NotificationView, 0, len(rows))
	for _, row := range rows {
		view := model.NotificationView{Notification: row}
		if row.SenderID != nil {
			sender, ok := cache[*row.SenderID]
			if !ok {
				sender = s.resolveSender(ctx, row.SenderID)
				cache[*row.SenderID] = sender
			}
			view.Sender = &sender
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.store.CountUnread(ctx, recipientID)
	if err != nil {
		s.log.Error("store count unread failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// MarkAsRead is idempotent. It returns domain.ErrNotFound for a missing or
// foreign row.
func (s *Service) MarkAsRead(ctx context.Context, id, recipientID string) (model.Notification, error) {
	n, err := s.store.MarkRead(ctx, id, recipientID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("store mark read failed", zap.String("id", id), zap.String("recipient_id", recipientID), zap.Error(err))
		}
		return model.Notification{}, err
	}
	return n, nil
}

// MarkAllAsRead returns how many rows moved from unread to read.
func (s *Service) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	changed, err := s.store.MarkAllRead(ctx, recipientID)
	if err != nil {
		s.log.Error("store mark all read failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return 0, err
	}
	return changed, nil
}

// RetractLike removes the unread like for the triple after an unlike. It
// never pushes.
func (s *Service) RetractLike(ctx context.Context, recipientID, senderID, postID string) (int64, error) {
	if recipientID == "" || senderID == "" || postID == "" {
		return 0, domain.ErrMissingReference
	}
	deleted, err := s.store.DeleteUnreadLike(ctx, recipientID, senderID, postID)
	if err != nil {
		s.log.Error("store delete unread like failed",
			zap.String("recipient_id", recipientID),
			zap.String("sender_id", senderID),
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return 0, err
	}
	return deleted, nil
}

func validateCreate(p CreateParams) error {
	if !domain.IsValidNotificationType(p.Type) {
		return domain.ErrInvalidNotificationType
	}
	if p.RecipientID == "" {
		return domain.ErrMissingRecipient
	}
	if p.Type == domain.NotificationTypeLike && (p.SenderID == nil || p.PostID == nil) {
		return domain.ErrMissingReference
	}
	return nil
}

func normalize(p CreateParams) CreateParams {
	p.SenderID = nonEmpty(p.SenderID)
	p.PostID = nonEmpty(p.PostID)
	p.CommentID = nonEmpty(p.CommentID)
	return p
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
