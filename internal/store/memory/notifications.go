package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
)

func (s *Store) CreateNotification(_ context.Context, notification model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = s.now()
	}
	notification.IsRead = false
	s.records = append(s.records, notification)
	return notification, nil
}

func (s *Store) FindUnreadLike(_ context.Context, recipientID, senderID, postID string) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if isUnreadLike(s.records[i], recipientID, senderID, postID) {
			return s.records[i], nil
		}
	}
	return model.Notification{}, domain.ErrNotFound
}

func (s *Store) ListNotifications(_ context.Context, recipientID string, page domain.Page) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Notification
	for _, record := range s.records {
		if record.RecipientID != recipientID {
			continue
		}
		if page.Type != "" && record.Type != page.Type {
			continue
		}
		matched = append(matched, record)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if page.Skip >= len(matched) {
		return []model.Notification{}, nil
	}
	matched = matched[page.Skip:]
	if page.Limit > 0 && len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, nil
}

func (s *Store) CountUnread(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, record := range s.records {
		if record.RecipientID == recipientID && !record.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkRead(_ context.Context, id, recipientID string) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id && s.records[i].RecipientID == recipientID {
			s.records[i].IsRead = true
			return s.records[i], nil
		}
	}
	return model.Notification{}, domain.ErrNotFound
}

func (s *Store) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for i := range s.records {
		if s.records[i].RecipientID == recipientID && !s.records[i].IsRead {
			s.records[i].IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (s *Store) DeleteUnreadLike(_ context.Context, recipientID, senderID, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	var deleted int64
	for _, record := range s.records {
		if isUnreadLike(record, recipientID, senderID, postID) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return deleted, nil
}

func isUnreadLike(n model.Notification, recipientID, senderID, postID string) bool {
	return n.Type == domain.NotificationTypeLike &&
		!n.IsRead &&
		n.RecipientID == recipientID &&
		n.SenderID != nil && *n.SenderID == senderID &&
		n.PostID != nil && *n.PostID == postID
}
