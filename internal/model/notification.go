package model

import "time"

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    *string   `json:"sender_id"`
	Type        string    `json:"type"`
	PostID      *string   `json:"post_id"`
	CommentID   *string   `json:"comment_id"`
	Content     *string   `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sender is the display identity of the user who triggered a notification.
type Sender struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// NotificationView is a notification with its sender resolved for presentation.
type NotificationView struct {
	Notification
	Sender *Sender `json:"sender"`
}

// Payload is the message pushed to every open stream of a recipient.
type Payload struct {
	Type        string      `json:"type"`
	UnreadCount int64       `json:"unread_count"`
	Data        PayloadData `json:"data"`
}

type PayloadData struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   *string   `json:"content"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
