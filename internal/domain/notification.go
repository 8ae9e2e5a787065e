package domain

import "errors"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeSystem  = "system"
)

var (
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrMissingRecipient        = errors.New("recipient is required")
	ErrMissingReference        = errors.New("like notification requires a post reference")
	ErrInvalidPagination       = errors.New("invalid pagination")
	ErrNotFound                = errors.New("notification not found")
	ErrUnauthorized            = errors.New("unauthorized")
)

func IsValidNotificationType(value string) bool {
	switch value {
	case NotificationTypeLike, NotificationTypeComment, NotificationTypeFollow, NotificationTypeSystem:
		return true
	default:
		return false
	}
}

// IsValidationError reports whether err should be surfaced as a client error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidNotificationType) ||
		errors.Is(err, ErrMissingRecipient) ||
		errors.Is(err, ErrMissingReference) ||
		errors.Is(err, ErrInvalidPagination)
}
