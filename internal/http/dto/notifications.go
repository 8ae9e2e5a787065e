package dto

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ListQuery struct {
	Skip  *int   `form:"skip" binding:"omitempty,gte=0"`
	Limit *int   `form:"limit" binding:"omitempty,gte=1"`
	Type  string `form:"type" binding:"omitempty,oneof=like comment follow system"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type ReadAllResponse struct {
	Code    string `json:"code"`
	Updated int64  `json:"updated"`
}

// CreateNotificationRequest is sent by the like, comment and follow services
// after their own write has committed.
type CreateNotificationRequest struct {
	Type        string  `json:"type" binding:"required,oneof=like comment follow system"`
	RecipientID string  `json:"recipient_id" binding:"required"`
	SenderID    *string `json:"sender_id"`
	PostID      *string `json:"post_id"`
	CommentID   *string `json:"comment_id"`
	Content     *string `json:"content"`
}

type RetractLikeRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	SenderID    string `json:"sender_id" binding:"required"`
	PostID      string `json:"post_id" binding:"required"`
}

type RetractLikeResponse struct {
	Code    string `json:"code"`
	Deleted int64  `json:"deleted"`
}
