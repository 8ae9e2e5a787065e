package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/auth"
	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/http/dto"
	"github.com/chaizz/lumen-Park/internal/http/resp"
	"github.com/chaizz/lumen-Park/internal/queue"
	"github.com/chaizz/lumen-Park/internal/service/notify"
	"github.com/chaizz/lumen-Park/internal/sse"
)

type Handler struct {
	cfg      *config.Config
	svc      *notify.Service
	streamer *sse.Streamer
	log      *zap.Logger
	pub      queue.Publisher
}

func NewHandler(cfg *config.Config, svc *notify.Service, streamer *sse.Streamer, logger *zap.Logger, publisher queue.Publisher) *Handler {
	return &Handler{cfg: cfg, svc: svc, streamer: streamer, log: logger, pub: publisher}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "skip must be >= 0, limit >= 1, type one of: like, comment, follow, system"})
		return
	}
	page := domain.Page{Limit: h.cfg.ListDefaultLimit, Type: q.Type}
	if q.Skip != nil {
		page.Skip = *q.Skip
	}
	if q.Limit != nil {
		page.Limit = *q.Limit
	}

	views, err := h.svc.ListNotifications(c.Request.Context(), auth.UserID(c), page)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	n, err := h.svc.MarkAsRead(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notification as read"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	changed, err := h.svc.MarkAllAsRead(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notifications as read"})
		return
	}
	c.JSON(http.StatusOK, dto.ReadAllResponse{Code: resp.CodeOK, Updated: changed})
}

// Stream authenticates from the token query parameter because EventSource
// cannot set headers.
func (h *Handler) Stream(c *gin.Context) {
	if _, ok := c.Writer.(http.Flusher); !ok {
		h.log.Error("streaming unsupported")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	started := false
	err := h.streamer.Stream(c.Request.Context(), c.Query("token"), c.Writer, func() {
		started = true
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
	})
	if err == nil {
		return
	}
	if started {
		h.log.Warn("stream ended with error", zap.String("client_ip", c.ClientIP()), zap.Error(err))
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: resp.CodeUnauthorized, Message: "could not validate credentials"})
	case errors.Is(err, sse.ErrRegistryClosed):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Code: resp.CodeUnavailable, Message: "server shutting down"})
	default:
		h.log.Error("stream open failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to open stream"})
	}
}

// CreateNotification is the synchronous entry point for the like, comment and
// follow services.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type and recipient_id are required; type one of: like, comment, follow, system"})
		return
	}

	result, err := h.svc.CreateNotification(c.Request.Context(), notify.CreateParams{
		Type:        req.Type,
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		PostID:      req.PostID,
		CommentID:   req.CommentID,
		Content:     req.Content,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to create notification"})
		return
	}

	switch result.Outcome {
	case notify.OutcomeSkipped:
		c.Status(http.StatusNoContent)
	case notify.OutcomeDeduped:
		c.JSON(http.StatusOK, result.Notification)
	default:
		c.JSON(http.StatusCreated, result.Notification)
	}
}

// PublishNotification enqueues the event on the exchange instead of creating it inline.
func (h *Handler) PublishNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type and recipient_id are required; type one of: like, comment, follow, system"})
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		h.log.Error("publish payload marshal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish notification"})
		return
	}

	prefix := h.cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "notification"
	}
	routingKey := prefix + "." + req.Type
	if err := h.pub.Publish(c.Request.Context(), payload, routingKey); err != nil {
		h.log.Error("publish notification failed",
			zap.String("recipient_id", req.RecipientID),
			zap.String("type", req.Type),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish notification"})
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeQueued, Message: "queued"})
}

// RetractLike is called by the like service after an unlike.
func (h *Handler) RetractLike(c *gin.Context) {
	var req dto.RetractLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "recipient_id, sender_id, post_id are required"})
		return
	}
	deleted, err := h.svc.RetractLike(c.Request.Context(), req.RecipientID, req.SenderID, req.PostID)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to retract like"})
		return
	}
	c.JSON(http.StatusOK, dto.RetractLikeResponse{Code: resp.CodeOK, Deleted: deleted})
}
