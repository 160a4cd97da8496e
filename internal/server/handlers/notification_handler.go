package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

// MessageSender pushes WhatsApp text messages.
type MessageSender interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// NotificationHandler lets QA staff push manual WhatsApp notices.
type NotificationHandler struct {
	svc    MessageSender
	logger *zap.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(svc MessageSender, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{svc: svc, logger: logger}
}

// Send handles POST /notifications.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		Error(c, http.StatusBadGateway, "unable to send message")
		return
	}

	c.JSON(http.StatusAccepted, Response{Code: 0, Message: "accepted"})
}
