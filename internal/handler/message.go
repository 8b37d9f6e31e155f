package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medical_chat/internal/service"
	apperrors "medical_chat/pkg/errors"
	"medical_chat/pkg/logger"
)

type MessageHandler struct {
	messageService service.MessageService
	log            logger.Logger
}

func NewMessageHandler(messageService service.MessageService, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		log:            log,
	}
}

type CreateMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" binding:"required"`
	Content        string    `json:"content" binding:"required"`
	Type           string    `json:"type" binding:"required"`
	AudioData      *string   `json:"audio_data"`
}

// Create сохраняет сообщение и отвечает сразу; перевод придет в комнату
// отдельным событием message_translated
func (h *MessageHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userRole := c.GetString("user_role")

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.SendMessage(c.Request.Context(), service.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       userID.(uuid.UUID),
		SenderRole:     userRole,
		Content:        req.Content,
		Type:           req.Type,
		AudioData:      req.AudioData,
	})
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}
