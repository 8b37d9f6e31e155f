package handler

import (
	"medical_chat/internal/config"
	"medical_chat/internal/service"
	"medical_chat/internal/ws"
	"medical_chat/pkg/logger"
)

type Handlers struct {
	Health       *HealthHandler
	Message      *MessageHandler
	Conversation *ConversationHandler
	WebSocket    *WebSocketHandler
}

func NewHandlers(services *service.Services, hub *ws.Hub, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Message:      NewMessageHandler(services.Message, log),
		Conversation: NewConversationHandler(services.Conversation, log),
		WebSocket:    NewWebSocketHandler(hub, services.Message, services.Conversation, cfg.JWT, log),
	}
}
