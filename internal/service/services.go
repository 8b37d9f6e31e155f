package service

import (
	"medical_chat/internal/config"
	"medical_chat/internal/repository"
	"medical_chat/pkg/logger"
)

type Services struct {
	Conversation ConversationService
	Message      MessageService
	RateLimit    RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, broadcaster Broadcaster, translator Translator, log logger.Logger) *Services {
	return &Services{
		Conversation: NewConversationService(repos.Conversation, log),
		Message:      NewMessageService(repos.Message, repos.Conversation, broadcaster, translator, log),
		RateLimit:    NewRateLimitService(repos.RateLimit, log),
	}
}
