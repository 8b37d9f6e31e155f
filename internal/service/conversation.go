package service

import (
	"context"

	"github.com/google/uuid"

	"medical_chat/internal/domain"
	"medical_chat/internal/repository"
	apperrors "medical_chat/pkg/errors"
	"medical_chat/pkg/logger"
)

type ConversationService interface {
	GetForParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*domain.Conversation, error)
	UpdateLanguage(ctx context.Context, conversationID, userID uuid.UUID, role, language string) (*domain.Conversation, error)
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
	log              logger.Logger
}

func NewConversationService(conversationRepo repository.ConversationRepository, log logger.Logger) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		log:              log,
	}
}

// GetForParticipant возвращает разговор только его участнику
func (s *conversationService) GetForParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*domain.Conversation, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.IsParticipant(userID) {
		return nil, apperrors.ErrConversationNotFound
	}
	return conversation, nil
}

func (s *conversationService) UpdateLanguage(ctx context.Context, conversationID, userID uuid.UUID, role, language string) (*domain.Conversation, error) {
	if len(language) < 2 || len(language) > 5 {
		return nil, apperrors.ErrBadRequest
	}

	conversation, err := s.GetForParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.conversationRepo.UpdateLanguage(ctx, conversationID, role, language); err != nil {
		return nil, err
	}

	// Уже переведенные сообщения не перепереводятся: смена языка
	// действует только на последующие сообщения
	if role == domain.RoleDoctor {
		conversation.DoctorLanguage = language
	} else {
		conversation.PatientLanguage = language
	}

	return conversation, nil
}
