package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"medical_chat/internal/domain"
	"medical_chat/internal/repository"
	"medical_chat/internal/ws"
	apperrors "medical_chat/pkg/errors"
	"medical_chat/pkg/logger"
)

// Broadcaster рассылает события всем соединениям комнаты разговора
type Broadcaster interface {
	BroadcastToRoom(conversationID uuid.UUID, event string, payload interface{}) error
}

// Translator переводит текст; с точки зрения конвейера никогда не ошибается
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) string
}

type SendMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	SenderRole     string
	Content        string
	Type           string
	AudioData      *string
}

type MessageService interface {
	SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error)
}

type messageService struct {
	messageRepo      repository.MessageRepository
	conversationRepo repository.ConversationRepository
	broadcaster      Broadcaster
	translator       Translator
	log              logger.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	conversationRepo repository.ConversationRepository,
	broadcaster Broadcaster,
	translator Translator,
	log logger.Logger,
) MessageService {
	return &messageService{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		broadcaster:      broadcaster,
		translator:       translator,
		log:              log,
	}
}

// SendMessage сохраняет сообщение, немедленно рассылает его в комнату и
// планирует фоновый перевод. Вызывающий код получает сообщение без перевода
// сразу после рассылки оригинала - перевод его не блокирует.
func (s *messageService) SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error) {
	if input.Type != domain.MessageTypeText && input.Type != domain.MessageTypeAudio {
		return nil, apperrors.ErrBadRequest
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.ErrBadRequest
	}

	conversation, err := s.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.IsParticipant(input.SenderID) {
		// Не раскрываем существование чужого разговора
		return nil, apperrors.ErrConversationNotFound
	}

	// Языки фиксируются в момент отправки и не перечитываются позже
	sourceLang := conversation.LanguageFor(input.SenderRole)
	targetLang := conversation.LanguageForOther(input.SenderRole)

	message := &domain.Message{
		ConversationID: input.ConversationID,
		SenderID:       input.SenderID,
		SenderRole:     input.SenderRole,
		Content:        input.Content,
		MessageType:    input.Type,
		AudioData:      input.AudioData,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.conversationRepo.Touch(ctx, input.ConversationID); err != nil {
		s.log.Warn("Failed to bump conversation timestamp", "error", err, "conversation_id", input.ConversationID)
	}

	// Оригинал рассылается безусловно, до любой попытки перевода
	if err := s.broadcaster.BroadcastToRoom(input.ConversationID, ws.EventMessageCreated, message); err != nil {
		s.log.Error("Failed to broadcast message", "error", err, "message_id", message.ID)
	}

	if message.NeedsTranslation(sourceLang, targetLang) {
		go s.enrichWithTranslation(message.ID, input.ConversationID, input.Content, sourceLang, targetLang)
	}

	return message, nil
}

// enrichWithTranslation выполняется в отдельной горутине, отвязанной от
// запроса. Ошибки здесь никогда не доходят до отправителя: неудачная запись
// перевода логируется и событие просто не рассылается.
func (s *messageService) enrichWithTranslation(messageID, conversationID uuid.UUID, content, sourceLang, targetLang string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Panic in translation task", "panic", r, "message_id", messageID)
		}
	}()

	ctx := context.Background()

	translated := s.translator.Translate(ctx, content, sourceLang, targetLang)

	if err := s.messageRepo.SetTranslatedContent(ctx, messageID, translated); err != nil {
		s.log.Error("Failed to store translation, dropping it", "error", err, "message_id", messageID)
		return
	}

	payload := ws.MessageTranslatedPayload{
		MessageID:   messageID,
		Translation: translated,
	}
	if err := s.broadcaster.BroadcastToRoom(conversationID, ws.EventMessageTranslated, payload); err != nil {
		s.log.Error("Failed to broadcast translation", "error", err, "message_id", messageID)
	}
}
