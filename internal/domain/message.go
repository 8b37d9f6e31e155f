package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID                uuid.UUID `json:"id"`
	ConversationID    uuid.UUID `json:"conversation_id"`
	SenderID          uuid.UUID `json:"sender_id"`
	SenderRole        string    `json:"sender_role"`
	Content           string    `json:"content"`
	TranslatedContent *string   `json:"translated_content"`
	MessageType       string    `json:"message_type"`
	AudioData         *string   `json:"audio_data,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

const (
	MessageTypeText  = "text"
	MessageTypeAudio = "audio"
)

// AudioPlaceholder - содержимое текстового поля для голосовых сообщений
const AudioPlaceholder = "[Audio Message]"

// NeedsTranslation определяет, нужен ли фоновый перевод сообщения
func (m *Message) NeedsTranslation(sourceLang, targetLang string) bool {
	if m.MessageType != MessageTypeText {
		return false
	}
	if m.Content == AudioPlaceholder {
		return false
	}
	return sourceLang != targetLang
}
