package ws

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Имена событий real-time протокола
const (
	EventJoinConversation  = "join_conversation"
	EventSendMessage       = "send_message"
	EventTyping            = "typing"
	EventMessageCreated    = "message_created"
	EventMessageTranslated = "message_translated"
	EventUserTyping        = "user_typing"
	EventError             = "error"
)

// Envelope - общий конверт входящих и исходящих сообщений
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinConversationPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
	AudioData      *string   `json:"audio_data,omitempty"`
}

type TypingPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type MessageTranslatedPayload struct {
	MessageID   uuid.UUID `json:"message_id"`
	Translation string    `json:"translation"`
}

type UserTypingPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewEnvelope собирает конверт с сериализованной полезной нагрузкой
func NewEnvelope(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
