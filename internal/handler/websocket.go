package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"medical_chat/internal/config"
	"medical_chat/internal/service"
	"medical_chat/internal/ws"
	"medical_chat/pkg/jwt"
	"medical_chat/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене нужно проверять origin
	},
}

type WebSocketHandler struct {
	hub                 *ws.Hub
	messageService      service.MessageService
	conversationService service.ConversationService
	jwtCfg              config.JWTConfig
	log                 logger.Logger
}

func NewWebSocketHandler(
	hub *ws.Hub,
	messageService service.MessageService,
	conversationService service.ConversationService,
	jwtCfg config.JWTConfig,
	log logger.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                 hub,
		messageService:      messageService,
		conversationService: conversationService,
		jwtCfg:              jwtCfg,
		log:                 log,
	}
}

// HandleConnection аутентифицирует и поднимает WebSocket-соединение.
// Без валидного токена соединение не устанавливается - анонимных сессий нет.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication token required"})
		return
	}

	claims, err := jwt.ValidateAccessToken(token, h.jwtCfg.AccessSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID, claims.Role)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump(h.handleEvent)
}

func (h *WebSocketHandler) handleEvent(client *ws.Client, raw []byte) {
	var envelope ws.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		client.Send(ws.EventError, ws.ErrorPayload{Message: "malformed event"})
		return
	}

	switch envelope.Event {
	case ws.EventJoinConversation:
		h.handleJoin(client, envelope.Data)
	case ws.EventSendMessage:
		h.handleSendMessage(client, envelope.Data)
	case ws.EventTyping:
		h.handleTyping(client, envelope.Data)
	default:
		client.Send(ws.EventError, ws.ErrorPayload{Message: "unknown event: " + envelope.Event})
	}
}

func (h *WebSocketHandler) handleJoin(client *ws.Client, data json.RawMessage) {
	var payload ws.JoinConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Send(ws.EventError, ws.ErrorPayload{Message: "malformed join_conversation payload"})
		return
	}

	// Членство проверяется так же, как на REST-пути
	if _, err := h.conversationService.GetForParticipant(context.Background(), payload.ConversationID, client.UserID); err != nil {
		client.Send(ws.EventError, ws.ErrorPayload{Message: "conversation not found"})
		return
	}

	h.hub.JoinRoom(client, payload.ConversationID)
}

func (h *WebSocketHandler) handleSendMessage(client *ws.Client, data json.RawMessage) {
	var payload ws.SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Send(ws.EventError, ws.ErrorPayload{Message: "malformed send_message payload"})
		return
	}

	_, err := h.messageService.SendMessage(context.Background(), service.SendMessageInput{
		ConversationID: payload.ConversationID,
		SenderID:       client.UserID,
		SenderRole:     client.Role,
		Content:        payload.Content,
		Type:           payload.Type,
		AudioData:      payload.AudioData,
	})
	if err != nil {
		client.Send(ws.EventError, ws.ErrorPayload{Message: "failed to send message"})
	}
}

// handleTyping пересылает сигнал набора текста остальным участникам комнаты.
// Сигнал нигде не сохраняется, доставка не гарантируется.
func (h *WebSocketHandler) handleTyping(client *ws.Client, data json.RawMessage) {
	var payload ws.TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	h.hub.BroadcastToRoomExcept(payload.ConversationID, ws.EventUserTyping, ws.UserTypingPayload{
		UserID: client.UserID,
		Role:   client.Role,
	}, client)
}
