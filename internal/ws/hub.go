package ws

import (
	"sync"

	"github.com/google/uuid"

	"medical_chat/pkg/logger"
)

type roomMessage struct {
	conversationID uuid.UUID
	data           []byte
	exclude        *Client
}

// Hub хранит членство живых соединений в комнатах разговоров.
// Состояние живет только в памяти процесса и восстанавливается
// клиентами при переподключении.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomMessage
	mu         sync.RWMutex
	log        logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomMessage, 256),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.log.Debug("Client connected", "user_id", client.UserID, "role", client.Role)

		case client := <-h.unregister:
			h.removeFromAllRooms(client)
			h.log.Debug("Client disconnected", "user_id", client.UserID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.rooms[msg.conversationID]
			for client := range clients {
				if client == msg.exclude {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Медленный потребитель - отключаем
					go client.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom добавляет соединение в комнату разговора; повторный вызов не имеет эффекта
func (h *Hub) JoinRoom(client *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[conversationID]; !ok {
		h.rooms[conversationID] = make(map[*Client]bool)
	}
	h.rooms[conversationID][client] = true

	h.log.Info("Client joined conversation room", "user_id", client.UserID, "conversation_id", conversationID)
}

func (h *Hub) removeFromAllRooms(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conversationID, clients := range h.rooms {
		if clients[client] {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, conversationID)
			}
		}
	}
}

// BroadcastToRoom рассылает событие всем соединениям в комнате разговора
func (h *Hub) BroadcastToRoom(conversationID uuid.UUID, event string, payload interface{}) error {
	return h.broadcastToRoom(conversationID, event, payload, nil)
}

// BroadcastToRoomExcept рассылает событие всем в комнате, кроме указанного соединения
func (h *Hub) BroadcastToRoomExcept(conversationID uuid.UUID, event string, payload interface{}, exclude *Client) error {
	return h.broadcastToRoom(conversationID, event, payload, exclude)
}

func (h *Hub) broadcastToRoom(conversationID uuid.UUID, event string, payload interface{}, exclude *Client) error {
	data, err := NewEnvelope(event, payload)
	if err != nil {
		return err
	}

	h.broadcast <- &roomMessage{
		conversationID: conversationID,
		data:           data,
		exclude:        exclude,
	}
	return nil
}

// RoomSize возвращает число соединений в комнате
func (h *Hub) RoomSize(conversationID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}
