package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical_chat/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.New("error"))
	go hub.Run()
	return hub
}

func newTestClient(hub *Hub, role string) *Client {
	return &Client{
		UserID: uuid.New(),
		Role:   role,
		hub:    hub,
		send:   make(chan []byte, 16),
	}
}

func receiveEnvelope(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case data := <-client.send:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(data, &envelope))
		return envelope
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return Envelope{}
	}
}

func assertNothingReceived(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.send:
		t.Fatalf("unexpected message received: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastReachesOnlyJoinedRoom(t *testing.T) {
	hub := newTestHub(t)

	conversationA := uuid.New()
	conversationB := uuid.New()

	clientA := newTestClient(hub, "doctor")
	clientB := newTestClient(hub, "patient")

	hub.JoinRoom(clientA, conversationA)
	hub.JoinRoom(clientB, conversationB)

	require.NoError(t, hub.BroadcastToRoom(conversationA, EventMessageCreated, map[string]string{"content": "hola"}))

	envelope := receiveEnvelope(t, clientA)
	assert.Equal(t, EventMessageCreated, envelope.Event)

	assertNothingReceived(t, clientB)
}

func TestBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := newTestHub(t)

	conversationID := uuid.New()
	doctor := newTestClient(hub, "doctor")
	patient := newTestClient(hub, "patient")

	hub.JoinRoom(doctor, conversationID)
	hub.JoinRoom(patient, conversationID)

	require.NoError(t, hub.BroadcastToRoom(conversationID, EventMessageCreated, map[string]string{"content": "hi"}))

	assert.Equal(t, EventMessageCreated, receiveEnvelope(t, doctor).Event)
	assert.Equal(t, EventMessageCreated, receiveEnvelope(t, patient).Event)
}

func TestBroadcastExceptSkipsSender(t *testing.T) {
	hub := newTestHub(t)

	conversationID := uuid.New()
	doctor := newTestClient(hub, "doctor")
	patient := newTestClient(hub, "patient")

	hub.JoinRoom(doctor, conversationID)
	hub.JoinRoom(patient, conversationID)

	payload := UserTypingPayload{UserID: patient.UserID, Role: patient.Role}
	require.NoError(t, hub.BroadcastToRoomExcept(conversationID, EventUserTyping, payload, patient))

	envelope := receiveEnvelope(t, doctor)
	assert.Equal(t, EventUserTyping, envelope.Event)

	var received UserTypingPayload
	require.NoError(t, json.Unmarshal(envelope.Data, &received))
	assert.Equal(t, patient.UserID, received.UserID)

	assertNothingReceived(t, patient)
}

func TestJoinRoomIsIdempotent(t *testing.T) {
	hub := newTestHub(t)

	conversationID := uuid.New()
	client := newTestClient(hub, "doctor")

	hub.JoinRoom(client, conversationID)
	hub.JoinRoom(client, conversationID)

	assert.Equal(t, 1, hub.RoomSize(conversationID))

	require.NoError(t, hub.BroadcastToRoom(conversationID, EventMessageCreated, map[string]string{"content": "once"}))
	receiveEnvelope(t, client)
	assertNothingReceived(t, client)
}

func TestUnregisterRemovesClientFromAllRooms(t *testing.T) {
	hub := newTestHub(t)

	conversationA := uuid.New()
	conversationB := uuid.New()
	client := newTestClient(hub, "patient")

	hub.JoinRoom(client, conversationA)
	hub.JoinRoom(client, conversationB)

	hub.Unregister(client)

	// Даем hub обработать отключение
	assert.Eventually(t, func() bool {
		return hub.RoomSize(conversationA) == 0 && hub.RoomSize(conversationB) == 0
	}, time.Second, 10*time.Millisecond)
}
