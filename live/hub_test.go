package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rookieryder/golf-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func dialRoom(t *testing.T, hub *Hub, room string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, room)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPublishRoundSummary_ReachesRoomSubscribers(t *testing.T) {
	hub := startHub(t)
	room := RoomForRound(42)
	conn := dialRoom(t, hub, room)

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	total := 72
	hub.PublishRoundSummary(models.SharedRoundSummary{ID: 42, Username: "alice", TotalScore: &total})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string                    `json:"type"`
		RoomID  string                    `json:"room_id"`
		Payload models.SharedRoundSummary `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MessageRoundSummaryUpdated, msg.Type)
	assert.Equal(t, "round_42", msg.RoomID)
	assert.Equal(t, "alice", msg.Payload.Username)
	require.NotNil(t, msg.Payload.TotalScore)
	assert.Equal(t, 72, *msg.Payload.TotalScore)
}

func TestBroadcastToRoom_OtherRoomsUnaffected(t *testing.T) {
	hub := startHub(t)
	dialRoom(t, hub, RoomForRound(1))
	require.Eventually(t, func() bool { return hub.RoomSize(RoomForRound(1)) == 1 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, hub.BroadcastToRoom(RoomForRound(2), Message{Type: "x"}))
	assert.Equal(t, 1, hub.BroadcastToRoom(RoomForRound(1), Message{Type: "x"}))
}

func TestClientDisconnectEmptiesRoom(t *testing.T) {
	hub := startHub(t)
	room := RoomForRound(7)
	conn := dialRoom(t, hub, room)
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(&Client{Room: "r", Send: make(chan []byte, 1)}))
}
