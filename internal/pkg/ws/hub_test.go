package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// dialTestClient 建立一条真实的 websocket 连接并注册到 hub
func dialTestClient(t *testing.T, hub *Hub, userID int64) (*Client, *websocket.Conn, func()) {
	t.Helper()

	connected := make(chan *Client, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		client := &Client{UserID: userID, Conn: conn}
		hub.Register(client)
		connected <- client
	}))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	client := <-connected

	cleanup := func() {
		hub.Unregister(client)
		conn.Close()
		server.Close()
	}
	return client, conn, cleanup
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_IsOnline_NoConnections(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(123))
}

func TestHub_SendToUser_UserNotOnline(t *testing.T) {
	hub := NewHub()

	msg := &Message{
		Type: "test",
		Data: "hello",
	}

	// 用户不在线不算错误
	err := hub.SendToUser(999, msg)
	assert.NoError(t, err)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	_, _, cleanup := dialTestClient(t, hub, 1)

	assert.True(t, hub.IsOnline(1))
	assert.Equal(t, 1, hub.ConnectionCount())

	cleanup()

	assert.False(t, hub.IsOnline(1))
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()

	_, conn, cleanup := dialTestClient(t, hub, 42)
	defer cleanup()

	err := hub.SendToUser(42, &Message{Type: "event", Data: "payload"})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"event"`)
	assert.Contains(t, string(data), `"payload"`)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	_, conn1, cleanup1 := dialTestClient(t, hub, 1)
	defer cleanup1()
	_, conn2, cleanup2 := dialTestClient(t, hub, 2)
	defer cleanup2()

	err := hub.Broadcast(&Message{Type: "payment_recorded", Data: map[string]int64{"amount": 50000}})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(data), "payment_recorded")
	}
}
