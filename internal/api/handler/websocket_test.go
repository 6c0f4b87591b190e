package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/pkg/jwt"
	"github.com/qs3c/gym_go_server/internal/pkg/ws"
)

func setupWebSocketServer(t *testing.T) (*ws.Hub, string) {
	t.Helper()

	hub := ws.NewHub()
	h := NewWebSocketHandler(hub, "test-secret-key")

	router := gin.New()
	router.GET("/ws", h.Handle)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestWebSocketHandler_AdminConnects(t *testing.T) {
	hub, wsURL := setupWebSocketServer(t)

	token, err := jwt.GenerateToken(1, model.RoleAdmin, "test-secret-key", 1)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return hub.IsOnline(1)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_NonAdminRejected(t *testing.T) {
	hub, wsURL := setupWebSocketServer(t)

	for _, role := range []string{model.RoleMember, model.RoleTrainer} {
		t.Run(role, func(t *testing.T) {
			token, err := jwt.GenerateToken(2, role, "test-secret-key", 1)
			require.NoError(t, err)

			conn, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
			require.Error(t, err)
			require.Nil(t, conn)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}

	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestWebSocketHandler_InvalidToken(t *testing.T) {
	_, wsURL := setupWebSocketServer(t)

	t.Run("missing token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token=not-a-token", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
