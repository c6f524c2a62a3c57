package hub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeWS_BroadcastReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(zap.NewNop())
	handler := NewHandler(h, nil, zap.NewNop())

	r := gin.New()
	r.GET("/ws", handler.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for the upgrade goroutine to register the session
	deadline := time.Now().Add(2 * time.Second)
	for h.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, h.Count())

	h.BroadcastEvent(NewComment(3, "Post", "author", "hello"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)

	var ev NewCommentEvent
	require.NoError(t, json.Unmarshal(frame, &ev))
	assert.Equal(t, EventNewComment, ev.Type)
	assert.Equal(t, uint(3), ev.PostID)
	assert.Equal(t, "hello", ev.Content)
}

func TestServeWS_OversizedInboundFrameCloses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(zap.NewNop())
	handler := NewHandler(h, nil, zap.NewNop())

	r := gin.New()
	r.GET("/ws", handler.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, h.Count())

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, make([]byte, 4*maxInboundFrameBytes)))

	deadline = time.Now().Add(2 * time.Second)
	for h.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, h.Count(), "oversized frame must drop the session")
}

func TestServeWS_DisconnectUnregisters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(zap.NewNop())
	handler := NewHandler(h, nil, zap.NewNop())

	r := gin.New()
	r.GET("/ws", handler.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for h.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, h.Count())

	require.NoError(t, conn.Close())
	deadline = time.Now().Add(2 * time.Second)
	for h.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, h.Count())
}
