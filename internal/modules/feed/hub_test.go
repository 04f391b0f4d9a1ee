package feed

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFeed(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop())
	r := gin.New()
	NewHandler(hub, zap.NewNop()).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/calendar"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishDeliversToSubscriber(t *testing.T) {
	hub, srv := setupFeed(t)
	conn := dialFeed(t, srv)

	assert.Equal(t, 1, hub.SubscriberCount())
	hub.Publish("booking.created", gin.H{"id": 42})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "booking.created", got.Event)
}

func TestHub_ConcurrentPublishes(t *testing.T) {
	hub, srv := setupFeed(t)
	conn := dialFeed(t, srv)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub.Publish("booking.updated", gin.H{"seq": i})
		}(i)
	}
	wg.Wait()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < n; i++ {
		var got Event
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "booking.updated", got.Event)
	}
}
