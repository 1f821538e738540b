package realtime

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http/httptest"
	"splitboard/app/server/constants"
	"splitboard/app/server/store"
	"strings"
	"testing"
	"time"
)

var _ store.Notifier = (*Hub)(nil)
var _ store.Notifier = (*RedisRelay)(nil)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(zap.NewNop())
	e := echo.New()
	e.GET(constants.SocketPath, hub.ServeWS)

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + constants.SocketPath
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub, url := startHub(t)

	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(store.BoardChannel(7))
	hub.Broadcast(constants.ChannelUpdate)

	for _, conn := range []*websocket.Conn{a, b} {
		assert.Equal(t, Event{Event: "update:7", Data: "update"}, readEvent(t, conn))
		assert.Equal(t, Event{Event: "update", Data: "update"}, readEvent(t, conn))
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// 没有连接时广播也不会出错
	hub.Broadcast(constants.ChannelUpdate)
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := &client{hub: hub, send: make(chan []byte, 1)}
	require.True(t, hub.register(slow))

	done := make(chan struct{})
	go func() {
		for i := 0; i < constants.WSSendBufferSize*2; i++ {
			hub.Broadcast(constants.ChannelUpdate)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
	assert.Len(t, slow.send, 1)
}

func TestHub_Close(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestHub_BroadcastDuringClose(t *testing.T) {
	for round := 0; round < 20; round++ {
		hub := NewHub(zap.NewNop())
		for i := 0; i < 8; i++ {
			require.True(t, hub.register(&client{hub: hub, send: make(chan []byte, constants.WSSendBufferSize)}))
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 50; i++ {
				hub.Broadcast(constants.ChannelUpdate)
			}
		}()
		hub.Close()
		<-done

		assert.Equal(t, 0, hub.ClientCount())
	}
}

func TestHub_RejectsAfterClose(t *testing.T) {
	hub, url := startHub(t)
	hub.Close()

	conn := dial(t, url)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	assert.Equal(t, 0, hub.ClientCount())

	assert.False(t, hub.register(&client{hub: hub, send: make(chan []byte, 1)}))
}
