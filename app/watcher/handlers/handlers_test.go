package handlers

import (
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"net/http"
	"net/http/httptest"
	"splitboard/app/server/realtime"
	"splitboard/app/server/types"
	"splitboard/app/watcher/config"
	"sync/atomic"
	"testing"
	"time"
)

// fakeServer 模拟服务端的看板接口和推送接口
type fakeServer struct {
	*httptest.Server
	fetches  atomic.Int32
	connects atomic.Int32
	events   chan string
	dropOnce atomic.Bool
	name     atomic.Value
	delay    atomic.Int64
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	s := &fakeServer{events: make(chan string, 8)}
	s.name.Store("Trip")
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/boards/7", func(w http.ResponseWriter, r *http.Request) {
		// 先读取当前状态再计数，计数可见时状态已经确定
		name := s.name.Load().(string)
		s.fetches.Add(1)
		time.Sleep(time.Duration(s.delay.Load()))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.BoardInfo{ID: 7, Name: name})
	})
	mux.HandleFunc("/api/sock", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		s.connects.Add(1)

		if s.dropOnce.CompareAndSwap(true, false) {
			return
		}

		// 客户端断开时结束
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev := <-s.events:
				if err := conn.WriteJSON(realtime.Event{Event: ev, Data: "update"}); err != nil {
					return
				}
			case <-gone:
				return
			}
		}
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestApp(endpoint string, l *zap.Logger) *App {
	return NewApp(&config.Config{
		ServerEndpoint:    endpoint,
		BoardID:           7,
		ReconnectInterval: 20 * time.Millisecond,
	}, l)
}

func TestSocketURL(t *testing.T) {
	for in, want := range map[string]string{
		"http://localhost:8080":      "ws://localhost:8080/api/sock",
		"https://board.example.com/": "wss://board.example.com/api/sock",
		"http://host/prefix":         "ws://host/prefix/api/sock",
	} {
		got, err := socketURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := socketURL("ftp://host")
	assert.Error(t, err)
}

func TestWatchRefreshesOnBoardEvents(t *testing.T) {
	s := newFakeServer(t)
	core, logs := observer.New(zap.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		newTestApp(s.URL, zap.New(core)).Run(ctx)
		close(stopped)
	}()

	// 连接后先拉取一次
	require.Eventually(t, func() bool { return s.fetches.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// 其他看板的事件不触发拉取
	s.events <- "update:8"
	s.events <- "update:7"
	require.Eventually(t, func() bool { return s.fetches.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	s.events <- "update"
	require.Eventually(t, func() bool { return s.fetches.Load() == 3 }, 2*time.Second, 10*time.Millisecond)

	refreshed := logs.FilterMessage("board refreshed").All()
	require.NotEmpty(t, refreshed)
	assert.Equal(t, "Trip", refreshed[0].ContextMap()["name"])

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	assert.EqualValues(t, 3, s.fetches.Load())
}

func TestWatchReconnects(t *testing.T) {
	s := newFakeServer(t)
	s.dropOnce.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go newTestApp(s.URL, zap.NewNop()).Run(ctx)

	require.Eventually(t, func() bool { return s.connects.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	s.events <- "update:7"
	require.Eventually(t, func() bool { return s.fetches.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestRefreshHandlesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	core, logs := observer.New(zap.ErrorLevel)
	newTestApp(srv.URL, zap.New(core)).refresh(context.Background())

	assert.Equal(t, 1, logs.FilterMessage("failed to fetch board").Len())
}

func TestRefreshDuringSlowFetchIsNotLost(t *testing.T) {
	s := newFakeServer(t)
	s.name.Store("old")
	s.delay.Store(int64(300 * time.Millisecond))

	core, logs := observer.New(zap.InfoLevel)
	a := newTestApp(s.URL, zap.New(core))
	ctx := context.Background()

	// 定时拉取已经读到了旧状态
	go a.refresh(ctx)
	require.Eventually(t, func() bool { return s.fetches.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// 此时收到更新通知
	s.name.Store("new")
	a.refresh(ctx)

	require.Eventually(t, func() bool {
		entries := logs.FilterMessage("board refreshed").All()
		return len(entries) == 2 && entries[1].ContextMap()["name"] == "new"
	}, 3*time.Second, 10*time.Millisecond)

	// 没有多余的拉取
	s.delay.Store(0)
	assert.Never(t, func() bool { return s.fetches.Load() > 2 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestRefreshCoalescesBurst(t *testing.T) {
	s := newFakeServer(t)
	s.delay.Store(int64(200 * time.Millisecond))
	a := newTestApp(s.URL, zap.NewNop())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		a.refresh(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return s.fetches.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		a.refresh(ctx)
	}
	<-done

	assert.EqualValues(t, 2, s.fetches.Load())
}
