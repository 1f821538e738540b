package realtime

import (
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/constants"
	"sync"
	"time"
)

// Event 是推送给客户端的消息，只标记频道，不携带数据
type Event struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

type Hub struct {
	l       *zap.Logger
	clients map[*client]struct{}
	closed  bool
	mu      sync.RWMutex
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// 跨域由 CORS 中间件处理
		return true
	},
}

func NewHub(l *zap.Logger) *Hub {
	return &Hub{
		l:       l,
		clients: make(map[*client]struct{}),
	}
}

// Broadcast 把事件发给本进程内的所有连接，缓冲区满的连接直接跳过
func (h *Hub) Broadcast(channel string) {
	data, err := json.Marshal(&Event{
		Event: channel,
		Data:  constants.EventSignal,
	})
	if err != nil {
		h.l.Error("failed to marshal event", zap.String("channel", channel), zap.Error(err))
		return
	}

	// 发送不会阻塞，持有读锁期间 send 不会被关闭
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for c := range h.clients {
		c.trySend(data)
	}

	h.l.Debug("event broadcast", zap.String("channel", channel), zap.Int("clients", len(h.clients)))
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS 把请求升级为 WebSocket 连接，不需要登录
func (h *Hub) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade 已经写好了错误响应
		h.l.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}

	cl := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, constants.WSSendBufferSize),
	}
	if !h.register(cl) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		_ = conn.Close()
		return nil
	}

	go cl.writePump()
	go cl.readPump()

	return nil
}

// Close 断开所有连接，之后的广播和新连接都会被忽略
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.l.Debug("websocket client connected", zap.Int("clients", h.ClientCount()))
	return true
}

// unregister 只有真正从表中移除连接的一方才关闭 send ，避免重复关闭
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, existed := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if existed {
		close(c.send)
	}
	h.l.Debug("websocket client disconnected", zap.Int("clients", h.ClientCount()))
}

// trySend 需要在持有 hub 读锁时调用
func (c *client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		c.hub.l.Debug("websocket client is too slow, event dropped")
	}
}

// readPump 只负责维持心跳和发现断开，客户端发来的消息直接丢弃
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(constants.WSMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.l.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(constants.WSPingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WSWriteWait))
			if !ok {
				// Hub 已经关闭了这个连接
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WSWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
