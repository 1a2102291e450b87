package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
)

const (
	// writeWait is the maximum time allowed for a single write to a
	// subscriber. A slow connection times out rather than blocking the
	// writer goroutine indefinitely.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings are sent at pingPeriod to keep it alive.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// defaultSendBuffer is the per-subscriber outbound buffer. When it
	// fills (slow consumer), further broadcasts are dropped for that
	// subscriber.
	defaultSendBuffer = 32
)

// HubConfig holds the tunables for a Hub.
type HubConfig struct {
	// SendBuffer is the per-subscriber outbound channel capacity.
	// Zero means the default.
	SendBuffer int
}

// Hub implements TaskNotifier over websocket connections. It owns the
// subscriber registry shared by all requests: constructed once at
// process start and injected wherever broadcasting is needed.
//
// Broadcasts are non-blocking. Each subscriber has a buffered outbound
// channel drained by its own writer goroutine; when the buffer is full
// the message is dropped for that subscriber. There are no
// acknowledgments, retries or delivery guarantees.
type Hub struct {
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// client is one connected websocket subscriber.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub ready to accept subscribers.
func NewHub(cfg HubConfig, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}

	return &Hub{
		logger: log.With(slog.String("component", "task_hub")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Subscribers are push-only dashboards; any origin may listen.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		clients:    make(map[*client]struct{}),
	}
}

// Ensure Hub implements TaskNotifier
var _ TaskNotifier = (*Hub)(nil)

// Broadcast implements TaskNotifier.Broadcast. The task is serialized
// to JSON once and dispatched to every currently connected subscriber.
func (h *Hub) Broadcast(ctx context.Context, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	payload, err := json.Marshal(task)
	if err != nil {
		log.Error("failed to serialize task for broadcast",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var delivered, dropped int
	for c := range h.clients {
		select {
		case c.send <- payload:
			delivered++
		default:
			// subscriber is slow, drop the message
			dropped++
		}
	}

	log.Debug("task broadcast dispatched",
		slog.Int64("task_id", task.ID),
		slog.Int("delivered", delivered),
		slog.Int("dropped", dropped))
}

// SubscriberCount returns the number of currently connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleSubscribe upgrades an HTTP request to a websocket subscription.
// The connection stays registered until the peer disconnects or the
// hub is closed. Register it on the router as GET /ws/tasks.
func (h *Hub) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warn("websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("remote_addr", r.RemoteAddr))
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	subscribers := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("subscriber connected",
		slog.String("client_id", c.id.String()),
		slog.String("remote_addr", r.RemoteAddr),
		slog.Int("subscribers", subscribers))

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects all subscribers and rejects new ones. Used during
// graceful shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// remove unregisters a client and closes its outbound channel.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// writePump drains the client's outbound channel onto the websocket
// connection, pinging periodically to detect dead peers. It exits when
// the channel is closed (unregistered or hub shutdown) or a write fails.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Debug("write to subscriber failed",
					slog.String("client_id", c.id.String()),
					slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its only job is to notice when the
// peer goes away. Subscribers are listeners, not senders.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.logger.Info("subscriber disconnected",
				slog.String("client_id", c.id.String()))
			return
		}
	}
}
