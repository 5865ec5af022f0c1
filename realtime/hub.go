package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/gorilla/websocket"
)

// DashboardRoom is joined by every connected dashboard.
const DashboardRoom = "dashboard"

// Типы сообщений
const (
	MessageNotification = "NOTIFICATION"
	MessageWelcome      = "WELCOME"
)

type WebSocketMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	RoomID  string `json:"room_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}
}

// Greet queues a first message for the client. It must be called before
// Register.
func (c *Client) Greet(payload any) error {
	b, err := json.Marshal(WebSocketMessage{Type: MessageWelcome, Payload: payload, RoomID: c.room})
	if err != nil {
		return err
	}
	c.send <- b
	return nil
}

// Hub fans messages out to clients grouped in rooms. Client send channels
// are closed only by the hub.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]struct{})
			}
			h.rooms[client.room][client] = struct{}{}
			total := len(h.rooms[client.room])
			h.mu.Unlock()
			h.logger.Debug("client registered", slog.String("room", client.room), slog.Int("clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, clients := range h.rooms {
				for client := range clients {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	close(client.send)
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	h.logger.Debug("client unregistered", slog.String("room", client.room), slog.Int("clients", len(clients)))
}

// Register hands a client to the hub and starts its pumps. It returns
// false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
	case <-h.done:
		return false
	}
	go client.writePump()
	go client.readPump()
	return true
}

// ClientCount returns the number of clients in room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom отправляет сообщение всем клиентам в указанной комнате.
// Slow clients whose buffer is full miss the message.
func (h *Hub) BroadcastToRoom(roomID string, message any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		select {
		case client.send <- messageBytes:
		default:
			h.logger.Warn("client send buffer full, dropping message", slog.String("room", roomID))
		}
	}
}

// Notify pushes a notification to every connected dashboard.
func (h *Hub) Notify(_ context.Context, n services.Notification) {
	h.BroadcastToRoom(DashboardRoom, WebSocketMessage{
		Type:    MessageNotification,
		Payload: n,
		RoomID:  DashboardRoom,
	})
}

// Dashboards only listen; anything they send is read and dropped so that
// pongs and close frames are processed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly", slog.String("room", c.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write failed", slog.String("room", c.room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
