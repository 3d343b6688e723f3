package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 16
)

// EventState carries a new Decision for the connected profile.
const EventState = "session_state"

// Event is pushed to every open stream of a profile.
type Event struct {
	Type     string    `json:"type"`
	Decision Decision  `json:"decision"`
	At       time.Time `json:"at"`
}

type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans session state changes out to open websocket streams. A profile
// may have several tabs open, so connections are grouped per user.
type Hub struct {
	svc         *Service
	mu          sync.Mutex
	connections map[string]map[*connection]struct{}
}

func newHub(svc *Service) *Hub {
	return &Hub{
		svc:         svc,
		connections: make(map[string]map[*connection]struct{}),
	}
}

// Notify re-resolves a profile and pushes the result to its streams.
func (h *Hub) Notify(ctx context.Context, userID string) {
	d, err := h.svc.Current(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("session notify failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	h.publish(userID, d)
}

// SignOut tells every stream of a profile that its session ended.
func (h *Hub) SignOut(_ context.Context, userID string) {
	h.publish(userID, signedOut(ReasonSignedOut, ""))
}

// Connected returns the number of open streams for a profile.
func (h *Hub) Connected(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections[userID])
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *connection) {
	set, ok := h.connections[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.connections, c.userID)
	}
}

func (h *Hub) publish(userID string, d Decision) {
	data, err := encodeEvent(d)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections[userID] {
		select {
		case c.send <- data:
		default:
			// slow consumer, drop it
			h.dropLocked(c)
			continue
		}
		if !d.Allowed() && d.State != StatePending {
			h.dropLocked(c)
		}
	}
}

// Serve attaches an upgraded connection. The first frame is the state
// resolved after registration, then every change follows on the same stream.
// fallback is sent when that resolution fails.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID string, fallback Decision) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.attach(ctx, c, fallback)

	go h.writePump(c)
	h.readPump(c)
}

// attach registers c and queues its first frame. Resolving under the lock
// keeps a concurrent publish from landing before it.
func (h *Hub) attach(ctx context.Context, c *connection, fallback Decision) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.connections[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.userID] = set
	}
	set[c] = struct{}{}

	d, err := h.svc.Current(ctx, c.userID)
	if err != nil {
		logger.FromContext(ctx).Warn("session stream resolve failed", zap.String("user_id", c.userID), zap.Error(err))
		d = fallback
	}
	data, err := encodeEvent(d)
	if err != nil {
		return
	}
	c.send <- data
	if !d.Allowed() && d.State != StatePending {
		h.dropLocked(c)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Clients never send anything meaningful; reading keeps pong handling alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func encodeEvent(d Decision) ([]byte, error) {
	return json.Marshal(Event{Type: EventState, Decision: d, At: time.Now().UTC()})
}
