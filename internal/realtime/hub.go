package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/gorilla/websocket"
)

// Event is a fire-and-forget push message about one battle.
type Event struct {
	BattleID uint        `json:"battle_id"`
	Type     string      `json:"type"`
	Payload  interface{} `json:"payload,omitempty"`
}

// Event types pushed to subscribed clients.
const (
	EventInvitationCreated   = "invitation_created"
	EventInvitationResponded = "invitation_responded"
	EventPhaseUpdate         = "phase_update"
	EventBattleEnded         = "battle_ended"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 50 * time.Second
	sendQueueDepth = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans battle events out to websocket subscribers. Broadcast never
// blocks: slow or dead clients simply drop events.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*client]struct{})}
}

// Subscribe upgrades the request to a websocket and attaches it to the
// battle's room until the connection closes.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, battleID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendQueueDepth)}

	h.mu.Lock()
	room, ok := h.rooms[battleID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[battleID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c, battleID)
	return nil
}

func (h *Hub) detach(c *client, battleID uint) {
	h.mu.Lock()
	if room, ok := h.rooms[battleID]; ok {
		if _, ok := room[c]; ok {
			delete(room, c)
			close(c.send)
		}
		if len(room) == 0 {
			delete(h.rooms, battleID)
		}
	}
	h.mu.Unlock()
}

// readLoop drains the connection so pings/pongs and close frames are
// processed; inbound payloads are ignored.
func (h *Hub) readLoop(c *client, battleID uint) {
	defer func() {
		h.detach(c, battleID)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// Broadcast pushes an event to every subscriber of the battle. Encoding
// errors are logged; full client queues drop the event.
func (h *Hub) Broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logging.Error("failed to encode realtime event", err, logging.Fields{"battle_id": ev.BattleID, "type": ev.Type})
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[ev.BattleID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}
