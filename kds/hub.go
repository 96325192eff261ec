package kds

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/utils"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

// boardClient is one connected board. Its writer goroutine owns the
// connection's write side; done is closed once the client is unregistered.
type boardClient struct {
	conn     *websocket.Conn
	outletID uint
	send     chan []byte
	done     chan struct{}
}

// Hub keeps the websocket clients of the order board (baristas and shift
// leads) and pushes every published event to them. A client may follow a
// single outlet; outlet 0 means all outlets.
type Hub struct {
	clients map[*websocket.Conn]*boardClient
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*boardClient)}
}

func (h *Hub) RegisterClient(conn *websocket.Conn, outletID uint) {
	cl := &boardClient{
		conn:     conn,
		outletID: outletID,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}

	h.mutex.Lock()
	h.clients[conn] = cl
	h.mutex.Unlock()

	go h.writeLoop(cl)
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if cl, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(cl.done)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish queues the event for every interested client and returns without
// waiting for any write. A client whose queue is full misses the event.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	targets := make([]*boardClient, 0, len(h.clients))
	for _, cl := range h.clients {
		if cl.outletID == 0 || cl.outletID == event.OutletID {
			targets = append(targets, cl)
		}
	}
	h.mutex.Unlock()

	for _, cl := range targets {
		select {
		case cl.send <- data:
		case <-cl.done:
		default:
			utils.ErrorLogger.Printf("Board client (outlet=%d) is behind, dropping %s event %s", cl.outletID, event.Type, event.ID)
		}
	}
	return nil
}

// writeLoop drains the client's queue onto the socket. A failed write drops
// the client.
func (h *Hub) writeLoop(cl *boardClient) {
	for {
		select {
		case <-cl.done:
			return
		case data := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				utils.ErrorLogger.Printf("Dropping board client after failed write: %v", err)
				h.UnregisterClient(cl.conn)
				return
			}
		}
	}
}
