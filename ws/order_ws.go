package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	orderID uint
	conn    *websocket.Conn
}

type statusEvent struct {
	OrderID uint   `json:"orderId"`
	Status  string `json:"status"`
	At      string `json:"at"`
}

// OrderHub fans order status changes out to browsers watching a payment
// outcome. One subscription per connection, keyed by order id.
type OrderHub struct {
	mu         sync.RWMutex
	clients    map[uint]map[*websocket.Conn]bool
	register   chan client
	unregister chan client
	events     chan statusEvent
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		register:   make(chan client),
		unregister: make(chan client),
		events:     make(chan statusEvent, 16),
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.orderID] == nil {
				h.clients[c.orderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[c.orderID][c.conn] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.clients[c.orderID]; conns != nil {
				if conns[c.conn] {
					delete(conns, c.conn)
					c.conn.Close()
				}
				if len(conns) == 0 {
					delete(h.clients, c.orderID)
				}
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.mu.RLock()
			for conn := range h.clients[ev.OrderID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write to order %d watcher failed: %v", ev.OrderID, err)
					conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyOrder implements services.OrderNotifier. Non-blocking: if the hub is
// backed up the event is dropped, clients can always poll the order.
func (h *OrderHub) NotifyOrder(orderID uint, status string) {
	select {
	case h.events <- statusEvent{OrderID: orderID, Status: status, At: time.Now().Format(time.RFC3339)}:
	default:
		log.Printf("ws event dropped for order %d", orderID)
	}
}

// HandleWebSocket upgrades GET /ws/orders/:id and keeps the connection open
// until the client goes away.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid order id"})
		return
	}
	orderID := uint(id64)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	cl := client{orderID: orderID, conn: conn}
	h.register <- cl

	go func() {
		defer func() { h.unregister <- cl }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
