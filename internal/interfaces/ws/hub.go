// Package ws avisos en vivo a los clientes: cada escritura aceptada invalida la instantánea y el
// cliente vuelve a pedir el libro.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/pkg/logger"
)

// Event mensaje enviado a los clientes.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub registra conexiones y difunde eventos. Mientras Run corre, los registros avanzan;
// cuando Run termina, done queda cerrado y los handlers pendientes salen sin bloquear.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende registros y difusiones hasta que ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			n := len(h.clients)
			h.mutex.Unlock()
			if h.log != nil {
				h.log.Debug().Int("clients", n).Msg("cliente ws conectado")
			}

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast encola un evento. Si la cola está llena el evento se descarta: los clientes
// igual recibirán la siguiente invalidación.
func (h *Hub) Broadcast(event string, payload any) {
	msg, err := json.Marshal(Event{Type: event, Payload: payload, At: time.Now().UTC()})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		if h.log != nil {
			h.log.Warn().Str("event", event).Msg("cola ws llena, evento descartado")
		}
	}
}

// join entrega la conexión a Run. Devuelve false si el hub ya se detuvo.
func (h *Hub) join(c *websocket.Conn) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *websocket.Conn) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Clients cantidad de conexiones activas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Upgrade middleware que rechaza peticiones que no son upgrade a websocket.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Handler registra la conexión y la mantiene abierta hasta que el cliente la cierra.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		if !h.join(c) {
			return
		}
		defer h.leave(c)
		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
