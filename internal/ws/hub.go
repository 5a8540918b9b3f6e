// Package ws рассылает события приложения (новые предсказания, записи
// дневника) подключенным WebSocket клиентам.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/stresswell/stress-backend/pkg/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене следует проверять домен
		return true
	},
}

// Hub управляет WebSocket соединениями
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для отмены регистрации клиентов
	unregister chan *Client

	// Канал исходящих событий
	broadcast chan models.Event

	mu sync.RWMutex
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.Event, 64),
	}
}

// Run запускает цикл обработки. Вызывается в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[WEBSOCKET] Client registered, user: %s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[WEBSOCKET] Client unregistered, user: %s", client.userID)

		case event := <-h.broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				log.Printf("[ERROR] Failed to marshal event: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				// Клиент с user_id получает только свои события
				if client.userID != "" && event.UserID != "" && client.userID != event.UserID {
					continue
				}
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent отправляет событие всем подходящим клиентам.
// Не блокирует: при переполненном канале событие отбрасывается.
func (h *Hub) BroadcastEvent(event models.Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[WARN] Broadcast channel full, dropping event %s", event.Type)
	}
}

// ClientCount возвращает число подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket обрабатывает входящие WebSocket соединения.
// Необязательный query-параметр user_id фильтрует события по пользователю.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: r.URL.Query().Get("user_id"),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
