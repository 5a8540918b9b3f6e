package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

// Client представляет одно WebSocket соединение
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// Буферизованный канал исходящих сообщений
	send chan []byte

	// Пользователь для фильтрации событий; пустой — получать все
	userID string
}

// readPump читает входящие сообщения до разрыва соединения. Входящие
// данные игнорируются: канал используется только для доставки событий.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ERROR] WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump отправляет сообщения клиенту
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("[ERROR] Failed to write message: %v", err)
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
