package chathub

import (
	"encoding/json"
	"log"
	"time"

	"campuslink/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient реалізує інтерфейс chathub.Client
type WebSocketClient struct {
	Email  string
	ConnID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.OutboundEvent
}

// --- Реалізація методів інтерфейсу ---

func (c *WebSocketClient) GetEmail() string                            { return c.Email }
func (c *WebSocketClient) GetConnID() string                           { return c.ConnID }
func (c *WebSocketClient) GetSendChannel() chan<- models.OutboundEvent { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close розриває з'єднання; обидва pump-и завершаться самі. The Send
// channel is never closed so concurrent broadcasts can never panic; it is
// simply garbage collected with the client.
func (c *WebSocketClient) Close() {
	c.Conn.Close()
}

// readPump reads frames off the socket, decodes them into inbound events
// and hands them to the hub. The dispatch call is synchronous: the next
// frame from this connection is not read until the previous event (and its
// persistence round-trip) has completed, which keeps per-room relay order
// equal to persistence order.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c // Надсилаємо команду на Unregister
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.InboundEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.Email, err)
			continue // Пропускаємо невірне повідомлення
		}

		c.Hub.HandleEvent(c, ev)
	}
}

// writePump читає події з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.Email, err)
				continue
			}

			// Кожна подія записується окремим текстовим фреймом.
			if err := c.Conn.WriteMessage(websocket.TextMessage, dataToWrite); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
