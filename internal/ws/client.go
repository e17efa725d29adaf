package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client is one connected display or admin page.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	EventID string
}

type intervalArg struct {
	Seconds int `json:"seconds"`
}

// ReadPump pumps messages from the socket to the hub. Inbound traffic
// is transport controls only, anything else is dropped.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws: read: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		c.handleControl(&msg)
	}
}

func (c *Client) handleControl(msg *Message) {
	ctrl := c.Hub.controller
	if ctrl == nil {
		return
	}
	switch msg.Type {
	case CtlPause, CtlResume, CtlNext, CtlPrev, CtlRefresh:
		ctrl.Control(c.EventID, msg.Type, 0)
	case CtlInterval:
		var arg intervalArg
		if err := json.Unmarshal(msg.Data, &arg); err != nil {
			return
		}
		ctrl.Control(c.EventID, msg.Type, arg.Seconds)
	}
}

// WritePump pumps messages from the hub to the socket, keeping the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
