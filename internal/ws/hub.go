package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
)

// Message types pushed to connected pages
const (
	MsgDisplayState    = "display.state"
	MsgPhotosChanged   = "photos.changed"
	MsgSettingsChanged = "settings.changed"
)

// Control messages accepted from display clients
const (
	CtlPause    = "control.pause"
	CtlResume   = "control.resume"
	CtlNext     = "control.next"
	CtlPrev     = "control.prev"
	CtlInterval = "control.interval"
	CtlRefresh  = "control.refresh"
)

// Message is the wire envelope for everything on the socket.
type Message struct {
	Type      string          `json:"type"`
	EventID   string          `json:"event_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Controller receives transport controls relayed from clients. The
// display engine registry implements this.
type Controller interface {
	Control(eventID, kind string, arg int)
}

// Hub maintains active clients per event and broadcasts messages.
type Hub struct {
	Clients    map[string]map[*Client]bool // event ID -> clients
	Broadcast  chan *Message
	Register   chan *Client
	Unregister chan *Client
	Mu         sync.RWMutex

	controller Controller
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Broadcast:  make(chan *Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetController wires the control target. Must be called before Run.
func (h *Hub) SetController(c Controller) { h.controller = c }

// Run is the hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Mu.Lock()
			if h.Clients[client.EventID] == nil {
				h.Clients[client.EventID] = make(map[*Client]bool)
			}
			h.Clients[client.EventID][client] = true
			h.Mu.Unlock()

		case client := <-h.Unregister:
			h.Mu.Lock()
			if clients, ok := h.Clients[client.EventID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.Clients, client.EventID)
					}
				}
			}
			h.Mu.Unlock()

		case message := <-h.Broadcast:
			h.Mu.RLock()
			clients := h.Clients[message.EventID]
			h.Mu.RUnlock()

			payload, err := json.Marshal(message)
			if err != nil {
				log.Printf("ws: marshal broadcast: %v", err)
				continue
			}
			for client := range clients {
				select {
				case client.Send <- payload:
				default:
					close(client.Send)
					delete(clients, client)
				}
			}
		}
	}
}

// DisplayState implements display.Broadcaster, pushing engine state to
// every screen watching the event.
func (h *Hub) DisplayState(eventID string, st display.State) {
	data, err := json.Marshal(st)
	if err != nil {
		log.Printf("ws: marshal state: %v", err)
		return
	}
	h.Broadcast <- &Message{
		Type:      MsgDisplayState,
		EventID:   eventID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// NotifyChange tells connected pages that photos or settings changed.
func (h *Hub) NotifyChange(eventID, msgType string) {
	h.Broadcast <- &Message{
		Type:      msgType,
		EventID:   eventID,
		Timestamp: time.Now().UTC(),
	}
}
