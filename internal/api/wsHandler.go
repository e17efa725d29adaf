package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Displays run on kiosk hardware with arbitrary origins
		return true
	},
}

// DisplaySocket joins a display (or admin page) to the event's hub.
// Connecting starts the event's slideshow engine if it is not running,
// and the client immediately gets the current state.
func DisplaySocket(gdb *gorm.DB, hub *ws.Hub, reg *display.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := resolveEvent(r.Context(), gdb, r.URL.Query().Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws: upgrade: %v", err)
			return
		}

		engine := reg.Ensure(ev.ID)

		client := &ws.Client{
			Hub:     hub,
			Conn:    conn,
			Send:    make(chan []byte, 64),
			EventID: ev.ID,
		}
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()

		// Late joiners should not wait a full interval for state
		hub.DisplayState(ev.ID, engine.State())
	}
}
