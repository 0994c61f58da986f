package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws?name=...  Every connection gets a generated player id; there is no
// account system, a connection is a player.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			ID:   "user_" + uuid.NewString(),
			Name: c.Query("name"),
			Conn: conn,
			Send: make(chan OutgoingMessage, 32),
			Hub:  hub,
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
