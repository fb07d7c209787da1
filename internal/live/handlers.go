package live

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:eventID", websocket.New(func(c *websocket.Conn) {
		eventID := c.Params("eventID")
		client := hub.Register(eventID)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		// Unregister closes client.Send, which ends the writer loop; only
		// then is it safe to wait for it.
		hub.Unregister(client)
		<-done
	}))
}
