package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotificationStreamHandler handles WebSocket connections for the
// real-time notification stream. The stream is one-way: new
// notifications are pushed as JSON as they are emitted.
func (s *Server) NotificationStreamHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		email, ok := conn.Locals("userEmail").(string)
		if !ok || email == "" {
			log.Printf("WebSocket: unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(email, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register %s: %v", email, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: %s connected to notification stream", email)

		go client.WritePump()
		// ReadPump blocks until the peer disconnects; it must run on this
		// goroutine because fiber closes the connection when the handler
		// returns.
		client.ReadPump()
	})
}
