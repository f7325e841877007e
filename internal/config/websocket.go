package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket builds an upgrader that accepts the same origins as CORS.
func NewWebSocket(c CorsConfig) *WebSocket {
	allowAll := len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowAll || origin == "" || slices.Contains(c.AllowedOrigins, origin)
		},
	}
	return &WebSocket{Upgrader: upgrader}
}
