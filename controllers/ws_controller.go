package controllers

import (
	"github.com/gin-gonic/gin"

	"klubnika/realtime"
)

// ServeWS upgrades the connection and subscribes the caller to their
// own order events; admin tokens also join the admin broadcast room.
func ServeWS(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []string
		if raw, ok := c.Get("userId"); ok {
			if id, _ := raw.(string); id != "" {
				rooms = append(rooms, id)
			}
		}
		if isAdmin(c) {
			rooms = append(rooms, realtime.AdminRoom)
		}
		hub.Serve(c.Writer, c.Request, rooms...)
	}
}
