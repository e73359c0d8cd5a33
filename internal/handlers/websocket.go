package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
)

// WebSocketHandler upgrades the connection and subscribes the client to
// the requested topics (default: safety alerts).
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userRole := c.GetString("userRole")

		topics := []string{services.TopicSafetyAlert}
		if raw := c.Query("topics"); raw != "" {
			topics = strings.Split(raw, ",")
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userRole, topics)
	}
}
