// ================== internal/routes/routes.go ==================
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/goil-app/notification-read-service/internal/config"
	"github.com/goil-app/notification-read-service/internal/features/session"
	"github.com/goil-app/notification-read-service/internal/middleware"
)

// NotificationHandler is the subset of notification.Handler routes
// needs, kept narrow so this package doesn't pull in the full
// notification feature's dependency graph.
type NotificationHandler interface {
	Get(c *gin.Context)
}

func RegisterRoutes(router *gin.Engine, cfg *config.Config, sessions *session.Repository, notifications NotificationHandler) {
	apiV2 := router.Group("/api/v2")
	{
		apiV2.GET(
			"/notification/:id/me",
			middleware.Platform(),
			middleware.Auth(cfg),
			middleware.Session(sessions),
			notifications.Get,
		)
	}
}
