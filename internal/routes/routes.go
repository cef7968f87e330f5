package routes

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/handlers"
	"connecta_backend/internal/middleware"
	"connecta_backend/ws"
)

// RegisterRoutes mounts every HTTP and WebSocket route on the engine.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers, wsManager *ws.Manager) {
	api := router.Group("/api/v1")

	// Public surface: auth, the gateway webhook and the partner
	// ingestion API, each with its own authentication scheme.
	h.Auth.RegisterRoutes(api.Group("/auth"))
	h.Payments.RegisterWebhook(api)
	h.ExternalGigs.RegisterRoutes(api.Group("/external-gigs", middleware.APIKeyMiddleware()))

	authed := api.Group("", middleware.AuthMiddleware())
	{
		h.Users.RegisterRoutes(authed.Group("/users"))
		h.Profiles.RegisterRoutes(authed.Group("/profiles"))
		h.Jobs.RegisterRoutes(authed.Group("/jobs"))
		h.Proposals.RegisterRoutes(authed.Group("/proposals"))
		h.Projects.RegisterRoutes(authed.Group("/projects"))
		h.Contracts.RegisterRoutes(authed.Group("/contracts"))
		h.Collabo.RegisterRoutes(authed.Group("/collabo"))
		h.Messages.RegisterRoutes(authed.Group("/conversations"))
		h.Payments.RegisterRoutes(authed.Group("/payments"))
		h.Reviews.RegisterRoutes(authed.Group("/reviews"))
		h.Notifications.RegisterRoutes(authed.Group("/notifications"))
		h.Dashboard.RegisterRoutes(authed.Group("/dashboard"))
	}

	h.Admin.RegisterRoutes(api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly()))

	// Socket auth happens inside the handler, the handshake carries the
	// token as a query parameter.
	router.GET("/ws", ws.ServeWS(wsManager))
}
