package http

import (
	"github.com/dmkor/sparkmatch-backend/internal/delivery/http/handler"
	"github.com/dmkor/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	turnHandler       *handler.TurnHandler
	discoveryHandler  *handler.DiscoveryHandler
	moderationHandler *handler.ModerationHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	turnHandler *handler.TurnHandler,
	discoveryHandler *handler.DiscoveryHandler,
	moderationHandler *handler.ModerationHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		turnHandler:       turnHandler,
		discoveryHandler:  discoveryHandler,
		moderationHandler: moderationHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Turn dispatch from the transport gateway
		turns := v1.Group("/turns")
		turns.Use(r.authMiddleware.RequireAuth())
		{
			turns.POST("", r.turnHandler.HandleTurn)
		}

		// Discovery routes
		disc := v1.Group("/discovery")
		disc.Use(r.authMiddleware.RequireAuth())
		{
			disc.GET("/next", r.discoveryHandler.GetNext)
			disc.POST("/decide", r.discoveryHandler.Decide)
			disc.POST("/reset-pass", r.discoveryHandler.ResetPass)
		}

		// Moderation routes (operator only)
		mod := v1.Group("/moderation")
		mod.Use(r.authMiddleware.RequireOperator())
		{
			mod.POST("/ban", r.moderationHandler.SetBan)
			mod.GET("/:user_id/banned", r.moderationHandler.GetBan)
		}
	}

	return router
}
