// Package api exposes the game over HTTP for control panels and health checks.
package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evermake/microgames/config"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
)

// Engine is the part of the game engine the API drives.
type Engine interface {
	Apply(a game.Action) error
	Snapshot() game.Snapshot
}

// Deps are the collaborators the handlers act on. WS may be nil, in which case
// the WebSocket route is not registered.
type Deps struct {
	Engine Engine
	Left   *input.Slider
	Right  *input.Slider
	WS     http.Handler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Deps, cfg *config.Config) {
	// CORS for browser renderers served from another origin
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)

		g := v1.Group("/game")
		{
			g.GET("", GetGame(deps.Engine))
			g.POST("/pause", Control(deps.Engine, game.ActionPause))
			g.POST("/resume", Control(deps.Engine, game.ActionResume))
			g.POST("/reset", Control(deps.Engine, game.ActionReset))
			g.POST("/toggle", Control(deps.Engine, game.ActionToggle))
			g.PUT("/speed/:side", SetSpeed(deps.Left, deps.Right))
			if deps.WS != nil {
				g.GET("/ws", gin.WrapH(deps.WS))
			}
		}
	}
}
