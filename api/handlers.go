package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/paddle"
)

var startTime = time.Now()

// HealthCheck returns the service status
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "microgames-pong",
		"uptime":  time.Since(startTime).String(),
	})
}

// GetGame returns the current snapshot.
func GetGame(engine Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, engine.Snapshot())
	}
}

// Control applies a lifecycle action and reports the resulting state.
func Control(engine Engine, action game.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.Apply(action); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		snap := engine.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"state":  snap.State,
			"scores": snap.Scores,
		})
	}
}

type speedRequest struct {
	Percent *float64 `json:"percent" binding:"required"`
}

// SetSpeed sets the speed percent of the paddle named by the :side param.
func SetSpeed(left, right *input.Slider) gin.HandlerFunc {
	return func(c *gin.Context) {
		side, err := paddle.ParseSide(c.Param("side"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var req speedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. A numeric percent is required."})
			return
		}

		slider := left
		if side == paddle.Right {
			slider = right
		}
		slider.Set(*req.Percent)

		c.JSON(http.StatusOK, gin.H{
			"side":    side,
			"percent": slider.SpeedPercent(),
		})
	}
}
