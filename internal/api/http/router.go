package http

import (
	"github.com/gin-gonic/gin"

	"yatzy-backend/internal/api/ws"
	"yatzy-backend/internal/store"
)

func SetupRouter(lister SessionLister, scores *store.Scores, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket for game traffic
	r.GET("/ws", hub.HandleWS)

	r.GET("/healthz", HealthHandler())

	api := r.Group("/api")
	api.GET("/games", ListGamesHandler(lister))
	api.GET("/top-scores", GetTopScoresHandler(scores))
	api.POST("/top-scores", UpdateTopScoreHandler(scores))
	api.POST("/log", ClientLogHandler())

	return r
}
