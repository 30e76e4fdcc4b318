package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatzy-backend/internal/game"
	"yatzy-backend/internal/store"
)

// SessionLister exposes the live-session snapshot to the REST surface.
type SessionLister interface {
	SessionList() []game.View
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ListGamesHandler returns the current sessions, the same projection
// the websocket list broadcast carries.
func ListGamesHandler(lister SessionLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Games": lister.SessionList()})
	}
}

// GetTopScoresHandler returns the leaderboard for one game kind.
func GetTopScoresHandler(scores *store.Scores) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.Query("type")
		if kind == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing type"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("count", "50"))
		entries, err := scores.Top(c.Request.Context(), kind, limit)
		if err != nil {
			log.Error().Err(err).Str("kind", kind).Msg("top scores query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// UpdateTopScoreHandler records a finished-game score and returns the
// refreshed leaderboard for that kind.
func UpdateTopScoreHandler(scores *store.Scores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TopScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := scores.Insert(c.Request.Context(), req.Kind, req.Name, req.Score); err != nil {
			log.Error().Err(err).Str("kind", req.Kind).Msg("score insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
			return
		}
		entries, err := scores.Top(c.Request.Context(), req.Kind, 50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// ClientLogHandler writes frontend log lines into the server log.
func ClientLogHandler() gin.HandlerFunc {
	clientLog := log.With().Str("component", "client").Logger()
	return func(c *gin.Context) {
		var req ClientLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch req.Level {
		case "error":
			clientLog.Error().Msg(req.Message)
		case "warn":
			clientLog.Warn().Msg(req.Message)
		default:
			clientLog.Info().Msg(req.Message)
		}
		c.Status(http.StatusNoContent)
	}
}
