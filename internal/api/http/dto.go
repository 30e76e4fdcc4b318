package http

// TopScoreRequest is the payload for POST /api/top-scores.
type TopScoreRequest struct {
	Kind  string `json:"gameType" binding:"required"`
	Name  string `json:"userName" binding:"required"`
	Score int    `json:"score"`
}

// ClientLogRequest is the payload for POST /api/log, a sink for
// frontend diagnostics.
type ClientLogRequest struct {
	Level   string `json:"level"`
	Message string `json:"message" binding:"required"`
}
