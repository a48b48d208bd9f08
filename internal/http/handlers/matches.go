package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RecentMatches lists the latest finished games. Without a database the
// hub keeps no history and answers with an empty list.
func (h *Handler) RecentMatches(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"matches": []any{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	matches, err := h.Matches.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Leaderboard ranks players by recorded wins.
func (h *Handler) Leaderboard(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"leaderboard": []any{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := h.Matches.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
