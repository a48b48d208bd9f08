package handlers

import (
	"net/http"

	"gamehub/internal/game"
	"gamehub/internal/room"

	"github.com/gin-gonic/gin"
)

// ListRooms returns every live room for the lobby screen.
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Registry.List()})
}

// ListGames describes the supported game types and their player limits.
func (h *Handler) ListGames(c *gin.Context) {
	factory := game.NewFactory()

	out := make([]gin.H, 0, len(game.Types()))
	for _, gt := range game.Types() {
		rules, err := factory(gt)
		if err != nil {
			continue
		}
		cfg := rules.Config()
		out = append(out, gin.H{
			"game":        string(gt),
			"min_players": cfg.MinPlayers,
			"max_players": cfg.MaxPlayers,
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}

// GetRoom returns the public view of one room.
func (h *Handler) GetRoom(c *gin.Context) {
	r, err := h.Registry.Get(c.Param("code"))
	if err != nil {
		if err == room.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_code": r.Code,
		"game":      string(r.Game),
		"phase":     string(r.Phase()),
		"players":   r.Players(),
	})
}
