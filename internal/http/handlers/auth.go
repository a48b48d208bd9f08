package handlers

import (
	"net/http"

	"gamehub/internal/http/middleware"
	"gamehub/internal/service"

	"github.com/gin-gonic/gin"
)

type guestRequest struct {
	Name string `json:"name" binding:"required"`
}

// GuestAuth mints a guest identity and token. No registration, no
// password; a display name is all a player brings.
func (h *Handler) GuestAuth(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	identity, err := service.NewGuest(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := service.GenerateJWT(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	middleware.GuestTokens.Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"player_id": identity.ID,
		"name":      identity.Name,
	})
}

// Me echoes the identity inside a valid token.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"player_id": c.GetString("player_id"),
		"name":      c.GetString("player_name"),
	})
}
