package handlers

import (
	"gamehub/internal/repository"
	"gamehub/internal/room"
)

// Handler bundles what the HTTP surface needs: the live registry for
// lobby listings and the optional match repository for history.
type Handler struct {
	Registry *room.Registry
	Matches  *repository.MatchRepository
}

func NewHandler(registry *room.Registry, matches *repository.MatchRepository) *Handler {
	return &Handler{Registry: registry, Matches: matches}
}
