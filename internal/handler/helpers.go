package handler

import (
	"net/http"

	"github.com/playvault/platform/internal/auth"
	"github.com/playvault/platform/internal/domain"
)

// currentPlayer extracts the authenticated player from request context.
func currentPlayer(r *http.Request) (*domain.Player, error) {
	player := auth.PlayerFromContext(r.Context())
	if player == nil {
		return nil, domain.ErrUnauthorized("no authenticated player")
	}
	return player, nil
}
