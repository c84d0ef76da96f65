package handler

import (
	"net/http"
	"time"
)

// PlayerHandler handles player self-inspection endpoints.
type PlayerHandler struct{}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler() *PlayerHandler {
	return &PlayerHandler{}
}

// meResponse is the shape of GET /players/me.
type meResponse struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// GetMe handles GET /players/me.
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, meResponse{
		ID:        player.ID.String(),
		GameID:    player.GameID,
		Username:  player.Username,
		Balance:   player.Balance,
		CreatedAt: player.CreatedAt,
	})
}
