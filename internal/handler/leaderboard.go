package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/service"
)

// LeaderboardHandler handles ranked projection endpoints.
type LeaderboardHandler struct {
	leaderboardSvc *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardSvc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// TopByCredits handles GET /leaderboards/credits.
func (h *LeaderboardHandler) TopByCredits(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entries, err := h.leaderboardSvc.TopByCredits(r.Context(), player.GameID, limitParam(r))
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	RespondJSON(w, http.StatusOK, entries)
}

// TopByStat handles GET /leaderboards/stats/{key}.
func (h *LeaderboardHandler) TopByStat(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	key := chi.URLParam(r, "key")

	entries, err := h.leaderboardSvc.TopByStat(r.Context(), player.GameID, key, limitParam(r))
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	RespondJSON(w, http.StatusOK, entries)
}

func limitParam(r *http.Request) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}
