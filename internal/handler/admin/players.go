package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/handler"
	"github.com/playvault/platform/internal/service"
)

// PlayerAdminHandler handles owner-capability player management.
type PlayerAdminHandler struct {
	adminSvc   *service.AdminService
	economySvc *service.EconomyService
	authSvc    *service.AuthService
}

// NewPlayerAdminHandler creates a new PlayerAdminHandler.
func NewPlayerAdminHandler(adminSvc *service.AdminService, economySvc *service.EconomyService, authSvc *service.AuthService) *PlayerAdminHandler {
	return &PlayerAdminHandler{adminSvc: adminSvc, economySvc: economySvc, authSvc: authSvc}
}

// ListPlayers handles GET /admin/players?game_id=...
func (h *PlayerAdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			handler.RespondError(w, domain.ErrInvalidArgument("invalid limit"))
			return
		}
		limit = n
	}

	players, err := h.adminSvc.ListPlayers(r.Context(), gameID, limit)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if players == nil {
		players = []domain.Player{}
	}

	handler.RespondJSON(w, http.StatusOK, players)
}

// GetPlayer handles GET /admin/players/{id}.
func (h *PlayerAdminHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	player, err := h.adminSvc.GetPlayer(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, player)
}

// amountRequest is the body of credit mutation calls.
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// GiveCredits handles POST /admin/players/{id}/credits/give.
func (h *PlayerAdminHandler) GiveCredits(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var input amountRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	balance, err := h.economySvc.AdminGive(r.Context(), id, input.Amount)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

// SetCredits handles POST /admin/players/{id}/credits/set.
func (h *PlayerAdminHandler) SetCredits(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var input amountRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	balance, err := h.economySvc.AdminSet(r.Context(), id, input.Amount)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

// resetPasswordRequest is the body of POST /admin/players/{id}/reset-password.
type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword handles POST /admin/players/{id}/reset-password.
func (h *PlayerAdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var input resetPasswordRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	token, err := h.authSvc.AdminResetPassword(r.Context(), id, input.Password)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// DeletePlayer handles DELETE /admin/players/{id}.
func (h *PlayerAdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	if err := h.adminSvc.DeletePlayer(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// bulkRequest is the body of the bulk operator endpoints.
type bulkRequest struct {
	PlayerIDs []uuid.UUID `json:"player_ids"`
	Amount    int64       `json:"amount,omitempty"`
}

// BulkBan handles POST /admin/players/bulk/ban.
func (h *PlayerAdminHandler) BulkBan(w http.ResponseWriter, r *http.Request) {
	h.bulkSetBanned(w, r, true)
}

// BulkUnban handles POST /admin/players/bulk/unban.
func (h *PlayerAdminHandler) BulkUnban(w http.ResponseWriter, r *http.Request) {
	h.bulkSetBanned(w, r, false)
}

func (h *PlayerAdminHandler) bulkSetBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	var input bulkRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	updated, err := h.adminSvc.BulkSetBanned(r.Context(), input.PlayerIDs, banned)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if updated == nil {
		updated = []uuid.UUID{}
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// BulkGiveCredits handles POST /admin/players/bulk/credits.
func (h *PlayerAdminHandler) BulkGiveCredits(w http.ResponseWriter, r *http.Request) {
	var input bulkRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	updated, err := h.adminSvc.BulkAddCredits(r.Context(), input.PlayerIDs, input.Amount)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if updated == nil {
		updated = []uuid.UUID{}
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// BulkDelete handles POST /admin/players/bulk/delete.
func (h *PlayerAdminHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var input bulkRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	if err := h.adminSvc.BulkDelete(r.Context(), input.PlayerIDs); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func playerID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidArgument("invalid player id")
	}
	return id, nil
}
