package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/service"
)

// CosmeticsHandler handles the catalog and player cosmetics endpoints.
type CosmeticsHandler struct {
	cosmeticsSvc *service.CosmeticsService
}

// NewCosmeticsHandler creates a new CosmeticsHandler.
func NewCosmeticsHandler(cosmeticsSvc *service.CosmeticsService) *CosmeticsHandler {
	return &CosmeticsHandler{cosmeticsSvc: cosmeticsSvc}
}

// ListCatalog handles GET /cosmetics.
func (h *CosmeticsHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	defs, err := h.cosmeticsSvc.ListCatalog(r.Context(), player.GameID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if defs == nil {
		defs = []domain.Cosmetic{}
	}

	RespondJSON(w, http.StatusOK, defs)
}

// ListOwned handles GET /cosmetics/owned.
func (h *CosmeticsHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	owned, err := h.cosmeticsSvc.ListOwned(r.Context(), player.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if owned == nil {
		owned = []domain.OwnedCosmetic{}
	}

	RespondJSON(w, http.StatusOK, owned)
}

// Buy handles POST /cosmetics/{id}/buy.
func (h *CosmeticsHandler) Buy(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	cosmeticID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrInvalidArgument("invalid cosmetic id"))
		return
	}

	balance, err := h.cosmeticsSvc.Buy(r.Context(), player.ID, cosmeticID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

// equipRequest is the body of POST /cosmetics/{id}/equip.
type equipRequest struct {
	Equipped bool `json:"equipped"`
}

// Equip handles POST /cosmetics/{id}/equip.
func (h *CosmeticsHandler) Equip(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	cosmeticID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrInvalidArgument("invalid cosmetic id"))
		return
	}

	var input equipRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	if err := h.cosmeticsSvc.Equip(r.Context(), player.ID, cosmeticID, input.Equipped); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
