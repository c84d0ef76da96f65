package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/handler"
	"github.com/playvault/platform/internal/service"
)

// CosmeticAdminHandler handles owner-capability catalog management.
type CosmeticAdminHandler struct {
	cosmeticsSvc *service.CosmeticsService
}

// NewCosmeticAdminHandler creates a new CosmeticAdminHandler.
func NewCosmeticAdminHandler(cosmeticsSvc *service.CosmeticsService) *CosmeticAdminHandler {
	return &CosmeticAdminHandler{cosmeticsSvc: cosmeticsSvc}
}

// ListDefinitions handles GET /admin/cosmetics?game_id=...
func (h *CosmeticAdminHandler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if err := domain.ValidateGameID(gameID); err != nil {
		handler.RespondError(w, domain.ErrInvalidArgument(err.Error()))
		return
	}

	defs, err := h.cosmeticsSvc.ListCatalog(r.Context(), gameID)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if defs == nil {
		defs = []domain.Cosmetic{}
	}

	handler.RespondJSON(w, http.StatusOK, defs)
}

// CreateDefinition handles POST /admin/cosmetics.
func (h *CosmeticAdminHandler) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	var input service.DefinitionInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	cosmetic, err := h.cosmeticsSvc.CreateDefinition(r.Context(), input)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, cosmetic)
}

// UpdateDefinition handles PUT /admin/cosmetics/{id}.
func (h *CosmeticAdminHandler) UpdateDefinition(w http.ResponseWriter, r *http.Request) {
	id, err := cosmeticID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var input service.DefinitionInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	cosmetic, err := h.cosmeticsSvc.UpdateDefinition(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cosmetic)
}

// DeleteDefinition handles DELETE /admin/cosmetics/{id}.
func (h *CosmeticAdminHandler) DeleteDefinition(w http.ResponseWriter, r *http.Request) {
	id, err := cosmeticID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	if err := h.cosmeticsSvc.DeleteDefinition(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// grantRequest is the body of POST /admin/cosmetics/{id}/grant.
type grantRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
}

// Grant handles POST /admin/cosmetics/{id}/grant.
func (h *CosmeticAdminHandler) Grant(w http.ResponseWriter, r *http.Request) {
	id, err := cosmeticID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var input grantRequest
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondBadBody(w)
		return
	}

	if err := h.cosmeticsSvc.Grant(r.Context(), input.PlayerID, id); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func cosmeticID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidArgument("invalid cosmetic id")
	}
	return id, nil
}
