package admin

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/handler"
	"github.com/playvault/platform/internal/service"
)

// ConfigAdminHandler handles owner-capability game config management.
type ConfigAdminHandler struct {
	configSvc *service.GameConfigService
}

// NewConfigAdminHandler creates a new ConfigAdminHandler.
func NewConfigAdminHandler(configSvc *service.GameConfigService) *ConfigAdminHandler {
	return &ConfigAdminHandler{configSvc: configSvc}
}

// List handles GET /admin/config/{gameID}.
func (h *ConfigAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.configSvc.List(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}

	handler.RespondJSON(w, http.StatusOK, entries)
}

// Put handles PUT /admin/config/{gameID}/{key}. The body is stored verbatim.
func (h *ConfigAdminHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		handler.RespondBadBody(w)
		return
	}

	if err := h.configSvc.Put(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "key"), json.RawMessage(body)); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Delete handles DELETE /admin/config/{gameID}/{key}.
func (h *ConfigAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.configSvc.Delete(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "key")); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
