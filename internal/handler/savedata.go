package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/service"
)

// SaveHandler handles free-form save-data endpoints.
type SaveHandler struct {
	saveSvc *service.SaveService
}

// NewSaveHandler creates a new SaveHandler.
func NewSaveHandler(saveSvc *service.SaveService) *SaveHandler {
	return &SaveHandler{saveSvc: saveSvc}
}

// List handles GET /saves.
func (h *SaveHandler) List(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entries, err := h.saveSvc.List(r.Context(), player.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.SaveEntry{}
	}

	RespondJSON(w, http.StatusOK, entries)
}

// Get handles GET /saves/{key}.
func (h *SaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entry, err := h.saveSvc.Get(r.Context(), player.ID, chi.URLParam(r, "key"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, entry)
}

// Put handles PUT /saves/{key}. The body is stored verbatim as the value.
func (h *SaveHandler) Put(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		RespondBadBody(w)
		return
	}

	if err := h.saveSvc.Put(r.Context(), player.ID, chi.URLParam(r, "key"), json.RawMessage(body)); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Delete handles DELETE /saves/{key}.
func (h *SaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.saveSvc.Delete(r.Context(), player.ID, chi.URLParam(r, "key")); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ConfigHandler exposes per-game config values to authenticated players.
type ConfigHandler struct {
	configSvc *service.GameConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configSvc *service.GameConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

// List handles GET /config.
func (h *ConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entries, err := h.configSvc.List(r.Context(), player.GameID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}

	RespondJSON(w, http.StatusOK, entries)
}

// Get handles GET /config/{key}.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entry, err := h.configSvc.Get(r.Context(), player.GameID, chi.URLParam(r, "key"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, entry)
}
