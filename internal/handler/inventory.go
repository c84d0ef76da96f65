package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/service"
)

// InventoryHandler handles item stack endpoints.
type InventoryHandler struct {
	inventorySvc *service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventorySvc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// itemRequest is the body of add and remove calls.
type itemRequest struct {
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// List handles GET /inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	entries, err := h.inventorySvc.List(r.Context(), player.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}

	RespondJSON(w, http.StatusOK, entries)
}

// Add handles POST /inventory/add.
func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input itemRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	entry, err := h.inventorySvc.AddItem(r.Context(), player.ID, input.ItemName, input.Quantity, input.Metadata)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, entry)
}

// Remove handles POST /inventory/remove.
func (h *InventoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input itemRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	remaining, err := h.inventorySvc.RemoveItem(r.Context(), player.ID, input.ItemName, input.Quantity)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"item_name": input.ItemName,
		"quantity":  remaining,
	})
}
