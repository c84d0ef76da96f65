package handler

import (
	"net/http"

	"github.com/playvault/platform/internal/service"
)

// WalletHandler handles credit balance endpoints.
type WalletHandler struct {
	economySvc *service.EconomyService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(economySvc *service.EconomyService) *WalletHandler {
	return &WalletHandler{economySvc: economySvc}
}

// balanceResponse is the shape of balance-returning wallet endpoints.
type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// amountRequest is the body of spend and add calls.
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// GetBalance handles GET /wallet/balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, balanceResponse{Balance: player.Balance})
}

// Spend handles POST /wallet/spend.
func (h *WalletHandler) Spend(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input amountRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	balance, err := h.economySvc.Spend(r.Context(), player.ID, input.Amount)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

// Add handles POST /wallet/add.
func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input amountRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	balance, err := h.economySvc.Add(r.Context(), player.ID, input.Amount)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}
