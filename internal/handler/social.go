package handler

import (
	"net/http"

	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/service"
)

// SocialHandler handles friendship endpoints.
type SocialHandler struct {
	socialSvc *service.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(socialSvc *service.SocialService) *SocialHandler {
	return &SocialHandler{socialSvc: socialSvc}
}

// friendRequest is the body of request and accept calls.
type friendRequest struct {
	Username string `json:"username"`
}

// Request handles POST /friends/request.
func (h *SocialHandler) Request(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input friendRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	if err := h.socialSvc.RequestFriend(r.Context(), player, input.Username); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "requested"})
}

// Accept handles POST /friends/accept.
func (h *SocialHandler) Accept(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input friendRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	if err := h.socialSvc.AcceptFriend(r.Context(), player, input.Username); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// ListFriends handles GET /friends.
func (h *SocialHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	friends, err := h.socialSvc.ListFriends(r.Context(), player.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if friends == nil {
		friends = []domain.Friend{}
	}

	RespondJSON(w, http.StatusOK, friends)
}

// ListRequests handles GET /friends/requests.
func (h *SocialHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	requests, err := h.socialSvc.ListRequests(r.Context(), player.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.Friend{}
	}

	RespondJSON(w, http.StatusOK, requests)
}
