package handlers

import (
	"net/http"

	"github.com/rookieryder/golf-backend/services"
)

type FriendshipHandler struct {
	friendshipService services.FriendshipService
}

func NewFriendshipHandler(fs services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: fs}
}

type friendInput struct {
	FriendID *int `json:"friend_id"`
}

func (h *FriendshipHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.friendshipService.ListFriends(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"friendships": friends}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FriendshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input friendInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.friendshipService.AddFriend(r.Context(), userID, input.FriendID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"friendship": jsonResponse{"user_id": userID, "friend_id": *input.FriendID}}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FriendshipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input friendInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.friendshipService.RemoveFriend(r.Context(), userID, input.FriendID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
