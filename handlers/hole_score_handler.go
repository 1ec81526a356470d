package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rookieryder/golf-backend/services"
)

type HoleScoreHandler struct {
	holeScoreService services.HoleScoreService
}

func NewHoleScoreHandler(hs services.HoleScoreService) *HoleScoreHandler {
	return &HoleScoreHandler{holeScoreService: hs}
}

func (h *HoleScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input services.HoleScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hs, err := h.holeScoreService.CreateHoleScore(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"hole_score": hs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List поддерживает фильтр ?round=<id>.
func (h *HoleScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var roundID *int
	if raw := r.URL.Query().Get("round"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errors.New("invalid round parameter"))
			return
		}
		roundID = &id
	}

	scores, err := h.holeScoreService.ListHoleScores(r.Context(), userID, roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hole_scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HoleScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hs, err := h.holeScoreService.GetHoleScore(r.Context(), id, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hole_score": hs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HoleScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.HoleScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hs, err := h.holeScoreService.UpdateHoleScore(r.Context(), id, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hole_score": hs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HoleScoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.holeScoreService.DeleteHoleScore(r.Context(), id, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
