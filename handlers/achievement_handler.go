package handlers

import (
	"net/http"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(as services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: as}
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.achievementService.ListAchievements(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"achievements": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AchievementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	a, err := h.achievementService.GetAchievement(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"achievement": a}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.AchievementInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	a, err := h.achievementService.CreateAchievement(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"achievement": a}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AchievementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AchievementInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	a, err := h.achievementService.UpdateAchievement(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"achievement": a}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AchievementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.achievementService.DeleteAchievement(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AchievementHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	list, err := h.achievementService.ListUserAchievements(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user_achievements": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AchievementHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ua, err := h.achievementService.GetUserAchievement(r.Context(), id, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user_achievement": ua}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type grantInput struct {
	UserID        int `json:"user_id"`
	AchievementID int `json:"achievement_id"`
}

// Grant выдает достижение вручную (только admin).
func (h *AchievementHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var input grantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fields := map[string]string{}
	if input.UserID <= 0 {
		fields["user_id"] = "must be provided"
	}
	if input.AchievementID <= 0 {
		fields["achievement_id"] = "must be provided"
	}
	if len(fields) > 0 {
		failedValidationResponse(w, r, fields)
		return
	}

	granted, err := h.achievementService.GrantAchievement(r.Context(), input.UserID, input.AchievementID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if granted {
		status = http.StatusCreated
	}
	if err := writeJSON(w, status, jsonResponse{"granted": granted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Evaluate проверяет критерии для текущего пользователя и возвращает новые достижения.
func (h *AchievementHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	granted, err := h.achievementService.EvaluateUser(r.Context(), userID, services.TriggerManual)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if granted == nil {
		granted = []models.Achievement{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"granted": granted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
