// internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alignd-app/alignd-backend/internal/auth"
	"github.com/alignd-app/alignd-backend/internal/common/utils"
)

type Handler struct {
	service     Service
	authService auth.Service
}

func NewHandler(service Service, authService auth.Service) *Handler {
	return &Handler{service: service, authService: authService}
}

// Register creates an account with seeded preferences and returns an access
// token alongside the new profile.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.Register(r.Context(), dto)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateAccessToken(r.Context(), account.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Success: true,
		Message: "Account created",
		Data: map[string]interface{}{
			"account":      account,
			"access_token": token,
		},
	})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := h.service.GetAccount(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, account)
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto UpdatePreferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.UpdatePreferences(r.Context(), userID, dto)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, account)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto SubmitQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SubmitQuiz(r.Context(), userID, dto); err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.MessageResponse(w, "Quiz results saved", http.StatusOK)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto UpdateLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateLocation(r.Context(), userID, dto); err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.MessageResponse(w, "Location updated", http.StatusOK)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrInvalidBirthDate):
		utils.RespondWithError(w, http.StatusBadRequest, "Date of birth must be YYYY-MM-DD")
	case errors.Is(err, ErrUnderage):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Must be at least 18 years old")
	case errors.Is(err, ErrInvalidQuizResults):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Quiz results must be between 0 and 5")
	case errors.Is(err, ErrInvalidPreferences):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Sexual preference must not be empty")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
