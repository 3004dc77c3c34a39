package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alignd-app/alignd-backend/internal/auth"
	"github.com/alignd-app/alignd-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Discover returns a ranked, paginated page of match candidates
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	skip, _ := strconv.Atoi(query.Get("skip"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	key := ParseSortKey(query.Get("sort"))
	direction := ParseSortDirection(query.Get("direction"))

	result, err := h.service.FindMatchCandidates(r.Context(), userID, skip, limit, key, direction)
	if err != nil {
		h.respondServiceError(w, err, "Failed to find match candidates")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toDiscoverResponse(result))
}

// GetCompatibility computes the values-alignment score with another user
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	score, err := h.service.ComputeCompatibility(r.Context(), userID, otherID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to compute compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, CompatibilityResponse{UserID: otherID, Score: score})
}

// LikeUser records a like and reports whether it completed a match
func (h *Handler) LikeUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto LikeUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.LikeUser(r.Context(), userID, dto.LikedID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to record like")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// UnlikeUser removes a like edge
func (h *Handler) UnlikeUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	unlikedID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.UnlikeUser(r.Context(), userID, unlikedID); err != nil {
		h.respondServiceError(w, err, "Failed to remove like")
		return
	}

	utils.MessageResponse(w, "Like removed", http.StatusOK)
}

// GetMatches lists the user's mutual matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profiles, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get matches")
		return
	}

	matches := make([]MatchedUserResponse, 0, len(profiles))
	for _, p := range profiles {
		matches = append(matches, MatchedUserResponse{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Gender:      p.Gender,
			Age:         p.Age(),
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// GetNotifications lists unseen match notifications
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := h.service.GetUnseenNotifications(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get notifications")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

// MarkNotificationSeen acknowledges a match notification
func (h *Handler) MarkNotificationSeen(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notificationID := mux.Vars(r)["id"]
	if err := h.service.MarkNotificationSeen(r.Context(), notificationID, userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark notification seen")
		return
	}

	utils.MessageResponse(w, "Notification marked seen", http.StatusOK)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrQuizIncomplete):
		// Distinct from an empty result set; the client shows the quiz
		// prompt, not an empty discovery feed
		utils.RespondWithErrorCode(w, http.StatusConflict, "quiz_incomplete", err.Error())
	case errors.Is(err, ErrAlreadyLiked):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrLikeNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCannotLikeSelf):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidPreferences):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
