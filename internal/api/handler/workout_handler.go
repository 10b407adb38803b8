package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fittrack/internal/api/middleware"
	"fittrack/internal/app/service"
	"fittrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

func (h *WorkoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.history)
	r.Post("/history", h.saveWorkout)
	r.Delete("/history/clear", h.clearHistory)
	r.Delete("/history/{workoutID}", h.deleteWorkout)
	r.Get("/stats", h.stats)
}

func (h *WorkoutHandler) history(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	history, err := h.workoutService.History(r.Context(), user.ID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (h *WorkoutHandler) saveWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req service.SaveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	entry, err := h.workoutService.Save(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "workout saved successfully",
		"workout": entry,
	})
}

func (h *WorkoutHandler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "workoutID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, "workout not found")
		return
	}

	if err := h.workoutService.Delete(r.Context(), user.ID, entryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "workout not found")
			return
		}
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"message": "workout removed successfully"})
}

func (h *WorkoutHandler) clearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.workoutService.Clear(r.Context(), user.ID); err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"message": "history cleared successfully"})
}

func (h *WorkoutHandler) stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	stats, err := h.workoutService.Stats(r.Context(), user.ID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
