package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/usecase"
)

func (h *Handler) addProgress(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	courseID := r.URL.Query().Get("course")
	lectureID := r.URL.Query().Get("lectureId")
	if courseID == "" || lectureID == "" {
		writeMessage(w, http.StatusBadRequest, "course and lectureId query parameters are required")
		return
	}

	err := h.usecases.Progress.MarkComplete(r.Context(), user.ID.Hex(), courseID, lectureID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProgressNotFound):
			writeMessage(w, http.StatusNotFound, "Progress not found")
		default:
			log.Error().Err(err).Msg("failed to record progress")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusCreated, "Progress recorded")
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	courseID := r.URL.Query().Get("course")
	if courseID == "" {
		writeMessage(w, http.StatusBadRequest, "course query parameter is required")
		return
	}

	progress, err := h.usecases.Progress.Get(r.Context(), user.ID.Hex(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProgressNotFound):
			writeMessage(w, http.StatusNotFound, "Progress not found")
		default:
			log.Error().Err(err).Msg("failed to get progress")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"courseProgressPercentage": progress.Percentage,
		"completedLectures":        progress.CompletedLectures,
		"allLectures":              progress.AllLectures,
		"progress":                 progress.Progress,
	})
}
