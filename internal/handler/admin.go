package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/usecase"
)

// maxUploadSize bounds multipart parsing memory for poster and video uploads.
const maxUploadSize = 512 << 20

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "price must be a number")
		return
	}

	duration, err := strconv.ParseInt(r.FormValue("duration"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "duration must be a number")
		return
	}

	image, err := h.saveUpload(r, "file")
	if err != nil {
		log.Error().Err(err).Msg("failed to store course poster")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	course, err := h.usecases.Admin.CreateCourse(r.Context(), usecase.CreateCourseParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		CreatedBy:   r.FormValue("createdBy"),
		Duration:    duration,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create course")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Course created",
		"course":  course,
	})
}

func (h *Handler) addLecture(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	video, err := h.saveUpload(r, "file")
	if err != nil {
		log.Error().Err(err).Msg("failed to store lecture video")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	lecture, err := h.usecases.Admin.AddLecture(r.Context(), chi.URLParam(r, "id"), usecase.AddLectureParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Video:       video,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		default:
			log.Error().Err(err).Msg("failed to add lecture")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Lecture added",
		"lecture": lecture,
	})
}

func (h *Handler) deleteLecture(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	err := h.usecases.Admin.DeleteLecture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLectureNotFound):
			writeMessage(w, http.StatusNotFound, "Lecture not found")
		default:
			log.Error().Err(err).Msg("failed to delete lecture")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Lecture deleted")
}

func (h *Handler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	err := h.usecases.Admin.DeleteCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		default:
			log.Error().Err(err).Msg("failed to delete course")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Course deleted")
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	stats, err := h.usecases.Admin.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to collect stats")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	requester, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	users, err := h.usecases.Admin.ListUsers(r.Context(), requester.ID.Hex())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, err := h.usecases.Admin.ToggleRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Error().Err(err).Msg("failed to update role")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Role updated to " + user.Role,
		"user":    user,
	})
}

// saveUpload stores the named multipart file under the upload directory with
// a random name and returns the stored path.
func (h *Handler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := filepath.Join(h.cfg.UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return path, nil
}
