package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/usecase"
)

func (h *Handler) getAllCourses(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	courses, err := h.usecases.Course.ListCourses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list courses")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	course, err := h.usecases.Course.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		default:
			log.Error().Err(err).Msg("failed to get course")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"course": course})
}

func (h *Handler) fetchLectures(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	lectures, err := h.usecases.Course.ListLectures(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		case errors.Is(err, usecase.ErrNotSubscribed):
			writeMessage(w, http.StatusForbidden, "You have not subscribed to this course")
		default:
			log.Error().Err(err).Msg("failed to list lectures")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lectures": lectures})
}

func (h *Handler) fetchLecture(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	lecture, err := h.usecases.Course.GetLecture(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLectureNotFound):
			writeMessage(w, http.StatusNotFound, "Lecture not found")
		case errors.Is(err, usecase.ErrNotSubscribed):
			writeMessage(w, http.StatusForbidden, "You have not subscribed to this course")
		default:
			log.Error().Err(err).Msg("failed to get lecture")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lecture": lecture})
}

func (h *Handler) myCourses(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	courses, err := h.usecases.Course.MyCourses(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Msg("failed to list purchased courses")
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	order, course, err := h.usecases.Course.Checkout(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		case errors.Is(err, usecase.ErrAlreadyPurchased):
			writeMessage(w, http.StatusBadRequest, "You already have this course")
		default:
			log.Error().Err(err).Msg("failed to create payment order")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, CheckoutResponse{Order: order, Course: course})
}

func (h *Handler) paymentVerification(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	var req PaymentVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.usecases.Payment.VerifyPayment(r.Context(), user, chi.URLParam(r, "id"), usecase.VerifyPaymentParams{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPaymentInvalid):
			writeMessage(w, http.StatusBadRequest, "Payment failed")
		case errors.Is(err, usecase.ErrCourseNotFound):
			writeMessage(w, http.StatusNotFound, "Course not found")
		default:
			log.Error().Err(err).Msg("failed to verify payment")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Course purchased successfully")
}
