package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/usecase"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.usecases.Auth.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		default:
			log.Error().Err(err).Msg("failed to register user")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{
		Message:         "OTP sent to your email",
		ActivationToken: token,
	})
}

func (h *Handler) verifyUser(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.usecases.Auth.VerifyRegistration(r.Context(), req.OTP, req.ActivationToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrActivationExpired):
			writeMessage(w, http.StatusBadRequest, "OTP expired")
		case errors.Is(err, usecase.ErrWrongOTP):
			writeMessage(w, http.StatusBadRequest, "Wrong OTP")
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		default:
			log.Error().Err(err).Msg("failed to verify registration")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "User registered")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, user, err := h.usecases.Auth.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusBadRequest, "No user with this email")
		case errors.Is(err, usecase.ErrWrongPassword):
			writeMessage(w, http.StatusBadRequest, "Wrong password")
		default:
			log.Error().Err(err).Msg("failed to login user")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: fmt.Sprintf("Welcome back %s", user.Name),
		Token:   token,
		User:    user,
	})
}

func (h *Handler) myProfile(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
		return
	}

	// Fresh lookup rather than the guard's snapshot, so a subscription or
	// role change made during the session shows up immediately.
	profile, err := h.usecases.Auth.Profile(r.Context(), user.ID.Hex())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Error().Err(err).Msg("failed to get profile")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.usecases.PasswordReset.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "No user with this email")
		default:
			log.Error().Err(err).Msg("failed to request password reset")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Reset password link sent to your email")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.usecases.PasswordReset.ResetPassword(r.Context(), r.URL.Query().Get("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenExpired):
			writeMessage(w, http.StatusBadRequest, "Token expired")
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "No user with this email")
		default:
			log.Error().Err(err).Msg("failed to reset password")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password reset")
}
