// Package handler implements the HTTP transport layer of the API: routing,
// the session and admin guards, payload validation, and the uniform
// {"message": ...} error envelope.
package handler

import (
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/internal/usecase"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
	"github.com/vasapolrittideah/elearning-api/shared/validator"
)

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	usecases *usecase.Usecases
	jwtAuth  auth.JWTAuthenticator
	userRepo repository.UserRepository
	validate *validator.Validator
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(
	usecases *usecase.Usecases,
	jwtAuth auth.JWTAuthenticator,
	userRepo repository.UserRepository,
	validate *validator.Validator,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		usecases: usecases,
		jwtAuth:  jwtAuth,
		userRepo: userRepo,
		validate: validate,
		cfg:      cfg,
		logger:   logger,
	}
}
