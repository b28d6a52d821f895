package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
)

type userCtxKey struct{}

// userFromContext returns the authenticated user attached by sessionGuard.
func userFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*model.User)
	return user, ok
}

// requestLogger attaches a request-scoped logger carrying the chi request id
// to the context.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := h.logger.With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

// sessionGuard enforces bearer-token authentication. Absent, malformed,
// expired, and invalid tokens are all rejected with the same 401; a token
// whose subject no longer exists in the store is rejected identically.
// On success the resolved user is attached to the request context.
func (h *Handler) sessionGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		header := r.Header.Get("Authorization")
		if header == "" {
			writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims := &auth.SessionClaims{}
		if _, err := h.jwtAuth.ValidateTokenWithClaims(parts[1], h.cfg.SessionSecret, claims); err != nil {
			log.Debug().Err(err).Msg("session token rejected")
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := h.userRepo.GetUser(r.Context(), claims.UserID)
		if err != nil {
			log.Debug().Err(err).Str("user_id", claims.UserID).Msg("session subject not found")
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly rejects non-admin identities from admin operations. It must run
// after sessionGuard.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Token missing. Please login.")
			return
		}

		if user.Role != model.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "You are not admin")
			return
		}

		next.ServeHTTP(w, r)
	})
}
