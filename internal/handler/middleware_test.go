package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/usecase"
)

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Message
}

func TestSessionGuard(t *testing.T) {
	userID := bson.NewObjectID()
	stored := &model.User{ID: userID, Name: "Alice", Role: model.RoleUser}

	userRepo := &mockUserRepository{
		getUserFn: func(_ context.Context, id string) (*model.User, error) {
			if id == userID.Hex() {
				return stored, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}

	authUC := &mockAuthUsecase{
		profileFn: func(_ context.Context, id string) (*model.User, error) {
			require.Equal(t, userID.Hex(), id)
			return stored, nil
		},
	}

	h := newTestHandler(t, &usecase.Usecases{Auth: authUC}, userRepo)
	router := h.Init()

	tests := []struct {
		name        string
		authHeader  string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token missing. Please login.",
		},
		{
			name:        "malformed header",
			authHeader:  "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
		{
			name:        "garbage token",
			authHeader:  "Bearer not.a.token",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer " + signSessionToken(t, userID.Hex(), -time.Minute),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
		{
			name:        "token subject no longer exists",
			authHeader:  "Bearer " + signSessionToken(t, bson.NewObjectID().Hex(), time.Hour),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signSessionToken(t, userID.Hex(), time.Hour),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, messageOf(t, rec))
			}
		})
	}
}

func TestSessionGuard_AttachesUser(t *testing.T) {
	userID := bson.NewObjectID()
	userRepo := &mockUserRepository{
		getUserFn: func(_ context.Context, _ string) (*model.User, error) {
			return &model.User{ID: userID, Name: "Alice"}, nil
		},
	}

	// The guard must hand the resolved identity to the handler; Profile
	// receiving the guard's user id proves the context wiring.
	authUC := &mockAuthUsecase{
		profileFn: func(_ context.Context, id string) (*model.User, error) {
			require.Equal(t, userID.Hex(), id)
			return &model.User{ID: userID, Name: "Alice"}, nil
		},
	}

	h := newTestHandler(t, &usecase.Usecases{Auth: authUC}, userRepo)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, userID.Hex(), time.Hour))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Alice", body.User.Name)
}

func TestRouterAllowsCrossOrigin(t *testing.T) {
	h := newTestHandler(t, &usecase.Usecases{}, &mockUserRepository{})
	router := h.Init()

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/user/login", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})
}

func TestAdminOnly(t *testing.T) {
	adminID := bson.NewObjectID()
	regularID := bson.NewObjectID()

	userRepo := &mockUserRepository{
		getUserFn: func(_ context.Context, id string) (*model.User, error) {
			switch id {
			case adminID.Hex():
				return &model.User{ID: adminID, Role: model.RoleAdmin}, nil
			case regularID.Hex():
				return &model.User{ID: regularID, Role: model.RoleUser}, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}

	admin := &mockAdminUsecase{
		listUsersFn: func(_ context.Context, _ string) ([]*model.User, error) {
			return []*model.User{}, nil
		},
	}

	h := newTestHandler(t, &usecase.Usecases{Admin: admin}, userRepo)
	router := h.Init()

	t.Run("regular user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+signSessionToken(t, regularID.Hex(), time.Hour))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You are not admin", messageOf(t, rec))
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+signSessionToken(t, adminID.Hex(), time.Hour))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
