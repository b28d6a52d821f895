package handler

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/usecase"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
	"github.com/vasapolrittideah/elearning-api/shared/validator"
)

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user *model.User) (*model.User, error)
	getUserFn         func(ctx context.Context, id string) (*model.User, error)
	getUserByEmailFn  func(ctx context.Context, email string) (*model.User, error)
	updatePasswordFn  func(ctx context.Context, id string, passwordHash string) error
	setResetExpireFn  func(ctx context.Context, id string, expiresAt time.Time) error
	addSubscriptionFn func(ctx context.Context, id string, courseID bson.ObjectID) error
	updateRoleFn      func(ctx context.Context, id string, role string) (*model.User, error)
	listUsersFn       func(ctx context.Context, excludeID string) ([]*model.User, error)
	countUsersFn      func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	return m.getUserFn(ctx, id)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.getUserByEmailFn(ctx, email)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return m.updatePasswordFn(ctx, id, passwordHash)
}

func (m *mockUserRepository) SetResetPasswordExpire(ctx context.Context, id string, expiresAt time.Time) error {
	return m.setResetExpireFn(ctx, id, expiresAt)
}

func (m *mockUserRepository) AddSubscription(ctx context.Context, id string, courseID bson.ObjectID) error {
	return m.addSubscriptionFn(ctx, id, courseID)
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role string) (*model.User, error) {
	return m.updateRoleFn(ctx, id, role)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, excludeID string) ([]*model.User, error) {
	return m.listUsersFn(ctx, excludeID)
}

func (m *mockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	return m.countUsersFn(ctx)
}

type mockAuthUsecase struct {
	registerFn func(ctx context.Context, params usecase.RegisterParams) (string, error)
	verifyFn   func(ctx context.Context, otp, activationToken string) error
	loginFn    func(ctx context.Context, params usecase.LoginParams) (string, *model.User, error)
	profileFn  func(ctx context.Context, userID string) (*model.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, params usecase.RegisterParams) (string, error) {
	return m.registerFn(ctx, params)
}

func (m *mockAuthUsecase) VerifyRegistration(ctx context.Context, otp, activationToken string) error {
	return m.verifyFn(ctx, otp, activationToken)
}

func (m *mockAuthUsecase) Login(ctx context.Context, params usecase.LoginParams) (string, *model.User, error) {
	return m.loginFn(ctx, params)
}

func (m *mockAuthUsecase) Profile(ctx context.Context, userID string) (*model.User, error) {
	return m.profileFn(ctx, userID)
}

type mockPaymentUsecase struct {
	verifyPaymentFn func(ctx context.Context, user *model.User, courseID string, params usecase.VerifyPaymentParams) error
}

func (m *mockPaymentUsecase) VerifyPayment(ctx context.Context, user *model.User, courseID string, params usecase.VerifyPaymentParams) error {
	return m.verifyPaymentFn(ctx, user, courseID, params)
}

type mockAdminUsecase struct {
	createCourseFn  func(ctx context.Context, params usecase.CreateCourseParams) (*model.Course, error)
	addLectureFn    func(ctx context.Context, courseID string, params usecase.AddLectureParams) (*model.Lecture, error)
	deleteLectureFn func(ctx context.Context, id string) error
	deleteCourseFn  func(ctx context.Context, id string) error
	statsFn         func(ctx context.Context) (*usecase.Stats, error)
	listUsersFn     func(ctx context.Context, requesterID string) ([]*model.User, error)
	toggleRoleFn    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockAdminUsecase) CreateCourse(ctx context.Context, params usecase.CreateCourseParams) (*model.Course, error) {
	return m.createCourseFn(ctx, params)
}

func (m *mockAdminUsecase) AddLecture(ctx context.Context, courseID string, params usecase.AddLectureParams) (*model.Lecture, error) {
	return m.addLectureFn(ctx, courseID, params)
}

func (m *mockAdminUsecase) DeleteLecture(ctx context.Context, id string) error {
	return m.deleteLectureFn(ctx, id)
}

func (m *mockAdminUsecase) DeleteCourse(ctx context.Context, id string) error {
	return m.deleteCourseFn(ctx, id)
}

func (m *mockAdminUsecase) Stats(ctx context.Context) (*usecase.Stats, error) {
	return m.statsFn(ctx)
}

func (m *mockAdminUsecase) ListUsers(ctx context.Context, requesterID string) ([]*model.User, error) {
	return m.listUsersFn(ctx, requesterID)
}

func (m *mockAdminUsecase) ToggleRole(ctx context.Context, id string) (*model.User, error) {
	return m.toggleRoleFn(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "5000",
		MongoDatabase: "elearning-test",
		TokenIssuer:   "test",

		ActivationSecret: "activation-secret",
		SessionSecret:    "session-secret",
		ResetSecret:      "reset-secret",

		ActivationTokenExpiresIn: 5 * time.Minute,
		SessionTokenExpiresIn:    time.Hour,
		ResetTokenExpiresIn:      5 * time.Minute,

		RazorpaySecret: "rzp-secret",
		UploadDir:      "uploads",
	}
}

func newTestHandler(t *testing.T, usecases *usecase.Usecases, userRepo *mockUserRepository) *Handler {
	t.Helper()

	cfg := testConfig()
	logger := zerolog.Nop()

	validate, err := validator.New()
	require.NoError(t, err)

	return NewHandler(
		usecases,
		auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer),
		userRepo,
		validate,
		cfg,
		&logger,
	)
}

// signSessionToken issues a token the way login does, so guarded routes can
// be exercised end to end.
func signSessionToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()

	cfg := testConfig()
	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)

	now := time.Now()
	token, err := jwtAuth.GenerateToken(auth.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{cfg.TokenIssuer},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}, cfg.SessionSecret)
	require.NoError(t, err)

	return token
}
