package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/shared/payment"
)

// Repository and collaborator mocks. Each method field can be overridden per
// test case; calling an unset method panics, which fails the test loudly.

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

type mockCourseRepository struct {
	createCourseFn     func(ctx context.Context, course *model.Course) (*model.Course, error)
	getCourseFn        func(ctx context.Context, id string) (*model.Course, error)
	listCoursesFn      func(ctx context.Context) ([]*model.Course, error)
	listCoursesByIDsFn func(ctx context.Context, ids []bson.ObjectID) ([]*model.Course, error)
	deleteCourseFn     func(ctx context.Context, id string) error
	countCoursesFn     func(ctx context.Context) (int64, error)
}

func (m *mockCourseRepository) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	return m.createCourseFn(ctx, course)
}

func (m *mockCourseRepository) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	return m.getCourseFn(ctx, id)
}

func (m *mockCourseRepository) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return m.listCoursesFn(ctx)
}

func (m *mockCourseRepository) ListCoursesByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Course, error) {
	return m.listCoursesByIDsFn(ctx, ids)
}

func (m *mockCourseRepository) DeleteCourse(ctx context.Context, id string) error {
	return m.deleteCourseFn(ctx, id)
}

func (m *mockCourseRepository) CountCourses(ctx context.Context) (int64, error) {
	return m.countCoursesFn(ctx)
}

type mockLectureRepository struct {
	createLectureFn          func(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error)
	getLectureFn             func(ctx context.Context, id string) (*model.Lecture, error)
	listLecturesByCourseFn   func(ctx context.Context, courseID string) ([]*model.Lecture, error)
	countLecturesByCourseFn  func(ctx context.Context, courseID string) (int64, error)
	countLecturesFn          func(ctx context.Context) (int64, error)
	deleteLectureFn          func(ctx context.Context, id string) error
	deleteLecturesByCourseFn func(ctx context.Context, courseID string) error
}

func (m *mockLectureRepository) CreateLecture(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error) {
	return m.createLectureFn(ctx, lecture)
}

func (m *mockLectureRepository) GetLecture(ctx context.Context, id string) (*model.Lecture, error) {
	return m.getLectureFn(ctx, id)
}

func (m *mockLectureRepository) ListLecturesByCourse(ctx context.Context, courseID string) ([]*model.Lecture, error) {
	return m.listLecturesByCourseFn(ctx, courseID)
}

func (m *mockLectureRepository) CountLecturesByCourse(ctx context.Context, courseID string) (int64, error) {
	return m.countLecturesByCourseFn(ctx, courseID)
}

func (m *mockLectureRepository) CountLectures(ctx context.Context) (int64, error) {
	return m.countLecturesFn(ctx)
}

func (m *mockLectureRepository) DeleteLecture(ctx context.Context, id string) error {
	return m.deleteLectureFn(ctx, id)
}

func (m *mockLectureRepository) DeleteLecturesByCourse(ctx context.Context, courseID string) error {
	return m.deleteLecturesByCourseFn(ctx, courseID)
}

type mockPaymentRepository struct {
	createPaymentFn func(ctx context.Context, payment *model.Payment) (*model.Payment, error)
}

func (m *mockPaymentRepository) CreatePayment(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	return m.createPaymentFn(ctx, payment)
}

type mockProgressRepository struct {
	getProgressFn            func(ctx context.Context, userID, courseID string) (*model.Progress, error)
	ensureProgressFn         func(ctx context.Context, userID, courseID string) error
	addCompletedLectureFn    func(ctx context.Context, userID, courseID, lectureID string) error
	deleteProgressByCourseFn func(ctx context.Context, courseID string) error
}

func (m *mockProgressRepository) GetProgress(ctx context.Context, userID, courseID string) (*model.Progress, error) {
	return m.getProgressFn(ctx, userID, courseID)
}

func (m *mockProgressRepository) EnsureProgress(ctx context.Context, userID, courseID string) error {
	return m.ensureProgressFn(ctx, userID, courseID)
}

func (m *mockProgressRepository) AddCompletedLecture(ctx context.Context, userID, courseID, lectureID string) error {
	return m.addCompletedLectureFn(ctx, userID, courseID, lectureID)
}

func (m *mockProgressRepository) DeleteProgressByCourse(ctx context.Context, courseID string) error {
	return m.deleteProgressByCourseFn(ctx, courseID)
}

type mockMailSender struct {
	err  error
	sent []string
}

func (m *mockMailSender) SendHTML(_ []string, _, htmlBody string) error {
	m.sent = append(m.sent, htmlBody)
	return m.err
}

type mockOrderProvider struct {
	createOrderFn func(amount int64, currency, receipt string) (*payment.Order, error)
}

func (m *mockOrderProvider) CreateOrder(amount int64, currency, receipt string) (*payment.Order, error) {
	return m.createOrderFn(amount, currency, receipt)
}

func testConfig() *config.Config {
	return &config.Config{
		TokenIssuer:              "test",
		ActivationSecret:         "activation-secret",
		SessionSecret:            "session-secret",
		ResetSecret:              "reset-secret",
		RazorpayKey:              "rzp-key",
		RazorpaySecret:           "rzp-secret",
		ActivationTokenExpiresIn: 5 * time.Minute,
		SessionTokenExpiresIn:    time.Hour,
		ResetTokenExpiresIn:      5 * time.Minute,
		AppResetURL:              "http://localhost:5173/reset-password",
	}
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
