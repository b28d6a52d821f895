package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/shared/payment"
)

// CourseUsecase defines the business logic for browsing the catalog and
// starting a purchase.
type CourseUsecase interface {
	ListCourses(ctx context.Context) ([]*model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	MyCourses(ctx context.Context, user *model.User) ([]*model.Course, error)

	// ListLectures and GetLecture gate lecture content: admins see
	// everything, other users must hold the course in their subscription.
	ListLectures(ctx context.Context, user *model.User, courseID string) ([]*model.Lecture, error)
	GetLecture(ctx context.Context, user *model.User, lectureID string) (*model.Lecture, error)

	// Checkout creates a payment order for a course the user does not own yet.
	Checkout(ctx context.Context, user *model.User, courseID string) (*payment.Order, *model.Course, error)
}

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrLectureNotFound  = errors.New("lecture not found")
	ErrNotSubscribed    = errors.New("course is not in the user's subscription")
	ErrAlreadyPurchased = errors.New("user already has this course")
)

type courseUsecase struct {
	courseRepo  repository.CourseRepository
	lectureRepo repository.LectureRepository
	orders      payment.OrderProvider
}

// NewCourseUsecase creates a new instance of CourseUsecase.
func NewCourseUsecase(
	courseRepo repository.CourseRepository,
	lectureRepo repository.LectureRepository,
	orders payment.OrderProvider,
) CourseUsecase {
	return &courseUsecase{
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
		orders:      orders,
	}
}

func (u *courseUsecase) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return u.courseRepo.ListCourses(ctx)
}

func (u *courseUsecase) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := u.courseRepo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}

		return nil, err
	}

	return course, nil
}

func (u *courseUsecase) MyCourses(ctx context.Context, user *model.User) ([]*model.Course, error) {
	return u.courseRepo.ListCoursesByIDs(ctx, user.Subscription)
}

func (u *courseUsecase) ListLectures(ctx context.Context, user *model.User, courseID string) ([]*model.Lecture, error) {
	course, err := u.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if user.Role != model.RoleAdmin && !user.Subscribed(course.ID) {
		return nil, ErrNotSubscribed
	}

	return u.lectureRepo.ListLecturesByCourse(ctx, courseID)
}

func (u *courseUsecase) GetLecture(ctx context.Context, user *model.User, lectureID string) (*model.Lecture, error) {
	lecture, err := u.lectureRepo.GetLecture(ctx, lectureID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLectureNotFound
		}

		return nil, err
	}

	if user.Role != model.RoleAdmin && !user.Subscribed(lecture.Course) {
		return nil, ErrNotSubscribed
	}

	return lecture, nil
}

func (u *courseUsecase) Checkout(ctx context.Context, user *model.User, courseID string) (*payment.Order, *model.Course, error) {
	course, err := u.GetCourse(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	if user.Subscribed(course.ID) {
		return nil, nil, ErrAlreadyPurchased
	}

	// Amount in paise; the receipt must be unique and under 40 characters.
	hexID := course.ID.Hex()
	receipt := fmt.Sprintf("rcpt_%s", hexID[len(hexID)-8:])

	order, err := u.orders.CreateOrder(course.Price*100, "INR", receipt)
	if err != nil {
		return nil, nil, err
	}

	return order, course, nil
}
