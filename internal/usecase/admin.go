package usecase

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
)

// AdminUsecase defines catalog management and user administration.
type AdminUsecase interface {
	CreateCourse(ctx context.Context, params CreateCourseParams) (*model.Course, error)
	AddLecture(ctx context.Context, courseID string, params AddLectureParams) (*model.Lecture, error)
	DeleteLecture(ctx context.Context, id string) error

	// DeleteCourse removes the course together with its lectures and all
	// progress records.
	DeleteCourse(ctx context.Context, id string) error

	Stats(ctx context.Context) (*Stats, error)
	ListUsers(ctx context.Context, requesterID string) ([]*model.User, error)

	// ToggleRole flips a user between the user and admin roles.
	ToggleRole(ctx context.Context, id string) (*model.User, error)
}

// CreateCourseParams defines the parameters for creating a course.
type CreateCourseParams struct {
	Title       string
	Description string
	Category    string
	CreatedBy   string
	Duration    int64
	Price       int64
	Image       string
}

// AddLectureParams defines the parameters for adding a lecture to a course.
type AddLectureParams struct {
	Title       string
	Description string
	Video       string
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalCourses  int64 `json:"totalCourses"`
	TotalLectures int64 `json:"totalLectures"`
	TotalUsers    int64 `json:"totalUsers"`
}

type adminUsecase struct {
	userRepo     repository.UserRepository
	courseRepo   repository.CourseRepository
	lectureRepo  repository.LectureRepository
	progressRepo repository.ProgressRepository
	logger       *zerolog.Logger
}

// NewAdminUsecase creates a new instance of AdminUsecase.
func NewAdminUsecase(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	lectureRepo repository.LectureRepository,
	progressRepo repository.ProgressRepository,
	logger *zerolog.Logger,
) AdminUsecase {
	return &adminUsecase{
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		lectureRepo:  lectureRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

func (u *adminUsecase) CreateCourse(ctx context.Context, params CreateCourseParams) (*model.Course, error) {
	return u.courseRepo.CreateCourse(ctx, &model.Course{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		CreatedBy:   params.CreatedBy,
		Duration:    params.Duration,
		Price:       params.Price,
		Image:       params.Image,
	})
}

func (u *adminUsecase) AddLecture(ctx context.Context, courseID string, params AddLectureParams) (*model.Lecture, error) {
	course, err := u.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}

		return nil, err
	}

	return u.lectureRepo.CreateLecture(ctx, &model.Lecture{
		Title:       params.Title,
		Description: params.Description,
		Video:       params.Video,
		Course:      course.ID,
	})
}

func (u *adminUsecase) DeleteLecture(ctx context.Context, id string) error {
	lecture, err := u.lectureRepo.GetLecture(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrLectureNotFound
		}

		return err
	}

	u.removeFile(lecture.Video)

	return u.lectureRepo.DeleteLecture(ctx, id)
}

func (u *adminUsecase) DeleteCourse(ctx context.Context, id string) error {
	course, err := u.courseRepo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCourseNotFound
		}

		return err
	}

	lectures, err := u.lectureRepo.ListLecturesByCourse(ctx, id)
	if err != nil {
		return err
	}
	for _, lecture := range lectures {
		u.removeFile(lecture.Video)
	}
	u.removeFile(course.Image)

	if err := u.lectureRepo.DeleteLecturesByCourse(ctx, id); err != nil {
		return err
	}

	if err := u.progressRepo.DeleteProgressByCourse(ctx, id); err != nil {
		return err
	}

	return u.courseRepo.DeleteCourse(ctx, id)
}

func (u *adminUsecase) Stats(ctx context.Context) (*Stats, error) {
	totalCourses, err := u.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}

	totalLectures, err := u.lectureRepo.CountLectures(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := u.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalCourses:  totalCourses,
		TotalLectures: totalLectures,
		TotalUsers:    totalUsers,
	}, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, requesterID string) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx, requesterID)
}

func (u *adminUsecase) ToggleRole(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	role := model.RoleAdmin
	if user.Role == model.RoleAdmin {
		role = model.RoleUser
	}

	return u.userRepo.UpdateRole(ctx, id, role)
}

// removeFile deletes an uploaded asset; a failure only leaves an orphaned
// file behind and is not worth failing the request for.
func (u *adminUsecase) removeFile(path string) {
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		u.logger.Warn().Err(err).Str("path", path).Msg("failed to remove uploaded file")
	}
}
