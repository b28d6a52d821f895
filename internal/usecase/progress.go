package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
)

// ProgressUsecase defines the business logic for lecture completion tracking.
type ProgressUsecase interface {
	// MarkComplete records a completed lecture; marking the same lecture
	// again is a no-op.
	MarkComplete(ctx context.Context, userID, courseID, lectureID string) error

	Get(ctx context.Context, userID, courseID string) (*CourseProgress, error)
}

// CourseProgress is the completion summary for one (user, course) pair.
type CourseProgress struct {
	Percentage        float64
	CompletedLectures int
	AllLectures       int64
	Progress          *model.Progress
}

var ErrProgressNotFound = errors.New("progress not found")

type progressUsecase struct {
	progressRepo repository.ProgressRepository
	lectureRepo  repository.LectureRepository
}

// NewProgressUsecase creates a new instance of ProgressUsecase.
func NewProgressUsecase(
	progressRepo repository.ProgressRepository,
	lectureRepo repository.LectureRepository,
) ProgressUsecase {
	return &progressUsecase{
		progressRepo: progressRepo,
		lectureRepo:  lectureRepo,
	}
}

func (u *progressUsecase) MarkComplete(ctx context.Context, userID, courseID, lectureID string) error {
	if _, err := u.progressRepo.GetProgress(ctx, userID, courseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProgressNotFound
		}

		return err
	}

	return u.progressRepo.AddCompletedLecture(ctx, userID, courseID, lectureID)
}

func (u *progressUsecase) Get(ctx context.Context, userID, courseID string) (*CourseProgress, error) {
	progress, err := u.progressRepo.GetProgress(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProgressNotFound
		}

		return nil, err
	}

	total, err := u.lectureRepo.CountLecturesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed := len(progress.CompletedLectures)

	// A course with no lectures is 0% complete, not a division failure.
	var percentage float64
	if total > 0 {
		percentage = float64(completed) * 100 / float64(total)
	}

	return &CourseProgress{
		Percentage:        percentage,
		CompletedLectures: completed,
		AllLectures:       total,
		Progress:          progress,
	}, nil
}
