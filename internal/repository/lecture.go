package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
)

// LectureRepository defines the interface for lecture-related database operations.
type LectureRepository interface {
	CreateLecture(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error)
	GetLecture(ctx context.Context, id string) (*model.Lecture, error)
	ListLecturesByCourse(ctx context.Context, courseID string) ([]*model.Lecture, error)
	CountLecturesByCourse(ctx context.Context, courseID string) (int64, error)
	CountLectures(ctx context.Context) (int64, error)
	DeleteLecture(ctx context.Context, id string) error
	DeleteLecturesByCourse(ctx context.Context, courseID string) error
}

const lectureCollection = "lectures"

type lectureMongoRepository struct {
	db *mongo.Database
}

func NewLectureMongoRepository(db *mongo.Database) LectureRepository {
	return &lectureMongoRepository{db: db}
}

func (r *lectureMongoRepository) CreateLecture(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error) {
	lecture.CreatedAt = time.Now()

	result, err := r.db.Collection(lectureCollection).InsertOne(ctx, lecture)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		lecture.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return lecture, nil
}

func (r *lectureMongoRepository) GetLecture(ctx context.Context, id string) (*model.Lecture, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(lectureCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var lecture model.Lecture
	if err := result.Decode(&lecture); err != nil {
		return nil, err
	}

	return &lecture, nil
}

func (r *lectureMongoRepository) ListLecturesByCourse(ctx context.Context, courseID string) ([]*model.Lecture, error) {
	objectID, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.db.Collection(lectureCollection).Find(ctx, bson.M{"course": objectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lectures []*model.Lecture
	if err := cursor.All(ctx, &lectures); err != nil {
		return nil, err
	}

	return lectures, nil
}

func (r *lectureMongoRepository) CountLecturesByCourse(ctx context.Context, courseID string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return 0, err
	}

	return r.db.Collection(lectureCollection).CountDocuments(ctx, bson.M{"course": objectID})
}

func (r *lectureMongoRepository) CountLectures(ctx context.Context) (int64, error) {
	return r.db.Collection(lectureCollection).CountDocuments(ctx, bson.M{})
}

func (r *lectureMongoRepository) DeleteLecture(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(lectureCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *lectureMongoRepository) DeleteLecturesByCourse(ctx context.Context, courseID string) error {
	objectID, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(lectureCollection).DeleteMany(ctx, bson.M{"course": objectID})
	return err
}
