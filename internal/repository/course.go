package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/model"
)

// CourseRepository defines the interface for course-related database operations.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	ListCoursesByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	CountCourses(ctx context.Context) (int64, error)
}

const courseCollection = "courses"

type courseMongoRepository struct {
	db *mongo.Database
}

func NewCourseMongoRepository(db *mongo.Database) CourseRepository {
	return &courseMongoRepository{db: db}
}

func (r *courseMongoRepository) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	course.CreatedAt = time.Now()

	result, err := r.db.Collection(courseCollection).InsertOne(ctx, course)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		course.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return course, nil
}

func (r *courseMongoRepository) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(courseCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var course model.Course
	if err := result.Decode(&course); err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseMongoRepository) ListCourses(ctx context.Context) ([]*model.Course, error) {
	cursor, err := r.db.Collection(courseCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*model.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseMongoRepository) ListCoursesByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Course, error) {
	if len(ids) == 0 {
		return []*model.Course{}, nil
	}

	cursor, err := r.db.Collection(courseCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*model.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseMongoRepository) DeleteCourse(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(courseCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *courseMongoRepository) CountCourses(ctx context.Context) (int64, error) {
	return r.db.Collection(courseCollection).CountDocuments(ctx, bson.M{})
}
