package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/elearning-api/internal/model"
)

// ProgressRepository defines the interface for per-user course progress.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, courseID string) (*model.Progress, error)

	// EnsureProgress upserts the initial empty progress document for a
	// (user, course) pair. Safe under concurrent payment callbacks.
	EnsureProgress(ctx context.Context, userID, courseID string) error

	// AddCompletedLecture records a completed lecture with $addToSet, so
	// marking the same lecture twice is a no-op.
	AddCompletedLecture(ctx context.Context, userID, courseID, lectureID string) error

	DeleteProgressByCourse(ctx context.Context, courseID string) error
}

const progressCollection = "progress"

type progressMongoRepository struct {
	db *mongo.Database
}

// NewProgressMongoRepository creates a MongoDB repository for progress records.
func NewProgressMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProgressRepository {
	collection := db.Collection(progressCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "course", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create progress indexes")
	}

	return &progressMongoRepository{db: db}
}

func (r *progressMongoRepository) GetProgress(ctx context.Context, userID, courseID string) (*model.Progress, error) {
	filter, err := progressFilter(userID, courseID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(progressCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var progress model.Progress
	if err := result.Decode(&progress); err != nil {
		return nil, err
	}

	return &progress, nil
}

func (r *progressMongoRepository) EnsureProgress(ctx context.Context, userID, courseID string) error {
	filter, err := progressFilter(userID, courseID)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.Collection(progressCollection).UpdateOne(
		ctx,
		filter,
		bson.M{
			"$setOnInsert": bson.M{
				"completed_lectures": []bson.ObjectID{},
				"created_at":         now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *progressMongoRepository) AddCompletedLecture(ctx context.Context, userID, courseID, lectureID string) error {
	filter, err := progressFilter(userID, courseID)
	if err != nil {
		return err
	}

	lectureObjectID, err := bson.ObjectIDFromHex(lectureID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(progressCollection).UpdateOne(
		ctx,
		filter,
		bson.M{
			"$addToSet": bson.M{"completed_lectures": lectureObjectID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *progressMongoRepository) DeleteProgressByCourse(ctx context.Context, courseID string) error {
	courseObjectID, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(progressCollection).DeleteMany(ctx, bson.M{"course": courseObjectID})
	return err
}

func progressFilter(userID, courseID string) (bson.M, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	courseObjectID, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, err
	}

	return bson.M{"user": userObjectID, "course": courseObjectID}, nil
}
