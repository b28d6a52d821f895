package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/elearning-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdatePassword replaces the password hash and clears any pending
	// reset window.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetResetPasswordExpire opens a server-side reset window that can be
	// revoked independently of the reset token's own expiry.
	SetResetPasswordExpire(ctx context.Context, id string, expiresAt time.Time) error

	// AddSubscription adds a course to the user's subscription set. The
	// update is an atomic $addToSet, so concurrent payment callbacks for
	// the same course cannot produce duplicate entries.
	AddSubscription(ctx context.Context, id string, courseID bson.ObjectID) error

	UpdateRole(ctx context.Context, id string, role string) (*model.User, error)
	ListUsers(ctx context.Context, excludeID string) ([]*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates a MongoDB repository for users. The unique
// email index is the replay defense for activation tokens: re-confirming a
// still-valid token fails the duplicate insert here.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Subscription == nil {
		user.Subscription = []bson.ObjectID{}
	}

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$set": bson.M{
				"password_hash": passwordHash,
				"updated_at":    time.Now(),
			},
			"$unset": bson.M{"reset_password_expire": ""},
		},
	)
	return err
}

func (r *userMongoRepository) SetResetPasswordExpire(ctx context.Context, id string, expiresAt time.Time) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"reset_password_expire": expiresAt,
			"updated_at":            time.Now(),
		}},
	)
	return err
}

func (r *userMongoRepository) AddSubscription(ctx context.Context, id string, courseID bson.ObjectID) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$addToSet": bson.M{"subscription": courseID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *userMongoRepository) UpdateRole(ctx context.Context, id string, role string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"role":       role,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context, excludeID string) ([]*model.User, error) {
	filter := bson.M{}
	if excludeID != "" {
		objectID, err := bson.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	cursor, err := r.db.Collection(userCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userMongoRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.db.Collection(userCollection).CountDocuments(ctx, bson.M{})
}
