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

// PaymentRepository defines the interface for payment audit rows.
type PaymentRepository interface {
	// CreatePayment appends an audit row. A replayed callback hits the
	// unique (order_id, payment_id) index and surfaces as a duplicate key
	// error, which callers treat as already-logged.
	CreatePayment(ctx context.Context, payment *model.Payment) (*model.Payment, error)
}

const paymentCollection = "payments"

type paymentMongoRepository struct {
	db *mongo.Database
}

// NewPaymentMongoRepository creates a MongoDB repository for payment records.
func NewPaymentMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PaymentRepository {
	collection := db.Collection(paymentCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "order_id", Value: 1},
				{Key: "payment_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create payment indexes")
	}

	return &paymentMongoRepository{db: db}
}

func (r *paymentMongoRepository) CreatePayment(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	payment.CreatedAt = time.Now()

	result, err := r.db.Collection(paymentCollection).InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		payment.ID = objectID
	}

	return payment, nil
}
