package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment is an append-only audit row recorded after a payment callback's
// signature has been verified. Rows are never mutated; a unique index on
// (order_id, payment_id) keeps callback replays from growing the collection.
type Payment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID   string        `bson:"order_id"      json:"razorpay_order_id"`
	PaymentID string        `bson:"payment_id"    json:"razorpay_payment_id"`
	Signature string        `bson:"signature"     json:"razorpay_signature"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
