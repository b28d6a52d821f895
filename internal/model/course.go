package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Course represents a purchasable course in the catalog.
type Course struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string        `bson:"title"         json:"title"`
	Description string        `bson:"description"   json:"description"`
	Image       string        `bson:"image"         json:"image"`
	Price       int64         `bson:"price"         json:"price"`
	Duration    int64         `bson:"duration"      json:"duration"`
	Category    string        `bson:"category"      json:"category"`
	CreatedBy   string        `bson:"created_by"    json:"createdBy"`
	CreatedAt   time.Time     `bson:"created_at"    json:"createdAt"`
}
