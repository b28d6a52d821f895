package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Lecture represents a single video lecture belonging to a course.
type Lecture struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string        `bson:"title"         json:"title"`
	Description string        `bson:"description"   json:"description"`
	Video       string        `bson:"video"         json:"video"`
	Course      bson.ObjectID `bson:"course"        json:"course"`
	CreatedAt   time.Time     `bson:"created_at"    json:"createdAt"`
}
