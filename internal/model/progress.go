package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Progress tracks which lectures of a course a user has completed. One
// document exists per (user, course) pair, created when the course is
// purchased.
type Progress struct {
	ID                bson.ObjectID   `bson:"_id,omitempty"      json:"_id"`
	User              bson.ObjectID   `bson:"user"               json:"user"`
	Course            bson.ObjectID   `bson:"course"             json:"course"`
	CompletedLectures []bson.ObjectID `bson:"completed_lectures" json:"completedLectures"`
	CreatedAt         time.Time       `bson:"created_at"         json:"createdAt"`
	UpdatedAt         time.Time       `bson:"updated_at"         json:"-"`
}
