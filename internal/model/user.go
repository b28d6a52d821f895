package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User roles. Admins manage the catalog and see every lecture; regular users
// only see lectures of courses they have purchased.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Subscription holds the ids of the
// courses the user has purchased access to.
type User struct {
	ID                  bson.ObjectID   `bson:"_id,omitempty"                   json:"_id"`
	Name                string          `bson:"name"                            json:"name"`
	Email               string          `bson:"email"                           json:"email"`
	PasswordHash        string          `bson:"password_hash"                   json:"-"`
	Role                string          `bson:"role"                            json:"role"`
	Subscription        []bson.ObjectID `bson:"subscription"                    json:"subscription"`
	ResetPasswordExpire *time.Time      `bson:"reset_password_expire,omitempty" json:"-"`
	CreatedAt           time.Time       `bson:"created_at"                      json:"createdAt"`
	UpdatedAt           time.Time       `bson:"updated_at"                      json:"-"`
}

// Subscribed reports whether the user has purchased the given course.
func (u *User) Subscribed(courseID bson.ObjectID) bool {
	for _, id := range u.Subscription {
		if id == courseID {
			return true
		}
	}

	return false
}
