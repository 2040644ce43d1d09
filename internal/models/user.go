package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Notification is embedded in the user document; it never exists on its own.
type Notification struct {
	Message   string    `bson:"message" json:"message"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash
	Role          string             `bson:"role" json:"role"`
	ProfilePic    string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	ProfilePicID  string             `bson:"profilePic_id,omitempty" json:"profilePic_id,omitempty"`
	Notifications []Notification     `bson:"notifications" json:"notifications,omitempty"`
	Timestamp     int64              `bson:"timestamp" json:"timestamp"` // epoch millis
}
