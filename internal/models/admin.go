package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin accounts live in their own collection and always carry the admin
// role. The email field lets admins share the regular login flow.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
}
