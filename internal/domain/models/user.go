// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Password holds the bcrypt hash and is
// never serialized to JSON.
//
// NOTE:
//   - Groups mirrors the members lists on the group documents. The two
//     sides are kept in agreement by the membership service; nothing
//     else may write either side.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	FirstName string               `bson:"first_name" json:"firstName"`
	LastName  string               `bson:"last_name" json:"lastName"`
	Groups    []primitive.ObjectID `bson:"groups" json:"groups"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
