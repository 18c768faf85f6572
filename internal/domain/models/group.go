// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is one membership row on a group document.
type Member struct {
	Role   string             `bson:"role" json:"role"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
}

// Group is a congregation team (choir, band, volunteers).
//
// Code is the short join code: generated once at creation, unique
// across all groups, and the only public handle for self-service
// joining. Members mirrors the groups list on each member's user
// document; Events lists the events this group owns.
type Group struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name    string               `bson:"name" json:"name"`
	Code    string               `bson:"code" json:"code"`
	Admins  []primitive.ObjectID `bson:"admins" json:"admins"`
	Members []Member             `bson:"members" json:"members"`
	Events  []primitive.ObjectID `bson:"events" json:"events"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the user already appears in Members.
func (g Group) HasMember(userID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
