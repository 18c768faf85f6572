// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAssignment names a duty at an event (e.g. "vocals", "sound") and
// the members filling it.
type RoleAssignment struct {
	Title   string               `bson:"title" json:"title"`
	Members []primitive.ObjectID `bson:"members" json:"members"`
}

// Event is a scheduled gathering owned by exactly one group.
//
// AssociatedGroup is set at creation and never changes. The owning
// group's events list contains this event's id for as long as the
// event exists; the membership service maintains both sides.
type Event struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Date            time.Time            `bson:"date" json:"date"`
	AssociatedGroup primitive.ObjectID   `bson:"associated_group" json:"associatedGroup"`
	Roles           []RoleAssignment     `bson:"roles" json:"roles"`
	Songs           []primitive.ObjectID `bson:"songs" json:"songs"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasSong reports whether songID is already attached to the event.
func (e Event) HasSong(songID primitive.ObjectID) bool {
	for _, id := range e.Songs {
		if id == songID {
			return true
		}
	}
	return false
}
