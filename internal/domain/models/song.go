// internal/domain/models/song.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment points at a stored file (chart, chord sheet, recording).
// URL usually references the object store; see the attachments service
// for how keys are derived.
type Attachment struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// Song is referenced by zero or more events. Deleting a song does not
// clean up event references; stale ids are tolerated by readers.
type Song struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	BPM           int                `bson:"bpm,omitempty" json:"bpm,omitempty"`
	ReferenceURLs []string           `bson:"reference_urls" json:"referenceUrls"`
	Attachments   []Attachment       `bson:"attachments" json:"attachments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
