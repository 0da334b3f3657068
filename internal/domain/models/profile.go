// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the public-facing details a user fills in after
// registering. Exactly one profile per user, enforced by a unique
// index on user_id.
//
// A profile does not store its user's project list. Membership lives
// only on the project documents; read paths derive the reference list
// with projectstore.RefsForUser so the two can never drift apart.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Availability   string             `bson:"availability" json:"availability"`
	GitHubUsername string             `bson:"github_username,omitempty" json:"github_username,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
