// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is the aggregate root of the tracker: it embeds its member
// list and its tickets, and each ticket embeds its comments. The whole
// document is mutated with single-document atomic updates; tickets and
// comments have no independent lifetime.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`

	Members []MemberRef `bson:"members" json:"members"`
	Tickets []Ticket    `bson:"tickets" json:"tickets"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MemberRef identifies a project member. Name is denormalized at add
// time and is not refreshed when the user later renames themselves.
type MemberRef struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name   string             `bson:"name" json:"name"`
}

// Ticket is embedded in a Project. New tickets are appended to the
// tail of the project's ticket list.
type Ticket struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Description string             `bson:"ticket" json:"ticket"`
	Severity    string             `bson:"severity,omitempty" json:"severity,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	Creator     MemberRef          `bson:"creator" json:"creator"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Comment is embedded in a Ticket, appended to the tail.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Author    MemberRef          `bson:"author" json:"author"`
	Text      string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ProjectRef is the {id, title} pair shown on a profile's project
// list. It is derived from project membership at read time, never
// stored.
type ProjectRef struct {
	ProjectID primitive.ObjectID `bson:"_id" json:"project_id"`
	Title     string             `bson:"title" json:"title"`
}
