// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ticketry/ticketry/internal/app/system/authutil"
	"github.com/ticketry/ticketry/internal/app/system/normalize"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and
// password. Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         normalize.Name(name),
		NameCI:       text.Fold(name),
		Email:        normalize.Email(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateProfile creates a profile for the given user.
func (f *Fixtures) CreateProfile(ctx context.Context, userID primitive.ObjectID, availability string) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	profile := models.Profile{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("profiles").InsertOne(ctx, profile); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateProject creates a project with the given creator as its sole
// member.
func (f *Fixtures) CreateProject(ctx context.Context, title string, creator models.User) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test project description",
		Members:     []models.MemberRef{{UserID: creator.ID, Name: creator.Name}},
		Tickets:     []models.Ticket{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// Member converts a user to the member reference embedded in projects.
func Member(u models.User) models.MemberRef {
	return models.MemberRef{UserID: u.ID, Name: u.Name}
}
