// internal/app/store/projects/projectstore.go

// Package projectstore owns the project aggregate: the document that
// embeds the member list, the tickets, and each ticket's comments.
//
// Every mutation is a single-document atomic update whose filter
// carries the authorization predicate (the actor must currently be a
// member). There is no read-modify-write of the aggregate anywhere,
// so concurrent ticket or comment appends to the same project cannot
// lose each other.
package projectstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ticketry/ticketry/internal/app/system/sanitize"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var (
	// ErrDuplicateTitle is returned when a project with the exact same
	// title already exists. Titles are the de-facto unique key.
	ErrDuplicateTitle = errors.New("a project with this title already exists")

	// ErrNotMember is returned when the acting user is not currently a
	// member of the project. Every mutation is gated on membership.
	ErrNotMember = errors.New("user is not a member of this project")

	// ErrMemberNotFound is returned by RemoveMember when the target is
	// not currently on the member list.
	ErrMemberNotFound = errors.New("user is not on the project member list")

	// ErrLastMember is returned when removing the target would leave
	// the project with no members.
	ErrLastMember = errors.New("cannot remove the last member of a project")

	// ErrTicketNotFound is returned when the ticket id does not exist
	// within the project.
	ErrTicketNotFound = errors.New("no ticket with this id in the project")

	// ErrNotCommentAuthor is returned when a member tries to remove a
	// comment written by someone else.
	ErrNotCommentAuthor = errors.New("only the comment author may remove it")

	// ErrCommentNotFound is returned when the comment id does not exist
	// within the ticket.
	ErrCommentNotFound = errors.New("no comment with this id in the ticket")
)

// Create inserts a project with the creator as its sole member.
func (s *Store) Create(ctx context.Context, creator models.MemberRef, title, description, status string) (models.Project, error) {
	now := time.Now().UTC()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: sanitize.Text(description),
		Status:      sanitize.Text(status),
		Members:     []models.MemberRef{creator},
		Tickets:     []models.Ticket{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateTitle
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads the whole aggregate. Returns mongo.ErrNoDocuments if
// the project does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every project, tickets included.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes the project if the actor is a member. With derived
// profile back-references there is nothing else to clean up: every
// member's project list reflects the deletion on its next read.
func (s *Store) Delete(ctx context.Context, projectID, actor primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": projectID, "members.user_id": actor})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.classify(ctx, projectID, actor)
	}
	return nil
}

// RefsForUser derives the {project_id, title} reference list shown on
// a profile from the authoritative membership arrays.
func (s *Store) RefsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectRef, error) {
	opts := options.Find().
		SetProjection(bson.M{"title": 1}).
		SetSort(bson.D{{Key: "title", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"members.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	refs := []models.ProjectRef{}
	if err := cur.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// classify resolves why a member-gated filter matched nothing:
// mongo.ErrNoDocuments when the project is absent, ErrNotMember when
// it exists but the user is not on the member list.
func (s *Store) classify(ctx context.Context, projectID, userID primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": projectID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		return err // includes mongo.ErrNoDocuments
	}
	return ErrNotMember
}
