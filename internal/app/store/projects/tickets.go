// internal/app/store/projects/tickets.go
package projectstore

import (
	"context"
	"time"

	"github.com/ticketry/ticketry/internal/app/system/sanitize"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketInput carries the caller-supplied ticket fields.
type TicketInput struct {
	Description string
	Severity    string
	Status      string
}

// AddTicket appends a new ticket to the project's ticket list. New
// tickets always go to the tail, so the list reads oldest-first.
//
// Membership rides in the update filter: the $push happens only if the
// creator is a member at the moment the server applies it.
func (s *Store) AddTicket(ctx context.Context, projectID primitive.ObjectID, creator models.MemberRef, in TicketInput) (models.Ticket, error) {
	t := models.Ticket{
		ID:          primitive.NewObjectID(),
		Description: sanitize.Text(in.Description),
		Severity:    sanitize.Text(in.Severity),
		Status:      sanitize.Text(in.Status),
		Creator:     creator,
		Comments:    []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "members.user_id": creator.UserID},
		bson.M{
			"$push": bson.M{"tickets": t},
			"$set":  bson.M{"updated_at": t.CreatedAt},
		})
	if err != nil {
		return models.Ticket{}, err
	}
	if res.MatchedCount == 0 {
		return models.Ticket{}, s.classify(ctx, projectID, creator.UserID)
	}
	return t, nil
}

// Tickets returns the project's ticket list, gated on the caller
// being a member.
func (s *Store) Tickets(ctx context.Context, projectID, actor primitive.ObjectID) ([]models.Ticket, error) {
	if err := s.requireMember(ctx, projectID, actor); err != nil {
		return nil, err
	}

	var p models.Project
	opts := options.FindOne().SetProjection(bson.M{"tickets": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": projectID}, opts).Decode(&p); err != nil {
		return nil, err
	}
	return p.Tickets, nil
}

// GetTicket returns one ticket by id, gated on membership. Returns
// ErrTicketNotFound when the id is not in this project.
func (s *Store) GetTicket(ctx context.Context, projectID, actor, ticketID primitive.ObjectID) (*models.Ticket, error) {
	tickets, err := s.Tickets(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == ticketID {
			return &tickets[i], nil
		}
	}
	return nil, ErrTicketNotFound
}

// RemoveTicket pulls a ticket (and its comments with it) from the
// project. Member-gated; ErrTicketNotFound when the id is unknown.
//
// The update carries nothing but the $pull: a $set rider would count
// as a modification even when the pull removes no element, and the
// unknown-id branch keys on ModifiedCount. updated_at is bumped
// separately once the removal is confirmed.
func (s *Store) RemoveTicket(ctx context.Context, projectID, actor, ticketID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "members.user_id": actor},
		bson.M{"$pull": bson.M{"tickets": bson.M{"_id": ticketID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classify(ctx, projectID, actor)
	}
	if res.ModifiedCount == 0 {
		return ErrTicketNotFound
	}
	return s.touch(ctx, projectID)
}

// AddComment appends a comment to one ticket's comment list via an
// arrayFilters update, so two concurrent comments on the same ticket
// both land.
func (s *Store) AddComment(ctx context.Context, projectID, ticketID primitive.ObjectID, author models.MemberRef, text string) (models.Comment, error) {
	cmt := models.Comment{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Text:      sanitize.Text(text),
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             projectID,
			"members.user_id": author.UserID,
			"tickets._id":     ticketID,
		},
		bson.M{
			"$push": bson.M{"tickets.$[t].comments": cmt},
			"$set":  bson.M{"updated_at": cmt.CreatedAt},
		},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"t._id": ticketID}},
		}))
	if err != nil {
		return models.Comment{}, err
	}
	if res.MatchedCount == 0 {
		return models.Comment{}, s.classifyTicket(ctx, projectID, author.UserID, ticketID)
	}
	return cmt, nil
}

// RemoveComment pulls a comment from a ticket. Member-gated, and only
// the comment's author may remove it: the pull predicate matches both
// the comment id and the author id, so a non-author's attempt changes
// nothing. A no-op is then disambiguated to ErrNotCommentAuthor when
// the comment exists under someone else's name, ErrCommentNotFound
// otherwise. As in RemoveTicket, the update is the bare $pull so that
// ModifiedCount reflects it alone.
func (s *Store) RemoveComment(ctx context.Context, projectID, ticketID, commentID, actor primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             projectID,
			"members.user_id": actor,
			"tickets._id":     ticketID,
		},
		bson.M{"$pull": bson.M{"tickets.$[t].comments": bson.M{"_id": commentID, "author.user_id": actor}}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"t._id": ticketID}},
		}))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyTicket(ctx, projectID, actor, ticketID)
	}
	if res.ModifiedCount == 0 {
		tk, err := s.GetTicket(ctx, projectID, actor, ticketID)
		if err != nil {
			return err
		}
		for _, c := range tk.Comments {
			if c.ID == commentID {
				return ErrNotCommentAuthor
			}
		}
		return ErrCommentNotFound
	}
	return s.touch(ctx, projectID)
}

// touch bumps the project's updated_at after a confirmed modification.
func (s *Store) touch(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}})
	return err
}

// classifyTicket resolves why a ticket-scoped filter matched nothing,
// in gate order: absent project, then non-membership, then unknown
// ticket id.
func (s *Store) classifyTicket(ctx context.Context, projectID, userID, ticketID primitive.ObjectID) error {
	var p models.Project
	opts := options.FindOne().SetProjection(bson.M{"members": 1, "tickets._id": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": projectID}, opts).Decode(&p); err != nil {
		return err // includes mongo.ErrNoDocuments
	}

	isMember := false
	for _, m := range p.Members {
		if m.UserID == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		return ErrNotMember
	}

	return ErrTicketNotFound
}
