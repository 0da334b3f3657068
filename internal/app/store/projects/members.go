// internal/app/store/projects/members.go
package projectstore

import (
	"context"
	"time"

	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Members returns the project's member list. Returns
// mongo.ErrNoDocuments if the project is absent.
func (s *Store) Members(ctx context.Context, projectID primitive.ObjectID) ([]models.MemberRef, error) {
	var p models.Project
	opts := options.FindOne().SetProjection(bson.M{"members": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": projectID}, opts).Decode(&p); err != nil {
		return nil, err
	}
	return p.Members, nil
}

// IsMember reports whether userID is currently on the member list.
// Returns mongo.ErrNoDocuments if the project is absent.
func (s *Store) IsMember(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error) {
	members, err := s.Members(ctx, projectID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// AddMember appends target to the member list. The actor must be a
// member; adding a user who is already a member is a no-op success.
// Returns true when the list actually changed.
//
// The append itself is one atomic update: the $ne guard in the filter
// makes a concurrent double-add land exactly once, so the no-duplicate
// invariant holds without a lock.
func (s *Store) AddMember(ctx context.Context, projectID, actor primitive.ObjectID, target models.MemberRef) (bool, error) {
	if err := s.requireMember(ctx, projectID, actor); err != nil {
		return false, err
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "members.user_id": bson.M{"$ne": target.UserID}},
		bson.M{
			"$push": bson.M{"members": target},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RemoveMember pulls target from the member list. The actor must be a
// member; the target must currently be one; the last member can never
// be removed (a project without members would be unreachable by every
// gate, including its own delete).
func (s *Store) RemoveMember(ctx context.Context, projectID, actor, target primitive.ObjectID) error {
	if err := s.requireMember(ctx, projectID, actor); err != nil {
		return err
	}

	// members.1 exists == at least two members, so the pull can never
	// empty the list even when two removals race.
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":             projectID,
			"members.user_id": target,
			"members.1":       bson.M{"$exists": true},
		},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": target}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// The guarded update matched nothing: either the target is not a
	// member, or they are the sole remaining one.
	isMember, err := s.IsMember(ctx, projectID, target)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrMemberNotFound
	}
	return ErrLastMember
}

// requireMember resolves the membership gate for a mutation: nil when
// userID is a member, ErrNotMember when the project exists without
// them, mongo.ErrNoDocuments when the project is absent.
func (s *Store) requireMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	isMember, err := s.IsMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}
	return nil
}
