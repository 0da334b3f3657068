// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
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
	return &Store{c: db.Collection("profiles")}
}

// UpsertInput carries the partial-update fields. Nil pointers leave
// the stored value untouched.
type UpsertInput struct {
	Availability   *string
	GitHubUsername *string
}

// Upsert creates or partially updates the caller's profile in one
// atomic FindOneAndUpdate against the unique user_id index, so
// concurrent first-time upserts collapse into a single document
// instead of racing a find with an insert.
func (s *Store) Upsert(ctx context.Context, userID primitive.ObjectID, in UpsertInput) (models.Profile, error) {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	if in.Availability != nil {
		set["availability"] = sanitize.Text(*in.Availability)
	}
	if in.GitHubUsername != nil {
		set["github_username"] = sanitize.Text(*in.GitHubUsername)
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}
	// Default availability only when the insert would otherwise omit it.
	if in.Availability == nil {
		update["$setOnInsert"].(bson.M)["availability"] = ""
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p models.Profile
	err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&p)
	if err != nil {
		// A concurrent upsert can lose the insert race on the unique
		// index; one retry resolves to the surviving document.
		if wafflemongo.IsDup(err) {
			err = s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&p)
		}
		if err != nil {
			return models.Profile{}, err
		}
	}
	return p, nil
}

// GetByUser loads the profile owned by userID. Returns
// mongo.ErrNoDocuments if the user has no profile.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether userID has a profile.
func (s *Store) Exists(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListAll returns every profile. Unbounded: pagination is an explicit
// non-goal at this scale.
func (s *Store) ListAll(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []models.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteForUser removes the profile owned by userID. Returns the
// number of documents deleted (0 or 1).
func (s *Store) DeleteForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
