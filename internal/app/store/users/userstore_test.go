package userstore_test

import (
	"testing"

	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"github.com/ticketry/ticketry/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "  Caleb Coe ", "Caleb@Example.COM", "$2a$04$fakehash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Caleb Coe" {
		t.Errorf("Name: got %q, want %q", created.Name, "Caleb Coe")
	}
	if created.Email != "caleb@example.com" {
		t.Errorf("Email: got %q, want normalized lowercase", created.Email)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "First", "dup@example.com", "hash1"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same address with different case still collides.
	_, err := store.Create(ctx, "Second", "DUP@example.com", "hash2")
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail_Normalized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "User", "lookup@example.com", "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "  LOOKUP@Example.Com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "Doomed", "doomed@example.com", "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}

	if _, err := store.GetByID(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected user to be gone, got %v", err)
	}
}

func TestStore_NamesByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, "Alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := store.Create(ctx, "Bob", "bob@example.com", "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	names, err := store.NamesByIDs(ctx, []primitive.ObjectID{a.ID, b.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("NamesByIDs failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2", len(names))
	}
	if names[a.ID] != "Alice" || names[b.ID] != "Bob" {
		t.Errorf("unexpected name map: %v", names)
	}
}
