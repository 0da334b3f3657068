package projectstore_test

import (
	"errors"
	"testing"

	projectstore "github.com/ticketry/ticketry/internal/app/store/projects"
	"github.com/ticketry/ticketry/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_CreatorIsSoleMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")

	p, err := store.Create(ctx, testutil.Member(alice), "Orbital", "launch tracker", "active")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Title != "Orbital" {
		t.Errorf("Title: got %q", p.Title)
	}
	if len(p.Members) != 1 || p.Members[0].UserID != alice.ID {
		t.Errorf("Members: got %+v, want sole member %v", p.Members, alice.ID)
	}
	if p.Tickets == nil || len(p.Tickets) != 0 {
		t.Errorf("Tickets: got %+v, want empty list", p.Tickets)
	}
}

func TestStore_Create_DuplicateTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", "hunter22")

	if _, err := store.Create(ctx, testutil.Member(alice), "Orbital", "", ""); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, testutil.Member(bob), "Orbital", "", "")
	if !errors.Is(err, projectstore.ErrDuplicateTitle) {
		t.Errorf("got %v, want ErrDuplicateTitle", err)
	}

	// Different case is a different title.
	if _, err := store.Create(ctx, testutil.Member(bob), "orbital", "", ""); err != nil {
		t.Errorf("case-variant title rejected: %v", err)
	}
}

func TestStore_AddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", "hunter22")
	p := fx.CreateProject(ctx, "Orbital", alice)

	added, err := store.AddMember(ctx, p.ID, alice.ID, testutil.Member(bob))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if !added {
		t.Error("expected added=true for a new member")
	}

	// Adding the same member again is a no-op, not an error.
	added, err = store.AddMember(ctx, p.ID, alice.ID, testutil.Member(bob))
	if err != nil {
		t.Fatalf("repeat AddMember failed: %v", err)
	}
	if added {
		t.Error("expected added=false for an existing member")
	}

	members, err := store.Members(ctx, p.ID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("got %d members, want 2", len(members))
	}
}

func TestStore_AddMember_NonMemberActor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	mallory := fx.CreateUser(ctx, "Mallory", "mallory@example.com", "hunter22")
	p := fx.CreateProject(ctx, "Orbital", alice)

	_, err := store.AddMember(ctx, p.ID, mallory.ID, testutil.Member(mallory))
	if !errors.Is(err, projectstore.ErrNotMember) {
		t.Errorf("got %v, want ErrNotMember", err)
	}
}

func TestStore_RemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", "hunter22")
	p := fx.CreateProject(ctx, "Orbital", alice)

	if _, err := store.AddMember(ctx, p.ID, alice.ID, testutil.Member(bob)); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.RemoveMember(ctx, p.ID, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	members, err := store.Members(ctx, p.ID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 || members[0].UserID != alice.ID {
		t.Errorf("got %+v, want only %v", members, alice.ID)
	}

	// Removing someone who is not on the list.
	err = store.RemoveMember(ctx, p.ID, alice.ID, bob.ID)
	if !errors.Is(err, projectstore.ErrMemberNotFound) {
		t.Errorf("got %v, want ErrMemberNotFound", err)
	}
}

func TestStore_RemoveMember_RefusesLastMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	p := fx.CreateProject(ctx, "Orbital", alice)

	err := store.RemoveMember(ctx, p.ID, alice.ID, alice.ID)
	if !errors.Is(err, projectstore.ErrLastMember) {
		t.Errorf("got %v, want ErrLastMember", err)
	}

	members, err := store.Members(ctx, p.ID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("got %d members, want the last member kept", len(members))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	mallory := fx.CreateUser(ctx, "Mallory", "mallory@example.com", "hunter22")
	p := fx.CreateProject(ctx, "Orbital", alice)

	if err := store.Delete(ctx, p.ID, mallory.ID); !errors.Is(err, projectstore.ErrNotMember) {
		t.Errorf("non-member delete: got %v, want ErrNotMember", err)
	}
	if err := store.Delete(ctx, p.ID, alice.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments after delete", err)
	}
}

func TestStore_RefsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", "hunter22")
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", "hunter22")

	pa := fx.CreateProject(ctx, "Apollo", alice)
	fx.CreateProject(ctx, "Borealis", bob)
	pc := fx.CreateProject(ctx, "Cascade", alice)

	refs, err := store.RefsForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("RefsForUser failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].ProjectID != pa.ID || refs[1].ProjectID != pc.ID {
		t.Errorf("got %+v, want Apollo then Cascade", refs)
	}

	refs, err = store.RefsForUser(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("RefsForUser failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("got %d refs for unknown user, want 0", len(refs))
	}
}
