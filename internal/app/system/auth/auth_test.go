package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, lifetime time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, lifetime, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return m
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour, zap.NewNop()); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestIssueVerify_Roundtrip(t *testing.T) {
	m := newManager(t, time.Hour)
	uid := primitive.NewObjectID()

	token, err := m.Issue(uid, "Caleb Coe")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	id, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.UserID != uid {
		t.Errorf("UserID: got %v, want %v", id.UserID, uid)
	}
	if id.Name != "Caleb Coe" {
		t.Errorf("Name: got %q, want %q", id.Name, "Caleb Coe")
	}
}

func TestVerify_Expired(t *testing.T) {
	m := newManager(t, -time.Minute)

	token, err := m.Issue(primitive.NewObjectID(), "Expired User")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerify_Tampered(t *testing.T) {
	m := newManager(t, time.Hour)

	token, err := m.Issue(primitive.NewObjectID(), "User")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := m.Verify(tampered); err == nil {
		t.Error("expected tampered token to fail verification")
	}
}

func TestVerify_WrongSigner(t *testing.T) {
	m := newManager(t, time.Hour)
	other, err := NewTokenManager("another-secret-another-secret-32", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	token, err := other.Issue(primitive.NewObjectID(), "User")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expected token signed by a different key to fail")
	}
}

func TestRequireToken_MissingHeader(t *testing.T) {
	m := newManager(t, time.Hour)

	called := false
	h := m.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth", nil))

	if called {
		t.Error("handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireToken_ValidToken(t *testing.T) {
	m := newManager(t, time.Hour)
	uid := primitive.NewObjectID()

	token, err := m.Issue(uid, "Member")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var got Identity
	h := m.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentIdentity(r)
	}))

	req := httptest.NewRequest("GET", "/api/auth", nil)
	req.Header.Set(HeaderName, token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got.UserID != uid {
		t.Errorf("identity: got %v, want %v", got.UserID, uid)
	}
}
