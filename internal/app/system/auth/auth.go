// internal/app/system/auth/auth.go

// Package auth issues and verifies the signed session tokens carried
// in the x-auth-token header, and provides the middleware that
// resolves a token to the caller's identity.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HeaderName is the token header. Clients predate the Authorization
// bearer convention, so it stays.
const HeaderName = "x-auth-token"

// DefaultLifetime is the token lifetime when none is configured.
const DefaultLifetime = 10 * time.Hour

// Identity is the caller resolved from a verified token. Name is
// captured at token issuance; a rename takes effect at the next login.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
}

// MemberRef is the denormalized {user_id, name} pair embedded in
// project member, ticket creator, and comment author entries.
func (id Identity) MemberRef() models.MemberRef {
	return models.MemberRef{UserID: id.UserID, Name: id.Name}
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the identity injected by RequireToken (or by
// WithTestIdentity in tests) and a found flag.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithTestIdentity injects an identity directly, bypassing token
// verification. Handler tests use this the way production requests go
// through RequireToken.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return withIdentity(r, id)
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

type tokenClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with an HMAC key
// provided at startup.
type TokenManager struct {
	secret   []byte
	lifetime time.Duration
	log      *zap.Logger
}

// NewTokenManager builds a TokenManager. The secret must be non-empty;
// short secrets are allowed in dev but logged. A zero lifetime falls
// back to DefaultLifetime; anything else is used as given.
func NewTokenManager(secret string, lifetime time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is empty; provide >=32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token signing secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if lifetime == 0 {
		lifetime = DefaultLifetime
	}
	return &TokenManager{secret: []byte(secret), lifetime: lifetime, log: logger}, nil
}

// Issue mints a signed token for the given user.
func (m *TokenManager) Issue(userID primitive.ObjectID, name string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature and expiry and resolves the embedded
// identity. The identity is not refreshed against the user store.
func (m *TokenManager) Verify(token string) (Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}

	uid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return Identity{UserID: uid, Name: claims.Name}, nil
}

// RequireToken verifies x-auth-token and injects the caller identity.
// Missing or invalid tokens answer 401 with a {msg} body.
func (m *TokenManager) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tests can pre-inject an identity.
		if _, ok := CurrentIdentity(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get(HeaderName)
		if token == "" {
			httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		id, err := m.Verify(token)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			httpjson.Msg(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, withIdentity(r, id))
	})
}
