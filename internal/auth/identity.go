// Package auth extracts the signed-in user's identity from the access token
// issued by the platform's auth service. The token is verified server-side
// on every call, so the client only reads claims, it never checks the
// signature.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

// accessClaims is the internal claims type used for JWT parsing.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Identity is the signed-in user plus the token that proves it.
type Identity struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry claim never report expired.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// IdentityFromToken reads the identity claims out of an access token.
func IdentityFromToken(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, apperrors.New(apperrors.CodeForbidden, "access token is required")
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeForbidden, "parse access token", err)
	}
	user := domain.User{
		ID:          claims.UserID,
		DisplayName: strings.TrimSpace(claims.DisplayName),
	}
	if !user.Known() {
		return Identity{}, apperrors.New(apperrors.CodeForbidden, "access token has no user")
	}

	identity := Identity{
		User:  user,
		Token: token,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
