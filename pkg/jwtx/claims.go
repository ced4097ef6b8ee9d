// Package jwtx inspects session tokens issued by the Zamani backend. The
// dashboard never holds signing keys, so tokens are decoded without
// verification and only used to decide whether presenting them is worth it.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrOpaque = errors.New("jwtx: token is not a JWT")

// Claims are the fields the backend puts in its access tokens. Only the
// registered claims are guaranteed.
type Claims struct {
	jwt.RegisteredClaims

	Username    string `json:"username,omitempty"`
	ProfileType string `json:"profileType,omitempty"`
	CommunityID string `json:"communityId,omitempty"`
}

// ParseUnverified decodes token without checking its signature. Tokens that
// are not JWTs return ErrOpaque.
func ParseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrOpaque
	}
	return claims, nil
}

// Expiry returns the exp claim, or the zero time when there is none.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether exp is set and not after now.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}

// Usable reports whether token may still be presented. Expired JWTs are
// rejected; opaque tokens are accepted as they are and left to the backend.
func Usable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims, err := ParseUnverified(token)
	if err != nil {
		return true
	}
	return !claims.Expired(now)
}
