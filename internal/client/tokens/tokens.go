// Package tokens reads the claims of access tokens issued by the user
// service. The client does not hold the signing secret, so signatures are
// not verified; the claims are only used for display and expiry checks.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyToken = errors.New("empty token")

// Claims mirrors the payload the user service signs into access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name       string `json:"name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	BlockedFor string `json:"blocked_for,omitempty"`
}

// Parse decodes token without checking its signature.
func Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	return claims, nil
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// Expired reports whether the token has an expiry at or before now.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// TTL returns the time left until expiry, zero when expired or unbounded.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil || c.Expired(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
