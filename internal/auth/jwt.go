// Package auth reads the claims of the session token for display.
//
// Nothing here verifies signatures. The backend is the only party that
// enforces authentication; the client only shows who it thinks you are and
// warns when the token has expired.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned for tokens that cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

// Claims are the fields the backend puts in its tokens. The subject is the
// user's email address.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"user_role"`
	jwt.RegisteredClaims
}

// parser accepts padded segments, which some token issuers still emit.
var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode parses the payload of a JWT without verifying it.
func Decode(token string) (*Claims, error) {
	var c Claims
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(token), &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return &c, nil
}

// Email returns the subject claim.
func (c *Claims) Email() string {
	return c.Subject
}

// Expiry returns the expiry time, or the zero time when the token has none.
func (c *Claims) Expiry() time.Time {
	exp, err := c.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Expired reports whether the token is past its expiry at now. Tokens
// without an expiry count as expired.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	if exp.IsZero() {
		return true
	}
	return !now.Before(exp)
}

// IsAdmin reports whether the role claim names an administrator.
func (c *Claims) IsAdmin() bool {
	return strings.EqualFold(strings.TrimPrefix(c.Role, "ROLE_"), "ADMIN")
}
