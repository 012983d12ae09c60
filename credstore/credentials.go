package credstore

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Credentials is the access/refresh token pair identifying an authenticated
// session. Both fields are non-empty while a session exists; a logged-out
// session has no Credentials at all. The pair is replaced wholesale, never
// mutated field by field, except for the access token swap on refresh.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Valid reports whether both halves of the pair are present.
func (c *Credentials) Valid() bool {
	return c != nil && c.Access != "" && c.Refresh != ""
}

// WithAccess returns a copy of the pair carrying a new access token. The
// refresh token survives a refresh unchanged.
func (c Credentials) WithAccess(access string) Credentials {
	c.Access = access
	return c
}

// AccessExpiresAt extracts the exp claim from the access token without
// verifying the signature. Verification belongs to the server; the client
// only peeks at expiry to decide whether a stored session is worth
// bootstrapping. Returns the zero time when the token carries no usable
// expiry.
func (c *Credentials) AccessExpiresAt() time.Time {
	if c == nil || c.Access == "" {
		return time.Time{}
	}
	token, _, err := jwtlib.NewParser().ParseUnverified(c.Access, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// AccessExpired reports whether the access token's exp claim is in the past
// at the given instant. Tokens without an expiry claim are never considered
// expired locally; the server remains the authority.
func (c *Credentials) AccessExpired(now time.Time) bool {
	exp := c.AccessExpiresAt()
	if exp.IsZero() {
		return false
	}
	return now.After(exp)
}
