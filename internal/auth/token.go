// Package auth gates client operations on the session token issued by the
// marketplace API. The client never holds the signing key, so tokens are
// decoded without signature verification and only their claims are checked.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken   = errors.New("session token is missing")
	ErrMalformedToken = errors.New("session token is malformed")
	ErrTokenExpired   = errors.New("session token has expired")
)

const (
	RoleCustomer = "client"
	RoleMerchant = "commercant"
	RoleAdmin    = "admin"
)

type Claims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
}

func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

type tokenClaims struct {
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Checker validates session tokens against the local clock.
type Checker struct {
	leeway time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewChecker(leeway time.Duration) *Checker {
	return &Checker{
		leeway: leeway,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
}

// WithClock returns a copy of the checker that reads time from now.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	cp := *c
	cp.now = now
	return &cp
}

// Check decodes the token and rejects it when it has no expiry or the expiry,
// shifted back by the leeway, is not in the future.
func (c *Checker) Check(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrMissingToken
	}

	var tc tokenClaims
	if _, _, err := c.parser.ParseUnverified(raw, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if tc.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: exp claim is missing", ErrMalformedToken)
	}

	expiresAt := tc.ExpiresAt.Time
	if !c.now().Add(c.leeway).Before(expiresAt) {
		return Claims{}, fmt.Errorf("%w: at %s", ErrTokenExpired, expiresAt.Format(time.RFC3339))
	}

	roles := tc.Roles
	if tc.Role != "" && !slices.Contains(roles, tc.Role) {
		roles = append(roles, tc.Role)
	}

	return Claims{
		Subject:   tc.Subject,
		Roles:     roles,
		ExpiresAt: expiresAt,
	}, nil
}
