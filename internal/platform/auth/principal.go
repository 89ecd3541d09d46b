package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
)

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	Email string
}

func (p Principal) IsZero() bool {
	return strings.TrimSpace(p.Email) == ""
}

// Authorizer decides whether a principal may use the admin back-office.
type Authorizer struct {
	adminEmail string
}

func NewAuthorizer(adminEmail string) Authorizer {
	return Authorizer{adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

func (a Authorizer) IsAdmin(p Principal) bool {
	if p.IsZero() || a.adminEmail == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(p.Email)) == a.adminEmail
}

// RequireAdmin returns ErrUnauthenticated when there is no principal and
// ErrForbidden when the principal is not the configured admin.
func (a Authorizer) RequireAdmin(p Principal) error {
	if p.IsZero() {
		return ErrUnauthenticated
	}
	if !a.IsAdmin(p) {
		return ErrForbidden
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
