// Package http provides HTTP middleware and context plumbing for
// authentication.
package http

import (
	"context"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
)

// principalKey is a context key type for storing resolved principals.
type principalKey struct{}

// WithPrincipal stores a resolved principal in the context. Called by the
// authentication middleware after successful bearer resolution.
func WithPrincipal(ctx context.Context, p accessDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal retrieves the resolved principal from the context. Returns
// (principal, true) if present, or (zero, false) if no principal was set.
func GetPrincipal(ctx context.Context) (accessDomain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(accessDomain.Principal)
	return p, ok
}
