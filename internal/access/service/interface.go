// Package service provides the credential services at the trust boundary:
// bearer token issue/resolve, capability mint/verify, and signing key loading.
package service

import (
	"context"
	"time"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// BearerService issues and resolves long-lived session credentials.
type BearerService interface {
	// Issue signs a bearer token for the identity and role. The token carries
	// the issuer tag and expires after the configured lifetime.
	Issue(identity string, role accessDomain.Role, now time.Time) (token string, expiresAt time.Time, err error)

	// Resolve validates a bearer token and constructs the canonical principal.
	// Any decode or validation failure fails closed with a credential error.
	Resolve(token string) (accessDomain.Principal, error)
}

// CapabilityService mints and verifies single-document capabilities.
type CapabilityService interface {
	// Mint evaluates access once and, on allow, signs a capability bound to
	// (principal identity, document id) with the fixed short TTL. A deny
	// propagates as ErrAccessDenied without minting.
	Mint(doc *docsDomain.Document, p accessDomain.Principal, now time.Time) (signed string, grant accessDomain.Capability, err error)

	// Verify validates a capability token's signature, issuer and expiry and
	// returns the decoded capability. The document binding is NOT checked
	// here; the delivery gate re-checks it on every presentation.
	Verify(token string) (accessDomain.Capability, error)
}

// KeyLoader supplies the two signing keys, optionally unwrapping them through
// a KMS keeper.
type KeyLoader interface {
	LoadKeys(ctx context.Context) (accessDomain.BearerKey, accessDomain.CapabilityKey, error)
}
