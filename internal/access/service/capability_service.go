package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// capabilityClaims is the JWT payload for document capabilities. The role and
// affiliation snapshot exist for audit logging only; verification never
// treats them as grants.
type capabilityClaims struct {
	DocumentID string `json:"doc"`
	Role       string `json:"role"`
	Affiliated bool   `json:"aff"`
	jwt.RegisteredClaims
}

// capabilityService implements CapabilityService with HS256 signatures under
// the capability key. The key type guarantees it can never be handed the
// bearer secret.
type capabilityService struct {
	key accessDomain.CapabilityKey
	ttl time.Duration
}

// NewCapabilityService creates a capability service with the fixed TTL.
func NewCapabilityService(key accessDomain.CapabilityKey) CapabilityService {
	return &capabilityService{
		key: key,
		ttl: accessDomain.CapabilityTTL,
	}
}

// Mint evaluates access exactly once and signs a capability on allow.
func (s *capabilityService) Mint(
	doc *docsDomain.Document,
	p accessDomain.Principal,
	now time.Time,
) (string, accessDomain.Capability, error) {
	if !accessDomain.Evaluate(doc, p, now).Allowed() {
		return "", accessDomain.Capability{}, accessDomain.ErrAccessDenied
	}

	grant := accessDomain.Capability{
		Subject:    p.Identity,
		DocumentID: doc.ID,
		Role:       p.Role,
		Affiliated: p.Affiliated,
		ExpiresAt:  now.Add(s.ttl),
	}

	claims := capabilityClaims{
		DocumentID: grant.DocumentID.String(),
		Role:       string(grant.Role),
		Affiliated: grant.Affiliated,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   grant.Subject,
			Issuer:    issuerTag,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(grant.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.key))
	if err != nil {
		return "", accessDomain.Capability{}, apperrors.Wrap(err, "failed to sign capability")
	}

	return signed, grant, nil
}

// Verify validates a capability token and decodes its binding.
func (s *capabilityService) Verify(token string) (accessDomain.Capability, error) {
	if token == "" {
		return accessDomain.Capability{}, accessDomain.ErrCredentialMissing
	}

	var claims capabilityClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(s.key), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerTag),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return accessDomain.Capability{}, mapJWTError(err)
	}
	if !parsed.Valid {
		return accessDomain.Capability{}, accessDomain.ErrSignatureInvalid
	}

	// Mandatory claims: subject identity and document binding.
	if claims.Subject == "" || claims.DocumentID == "" {
		return accessDomain.Capability{}, accessDomain.ErrCredentialMalformed
	}
	docID, err := uuid.Parse(claims.DocumentID)
	if err != nil {
		return accessDomain.Capability{}, accessDomain.ErrCredentialMalformed
	}

	// The role snapshot is audit data; an unknown value still fails closed.
	role, err := accessDomain.ParseRole(claims.Role)
	if err != nil {
		return accessDomain.Capability{}, accessDomain.ErrCredentialMalformed
	}

	return accessDomain.Capability{
		Subject:    claims.Subject,
		DocumentID: docID,
		Role:       role,
		Affiliated: claims.Affiliated,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
