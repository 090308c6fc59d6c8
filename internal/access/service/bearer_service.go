package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

const (
	// issuerTag identifies tokens minted by this service; both credential
	// kinds carry and require it.
	issuerTag = "scholarvault"

	// clockSkew is the leeway applied to expiry and not-before checks.
	clockSkew = 10 * time.Second
)

// bearerClaims is the JWT payload for session credentials.
type bearerClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// bearerService implements BearerService with HS256 signatures.
type bearerService struct {
	key               accessDomain.BearerKey
	institutionDomain string
	ttl               time.Duration
}

// NewBearerService creates a bearer credential service. The institution
// domain feeds the affiliation computation when principals are resolved.
func NewBearerService(key accessDomain.BearerKey, institutionDomain string, ttl time.Duration) BearerService {
	return &bearerService{
		key:               key,
		institutionDomain: institutionDomain,
		ttl:               ttl,
	}
}

// Issue signs a bearer token for the identity and role.
func (s *bearerService) Issue(
	identity string,
	role accessDomain.Role,
	now time.Time,
) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)

	claims := bearerClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			Issuer:    issuerTag,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.key))
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign bearer token")
	}

	return signed, expiresAt, nil
}

// Resolve validates a bearer token and builds the canonical principal.
func (s *bearerService) Resolve(token string) (accessDomain.Principal, error) {
	if token == "" {
		return accessDomain.Principal{}, accessDomain.ErrCredentialMissing
	}

	var claims bearerClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(s.key), nil },
		// Pin the algorithm; prevents algorithm confusion attacks.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerTag),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return accessDomain.Principal{}, mapJWTError(err)
	}
	if !parsed.Valid {
		return accessDomain.Principal{}, accessDomain.ErrSignatureInvalid
	}

	// Mandatory claims: identity and role.
	if claims.Subject == "" {
		return accessDomain.Principal{}, accessDomain.ErrCredentialMalformed
	}
	role, err := accessDomain.ParseRole(claims.Role)
	if err != nil {
		return accessDomain.Principal{}, accessDomain.ErrCredentialMalformed
	}

	principal := accessDomain.NewPrincipal(
		claims.Subject,
		role,
		s.institutionDomain,
		accessDomain.ProvenanceBearer,
	)
	return principal, nil
}

// mapJWTError translates golang-jwt failures into the credential error
// taxonomy. Everything unrecognized is treated as malformed; there is no
// fail-open path.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return accessDomain.ErrCredentialExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return accessDomain.ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return accessDomain.ErrSignatureInvalid
	default:
		return accessDomain.ErrCredentialMalformed
	}
}
