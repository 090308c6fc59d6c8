package service

import (
	"bytes"
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// keyLoader implements KeyLoader. When kmsKeyURI is set and the secrets are
// marked wrapped, each secret is base64 ciphertext decrypted through the
// keeper; otherwise the raw values are used directly.
type keyLoader struct {
	bearerSecret     string
	capabilitySecret string
	kmsKeyURI        string
	wrapped          bool
}

// NewKeyLoader creates a key loader for the two signing secrets.
func NewKeyLoader(bearerSecret, capabilitySecret, kmsKeyURI string, wrapped bool) KeyLoader {
	return &keyLoader{
		bearerSecret:     bearerSecret,
		capabilitySecret: capabilitySecret,
		kmsKeyURI:        kmsKeyURI,
		wrapped:          wrapped,
	}
}

// LoadKeys materializes both signing keys and checks the trust-domain
// separation: the two secrets must be present and distinct, since a shared
// secret would let either credential kind forge the other.
func (l *keyLoader) LoadKeys(ctx context.Context) (accessDomain.BearerKey, accessDomain.CapabilityKey, error) {
	bearer, err := l.materialize(ctx, l.bearerSecret)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to load bearer secret")
	}
	capability, err := l.materialize(ctx, l.capabilitySecret)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to load capability secret")
	}

	if len(bearer) == 0 || len(capability) == 0 {
		return nil, nil, apperrors.New("signing secrets must not be empty")
	}
	if bytes.Equal(bearer, capability) {
		return nil, nil, apperrors.New("bearer and capability secrets must differ")
	}

	return accessDomain.BearerKey(bearer), accessDomain.CapabilityKey(capability), nil
}

// materialize resolves one secret value, unwrapping through KMS when
// configured.
func (l *keyLoader) materialize(ctx context.Context, value string) ([]byte, error) {
	if !l.wrapped || l.kmsKeyURI == "" {
		return []byte(value), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, l.kmsKeyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer keeper.Close()

	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, apperrors.Wrap(err, "wrapped secret is not valid base64")
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt wrapped secret")
	}
	return plaintext, nil
}
