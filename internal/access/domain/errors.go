package domain

import (
	"github.com/scholarvault/scholarvault/internal/errors"
)

// Credential resolution errors. Every decode or validation failure fails
// closed; all of these map to 401 at the HTTP boundary.
var (
	// ErrCredentialMissing indicates no credential was presented.
	ErrCredentialMissing = errors.Wrap(errors.ErrUnauthorized, "credential missing")

	// ErrCredentialMalformed indicates the credential could not be decoded or
	// lacks a mandatory claim.
	ErrCredentialMalformed = errors.Wrap(errors.ErrUnauthorized, "credential malformed")

	// ErrCredentialExpired indicates the credential's validity window has passed.
	ErrCredentialExpired = errors.Wrap(errors.ErrUnauthorized, "credential expired")

	// ErrSignatureInvalid indicates the credential's signature did not verify
	// under the expected key.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "credential signature invalid")
)

// Authorization errors; these map to 403.
var (
	// ErrAccessDenied indicates the evaluator denied the principal.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")

	// ErrCapabilityDocumentMismatch indicates a capability was presented
	// against a document other than the one it is bound to. Treated as a
	// tampering signal, not a generic miss.
	ErrCapabilityDocumentMismatch = errors.Wrap(errors.ErrForbidden, "capability bound to a different document")
)
