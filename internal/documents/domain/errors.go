// Package domain defines core domain models and errors for documents.
package domain

import (
	"github.com/scholarvault/scholarvault/internal/errors"
)

// Document-specific error definitions.
var (
	// ErrDocumentNotFound indicates the document does not exist. Use cases
	// also return it for unapproved documents and for documents whose bytes
	// are missing from storage, so the three cases are indistinguishable.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")
)
