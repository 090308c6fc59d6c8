// Package domain defines the core domain models for repository documents.
// A document is a stored research artifact (thesis, paper, dataset report)
// with a visibility class that controls who may read its bytes.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// Visibility classifies who may read a document.
type Visibility string

// Visibility classes. Embargo is a time lock layered on top of the campus
// rule, not an independent class: once the embargo instant passes, the
// document behaves like a campus document.
const (
	VisibilityPublic  Visibility = "public"
	VisibilityCampus  Visibility = "campus"
	VisibilityEmbargo Visibility = "embargo"
	VisibilityPrivate Visibility = "private"
)

// Status tracks the review lifecycle of a document. Only approved documents
// are ever deliverable.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Document represents a stored research artifact and its access metadata.
type Document struct {
	// ID is the unique identifier for the document (UUIDv7).
	ID uuid.UUID
	// Title is the human-readable document title.
	Title string
	// Category is the catalog category (e.g., "thesis", "dissertation").
	Category string
	// Year is the publication year used for catalog filtering.
	Year int
	// Visibility is the access class controlling non-owner reads.
	Visibility Visibility
	// EmbargoUntil is the instant the embargo lifts. Required iff
	// Visibility is embargo; enforced at write time by Validate.
	EmbargoUntil *time.Time
	// AllowedViewers holds lowercased identities permitted to read a private
	// document. Meaningful only when Visibility is private. An empty list on
	// a private document means nobody outside the owners may read it.
	AllowedViewers []string
	// AuthorEmail, SubmitterEmail, AdviserEmail and UploaderEmail identify the
	// document's owners. Ownership overrides visibility and embargo entirely.
	AuthorEmail    string
	SubmitterEmail string
	AdviserEmail   string
	UploaderEmail  string
	// Status is the review state; only StatusApproved is deliverable.
	Status Status
	// StorageKey locates the artifact bytes in the blob store.
	StorageKey string
	// FileName is the original artifact file name used in the
	// Content-Disposition header.
	FileName string
	// ContentType is the MIME type served with the artifact bytes.
	ContentType string
	// FileSize is the artifact size in bytes.
	FileSize int64
	// CreatedAt and UpdatedAt are UTC timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner reports whether the identity matches any of the document's owner
// identities. Comparison is case-insensitive; an empty identity never owns.
func (d *Document) IsOwner(identity string) bool {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if identity == "" {
		return false
	}
	for _, owner := range []string{d.AuthorEmail, d.SubmitterEmail, d.AdviserEmail, d.UploaderEmail} {
		if owner != "" && strings.ToLower(owner) == identity {
			return true
		}
	}
	return false
}

// AllowsViewer reports whether the identity appears in the allow-list.
// An empty allow-list denies everyone; it is a valid state, not an error.
func (d *Document) AllowsViewer(identity string) bool {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if identity == "" {
		return false
	}
	for _, viewer := range d.AllowedViewers {
		if strings.ToLower(viewer) == identity {
			return true
		}
	}
	return false
}

// Validate checks write-time invariants before a document is persisted.
func (d *Document) Validate() error {
	switch d.Visibility {
	case VisibilityPublic, VisibilityCampus, VisibilityPrivate:
	case VisibilityEmbargo:
		if d.EmbargoUntil == nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "embargoed document requires an embargo_until instant")
		}
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("unknown visibility %q", d.Visibility))
	}

	switch d.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("unknown status %q", d.Status))
	}

	if strings.TrimSpace(d.Title) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "title must not be blank")
	}
	if strings.TrimSpace(d.StorageKey) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "storage key must not be blank")
	}

	return nil
}
