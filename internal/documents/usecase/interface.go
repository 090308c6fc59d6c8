// Package usecase orchestrates document retrieval and delivery. The delivery
// gate re-evaluates access on every byte-serving request and folds absence,
// unapproved status, and missing stored bytes into a single not-found outcome
// so responses never reveal which one occurred.
package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// DocumentRepository defines persistence operations for documents.
type DocumentRepository interface {
	// Create inserts a document and its allow-list.
	Create(ctx context.Context, doc *docsDomain.Document) error

	// GetByID retrieves a document with its allow-list. Returns
	// ErrDocumentNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*docsDomain.Document, error)

	// List retrieves documents matching the access filter and catalog query,
	// newest first.
	List(ctx context.Context, q docsDomain.ListQuery, access accessDomain.AccessFilter, offset, limit int) ([]*docsDomain.Document, error)
}

// FileStore streams stored artifact bytes.
type FileStore interface {
	// Open returns a reader over the bytes for key. Returns an error wrapping
	// ErrNotFound when the object is missing.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CapabilityMinter signs short-lived single-document capabilities.
type CapabilityMinter interface {
	Mint(doc *docsDomain.Document, p accessDomain.Principal, now time.Time) (signed string, grant accessDomain.Capability, err error)
}

// SignedGrant is the outcome of minting a delivery capability.
type SignedGrant struct {
	// Token is the signed capability, presented back via the ?sig= query
	// parameter.
	Token string
	// ExpiresAt is the instant the capability stops working.
	ExpiresAt time.Time
}

// DocumentUseCase defines document metadata and delivery operations. Every
// operation that touches a specific document evaluates access at request time;
// prior allows are never cached.
type DocumentUseCase interface {
	// Get returns document metadata when the principal may read it.
	// Unapproved or absent documents surface as ErrDocumentNotFound; a denied
	// evaluation surfaces as ErrAccessDenied.
	Get(ctx context.Context, id uuid.UUID, p accessDomain.Principal, now time.Time) (*docsDomain.Document, error)

	// List returns the documents visible to the principal, narrowed by the
	// catalog query.
	List(ctx context.Context, p accessDomain.Principal, q docsDomain.ListQuery, offset, limit int, now time.Time) ([]*docsDomain.Document, error)

	// Download evaluates access and, on allow, opens the stored bytes. Missing
	// bytes surface as ErrDocumentNotFound, indistinguishable from an absent
	// document. The caller owns the returned reader.
	Download(ctx context.Context, id uuid.UUID, p accessDomain.Principal, now time.Time) (*docsDomain.Document, io.ReadCloser, error)

	// DownloadWithCapability serves bytes for a verified capability. The grant
	// must be bound to exactly the requested document; a mismatch surfaces as
	// ErrCapabilityDocumentMismatch. No evaluator re-run happens here: the
	// capability is the decision, already made at mint time.
	DownloadWithCapability(ctx context.Context, id uuid.UUID, grant accessDomain.Capability) (*docsDomain.Document, io.ReadCloser, error)

	// IssueSignedGrant evaluates access once and mints a short-lived capability
	// for the document.
	IssueSignedGrant(ctx context.Context, id uuid.UUID, p accessDomain.Principal, now time.Time) (SignedGrant, error)
}
