package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	repo   DocumentRepository
	store  FileStore
	minter CapabilityMinter
}

// NewDocumentUseCase creates a new document use case.
func NewDocumentUseCase(repo DocumentRepository, store FileStore, minter CapabilityMinter) DocumentUseCase {
	return &documentUseCase{
		repo:   repo,
		store:  store,
		minter: minter,
	}
}

// Get returns document metadata when the principal may read it.
func (u *documentUseCase) Get(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (*docsDomain.Document, error) {
	doc, err := u.deliverable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !accessDomain.Evaluate(doc, p, now).Allowed() {
		return nil, accessDomain.ErrAccessDenied
	}
	return doc, nil
}

// List returns the documents visible to the principal. The repository applies
// the access filter, so no post-filtering happens here.
func (u *documentUseCase) List(
	ctx context.Context,
	p accessDomain.Principal,
	q docsDomain.ListQuery,
	offset, limit int,
	now time.Time,
) ([]*docsDomain.Document, error) {
	access := accessDomain.NewAccessFilter(p, now)
	return u.repo.List(ctx, q, access, offset, limit)
}

// Download evaluates access at request time and opens the stored bytes.
func (u *documentUseCase) Download(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (*docsDomain.Document, io.ReadCloser, error) {
	doc, err := u.deliverable(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !accessDomain.Evaluate(doc, p, now).Allowed() {
		return nil, nil, accessDomain.ErrAccessDenied
	}
	reader, err := u.open(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}

// DownloadWithCapability serves bytes for a verified capability. The grant is
// checked against exactly the requested document; the signature and expiry
// were already verified when the capability was decoded.
func (u *documentUseCase) DownloadWithCapability(
	ctx context.Context,
	id uuid.UUID,
	grant accessDomain.Capability,
) (*docsDomain.Document, io.ReadCloser, error) {
	if grant.DocumentID != id {
		return nil, nil, accessDomain.ErrCapabilityDocumentMismatch
	}
	doc, err := u.deliverable(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := u.open(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}

// IssueSignedGrant evaluates access once (inside the minter) and returns the
// signed capability.
func (u *documentUseCase) IssueSignedGrant(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (SignedGrant, error) {
	doc, err := u.deliverable(ctx, id)
	if err != nil {
		return SignedGrant{}, err
	}
	signed, grant, err := u.minter.Mint(doc, p, now)
	if err != nil {
		return SignedGrant{}, err
	}
	return SignedGrant{Token: signed, ExpiresAt: grant.ExpiresAt}, nil
}

// deliverable loads a document and folds unapproved status into the not-found
// outcome so callers cannot distinguish "exists but unapproved" from "absent".
func (u *documentUseCase) deliverable(ctx context.Context, id uuid.UUID) (*docsDomain.Document, error) {
	doc, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != docsDomain.StatusApproved {
		return nil, docsDomain.ErrDocumentNotFound
	}
	return doc, nil
}

// open streams the document's bytes, folding missing objects into the same
// not-found outcome as an absent document.
func (u *documentUseCase) open(ctx context.Context, doc *docsDomain.Document) (io.ReadCloser, error) {
	reader, err := u.store.Open(ctx, doc.StorageKey)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, docsDomain.ErrDocumentNotFound
		}
		return nil, err
	}
	return reader, nil
}
