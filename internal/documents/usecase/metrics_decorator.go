package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
	"github.com/scholarvault/scholarvault/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics
// instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// outcome maps an operation result onto a metric status label. Denials are
// labeled separately from errors so refusal rates are observable.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, apperrors.ErrForbidden):
		return "denied"
	default:
		return "error"
	}
}

// Get records metrics for metadata retrieval operations.
func (d *documentUseCaseWithMetrics) Get(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (*docsDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Get(ctx, id, p, now)

	status := outcome(err)
	d.metrics.RecordOperation(ctx, "documents", "document_get", status)
	d.metrics.RecordDuration(ctx, "documents", "document_get", time.Since(start), status)

	return doc, err
}

// List records metrics for listing operations.
func (d *documentUseCaseWithMetrics) List(
	ctx context.Context,
	p accessDomain.Principal,
	q docsDomain.ListQuery,
	offset, limit int,
	now time.Time,
) ([]*docsDomain.Document, error) {
	start := time.Now()
	docs, err := d.next.List(ctx, p, q, offset, limit, now)

	status := outcome(err)
	d.metrics.RecordOperation(ctx, "documents", "document_list", status)
	d.metrics.RecordDuration(ctx, "documents", "document_list", time.Since(start), status)

	return docs, err
}

// Download records metrics for bearer-credential deliveries.
func (d *documentUseCaseWithMetrics) Download(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (*docsDomain.Document, io.ReadCloser, error) {
	start := time.Now()
	doc, reader, err := d.next.Download(ctx, id, p, now)

	status := outcome(err)
	d.metrics.RecordOperation(ctx, "documents", "document_download", status)
	d.metrics.RecordDuration(ctx, "documents", "document_download", time.Since(start), status)

	return doc, reader, err
}

// DownloadWithCapability records metrics for capability deliveries.
func (d *documentUseCaseWithMetrics) DownloadWithCapability(
	ctx context.Context,
	id uuid.UUID,
	grant accessDomain.Capability,
) (*docsDomain.Document, io.ReadCloser, error) {
	start := time.Now()
	doc, reader, err := d.next.DownloadWithCapability(ctx, id, grant)

	status := outcome(err)
	d.metrics.RecordOperation(ctx, "documents", "document_download_capability", status)
	d.metrics.RecordDuration(ctx, "documents", "document_download_capability", time.Since(start), status)

	return doc, reader, err
}

// IssueSignedGrant records metrics for capability minting.
func (d *documentUseCaseWithMetrics) IssueSignedGrant(
	ctx context.Context,
	id uuid.UUID,
	p accessDomain.Principal,
	now time.Time,
) (SignedGrant, error) {
	start := time.Now()
	grant, err := d.next.IssueSignedGrant(ctx, id, p, now)

	status := outcome(err)
	d.metrics.RecordOperation(ctx, "documents", "document_sign", status)
	d.metrics.RecordDuration(ctx, "documents", "document_sign", time.Since(start), status)

	return grant, err
}
