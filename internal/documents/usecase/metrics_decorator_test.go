package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// recordingMetrics captures business metric calls for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	operations []string
	statuses   []string
}

func (m *recordingMetrics) RecordOperation(_ context.Context, _, operation, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations = append(m.operations, operation)
	m.statuses = append(m.statuses, status)
}

func (m *recordingMetrics) RecordDuration(_ context.Context, _, _ string, _ time.Duration, _ string) {
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "denied", outcome(accessDomain.ErrAccessDenied))
	assert.Equal(t, "denied", outcome(accessDomain.ErrCapabilityDocumentMismatch))
	assert.Equal(t, "error", outcome(docsDomain.ErrDocumentNotFound))
}

func TestDocumentUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	public := newApprovedDocument()
	private := newApprovedDocument()
	private.Visibility = docsDomain.VisibilityPrivate

	recorder := &recordingMetrics{}
	uc := NewDocumentUseCaseWithMetrics(
		newTestUseCase([]*docsDomain.Document{public, private}, nil),
		recorder,
	)

	_, err := uc.Get(ctx, public.ID, newTestPrincipal("alice@example.edu", accessDomain.RoleStudent), now)
	require.NoError(t, err)

	_, err = uc.Get(ctx, private.ID, newTestPrincipal("alice@example.edu", accessDomain.RoleStudent), now)
	require.Error(t, err)

	_, err = uc.Get(ctx, uuid.Must(uuid.NewV7()), newTestPrincipal("alice@example.edu", accessDomain.RoleStudent), now)
	require.Error(t, err)

	assert.Equal(t, []string{"document_get", "document_get", "document_get"}, recorder.operations)
	assert.Equal(t, []string{"success", "denied", "error"}, recorder.statuses)
}

func TestDocumentUseCaseWithMetrics_OperationLabels(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	doc := newApprovedDocument()
	objects := map[string][]byte{doc.StorageKey: []byte("pdf bytes")}

	recorder := &recordingMetrics{}
	uc := NewDocumentUseCaseWithMetrics(
		newTestUseCase([]*docsDomain.Document{doc}, objects),
		recorder,
	)

	principal := newTestPrincipal("alice@example.edu", accessDomain.RoleStudent)

	_, err := uc.List(ctx, principal, docsDomain.ListQuery{}, 0, 50, now)
	require.NoError(t, err)

	_, reader, err := uc.Download(ctx, doc.ID, principal, now)
	require.NoError(t, err)
	_ = reader.Close()

	grant, err := uc.IssueSignedGrant(ctx, doc.ID, principal, now)
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)

	_, reader, err = uc.DownloadWithCapability(ctx, doc.ID, accessDomain.Capability{
		Subject:    principal.Identity,
		DocumentID: doc.ID,
		Role:       principal.Role,
		ExpiresAt:  now.Add(accessDomain.CapabilityTTL),
	})
	require.NoError(t, err)
	_ = reader.Close()

	assert.Equal(t, []string{
		"document_list",
		"document_download",
		"document_sign",
		"document_download_capability",
	}, recorder.operations)
}
