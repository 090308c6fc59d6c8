package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	"github.com/scholarvault/scholarvault/internal/testutil"
)

const testInstitutionDomain = "example.edu"

// documentRepository is the shared surface of the two SQL implementations,
// letting the behavioral tests run against either database.
type documentRepository interface {
	Create(ctx context.Context, doc *docsDomain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*docsDomain.Document, error)
	List(ctx context.Context, q docsDomain.ListQuery, access accessDomain.AccessFilter, offset, limit int) ([]*docsDomain.Document, error)
}

func newStoredDocument(title string, createdAt time.Time) *docsDomain.Document {
	return &docsDomain.Document{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       title,
		Category:    "thesis",
		Year:        2025,
		Visibility:  docsDomain.VisibilityPublic,
		Status:      docsDomain.StatusApproved,
		StorageKey:  "documents/" + uuid.NewString() + ".pdf",
		FileName:    "artifact.pdf",
		ContentType: "application/pdf",
		FileSize:    1024,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func testPrincipal(identity string, role accessDomain.Role) accessDomain.Principal {
	return accessDomain.NewPrincipal(identity, role, testInstitutionDomain, accessDomain.ProvenanceBearer)
}

func testCreateGetByID(t *testing.T, repo documentRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := newStoredDocument("Round Trip", now)
	doc.Visibility = docsDomain.VisibilityPrivate
	doc.AuthorEmail = "Author@Example.EDU"
	doc.AllowedViewers = []string{"Zed@Elsewhere.ORG", "ann@elsewhere.org"}
	lift := now.Add(time.Hour)
	doc.EmbargoUntil = &lift

	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Category, got.Category)
	assert.Equal(t, doc.Year, got.Year)
	assert.Equal(t, doc.Visibility, got.Visibility)
	assert.Equal(t, doc.Status, got.Status)
	assert.Equal(t, doc.StorageKey, got.StorageKey)
	assert.Equal(t, doc.FileName, got.FileName)
	assert.Equal(t, doc.ContentType, got.ContentType)
	assert.Equal(t, doc.FileSize, got.FileSize)
	// Owner identities are lowercased at write time.
	assert.Equal(t, "author@example.edu", got.AuthorEmail)
	// Viewers come back lowercased in identity order.
	assert.Equal(t, []string{"ann@elsewhere.org", "zed@elsewhere.org"}, got.AllowedViewers)
	require.NotNil(t, got.EmbargoUntil)
	assert.WithinDuration(t, lift, *got.EmbargoUntil, time.Second)
}

func testGetByIDNotFound(t *testing.T, repo documentRepository) {
	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	require.Error(t, err)
	assert.ErrorIs(t, err, docsDomain.ErrDocumentNotFound)
}

// testListMatchesEvaluator inserts a corpus covering every visibility class,
// status, embargo timing, ownership, and allow-list state, then checks that the
// SQL translation returns exactly the documents the in-memory evaluator allows.
func testListMatchesEvaluator(t *testing.T, repo documentRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	var corpus []*docsDomain.Document
	i := 0
	for _, visibility := range []docsDomain.Visibility{
		docsDomain.VisibilityPublic,
		docsDomain.VisibilityCampus,
		docsDomain.VisibilityEmbargo,
		docsDomain.VisibilityPrivate,
	} {
		for _, status := range []docsDomain.Status{
			docsDomain.StatusPending,
			docsDomain.StatusApproved,
			docsDomain.StatusRejected,
		} {
			for _, embargoUntil := range []*time.Time{&past, &future} {
				for _, owner := range []string{"", "owner@example.edu"} {
					for _, viewers := range [][]string{nil, {"reviewer@elsewhere.org"}} {
						i++
						doc := newStoredDocument(fmt.Sprintf("Corpus %03d", i), now.Add(-time.Duration(i)*time.Minute))
						doc.Visibility = visibility
						doc.Status = status
						doc.EmbargoUntil = embargoUntil
						doc.AuthorEmail = owner
						doc.AllowedViewers = viewers
						require.NoError(t, repo.Create(ctx, doc))
						corpus = append(corpus, doc)
					}
				}
			}
		}
	}

	principals := []accessDomain.Principal{
		testPrincipal("student@example.edu", accessDomain.RoleStudent),
		testPrincipal("staff@example.edu", accessDomain.RoleStaff),
		testPrincipal("alum@gmail.com", accessDomain.RoleStudent),
		testPrincipal("owner@example.edu", accessDomain.RoleStudent),
		testPrincipal("reviewer@elsewhere.org", accessDomain.RoleFaculty),
	}

	for _, p := range principals {
		predicate := accessDomain.BuildPredicate(p, now)

		want := make(map[uuid.UUID]bool)
		for _, doc := range corpus {
			if predicate(doc) {
				want[doc.ID] = true
			}
		}

		docs, err := repo.List(ctx, docsDomain.ListQuery{}, accessDomain.NewAccessFilter(p, now), 0, len(corpus))
		require.NoError(t, err)

		got := make(map[uuid.UUID]bool)
		for _, doc := range docs {
			got[doc.ID] = true
		}
		assert.Equal(t, want, got, p.Identity)
	}
}

func testListCatalogFilters(t *testing.T, repo documentRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	thesis := newStoredDocument("Adaptive Query Planning", now)
	dataset := newStoredDocument("Sensor Dataset Report", now.Add(-time.Minute))
	dataset.Category = "dataset"
	dataset.Year = 2023

	require.NoError(t, repo.Create(ctx, thesis))
	require.NoError(t, repo.Create(ctx, dataset))

	access := accessDomain.NewAccessFilter(testPrincipal("alice@example.edu", accessDomain.RoleStudent), now)

	docs, err := repo.List(ctx, docsDomain.ListQuery{Category: "dataset"}, access, 0, 50)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, dataset.ID, docs[0].ID)

	docs, err = repo.List(ctx, docsDomain.ListQuery{Year: 2025}, access, 0, 50)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, thesis.ID, docs[0].ID)

	// Title search is case-insensitive and matches substrings.
	docs, err = repo.List(ctx, docsDomain.ListQuery{Text: "query planning"}, access, 0, 50)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, thesis.ID, docs[0].ID)

	docs, err = repo.List(ctx, docsDomain.ListQuery{Text: "no such title"}, access, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testListPagination(t *testing.T, repo documentRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		doc := newStoredDocument(fmt.Sprintf("Page %d", i), now.Add(-time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, doc))
		ids = append(ids, doc.ID)
	}

	access := accessDomain.NewAccessFilter(testPrincipal("alice@example.edu", accessDomain.RoleStudent), now)

	// Newest first.
	docs, err := repo.List(ctx, docsDomain.ListQuery{}, access, 0, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, ids[0], docs[0].ID)
	assert.Equal(t, ids[1], docs[1].ID)

	docs, err = repo.List(ctx, docsDomain.ListQuery{}, access, 2, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, ids[2], docs[0].ID)
	assert.Equal(t, ids[3], docs[1].ID)

	docs, err = repo.List(ctx, docsDomain.ListQuery{}, access, 4, 2)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, ids[4], docs[0].ID)
}

func TestPostgreSQLDocumentRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLDocumentRepository(db)

	t.Run("create and get by id", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		testCreateGetByID(t, repo)
	})

	t.Run("get by id not found", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		testGetByIDNotFound(t, repo)
	})

	t.Run("list matches evaluator", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		testListMatchesEvaluator(t, repo)
	})

	t.Run("list catalog filters", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		testListCatalogFilters(t, repo)
	})

	t.Run("list pagination", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		testListPagination(t, repo)
	})
}
