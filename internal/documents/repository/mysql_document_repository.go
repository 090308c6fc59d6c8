package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	"github.com/scholarvault/scholarvault/internal/database"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// MySQLDocumentRepository implements Document persistence for MySQL.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a new MySQL document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

// Create inserts a document and its allow-list rows. Owner identities and
// allowed viewers are lowercased at write time so SQL equality comparisons
// match the case-insensitive domain rules.
func (m *MySQLDocumentRepository) Create(ctx context.Context, doc *docsDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO documents (id, title, category, year, visibility, embargo_until,
			  author_email, submitter_email, adviser_email, uploader_email,
			  status, storage_key, file_name, content_type, file_size, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		doc.ID.String(),
		doc.Title,
		doc.Category,
		doc.Year,
		doc.Visibility,
		doc.EmbargoUntil,
		strings.ToLower(doc.AuthorEmail),
		strings.ToLower(doc.SubmitterEmail),
		strings.ToLower(doc.AdviserEmail),
		strings.ToLower(doc.UploaderEmail),
		doc.Status,
		doc.StorageKey,
		doc.FileName,
		doc.ContentType,
		doc.FileSize,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}

	for _, viewer := range doc.AllowedViewers {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO document_viewers (document_id, identity) VALUES (?, ?)`,
			doc.ID.String(),
			strings.ToLower(viewer),
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to create document viewer")
		}
	}

	return nil
}

// GetByID retrieves a document with its allow-list by ID.
func (m *MySQLDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*docsDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = ?`

	doc, err := scanDocument(querier.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, docsDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document by id")
	}

	rows, err := querier.QueryContext(
		ctx,
		`SELECT identity FROM document_viewers WHERE document_id = ? ORDER BY identity`,
		id.String(),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get document viewers")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var viewer string
		if err := rows.Scan(&viewer); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document viewer")
		}
		doc.AllowedViewers = append(doc.AllowedViewers, viewer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate document viewers")
	}

	return doc, nil
}

// List retrieves documents visible under the access filter, narrowed by the
// catalog query, newest first. Allow-lists are not loaded for listings.
func (m *MySQLDocumentRepository) List(
	ctx context.Context,
	q docsDomain.ListQuery,
	access accessDomain.AccessFilter,
	offset, limit int,
) ([]*docsDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query, args := buildMySQLListQuery(q, access, offset, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() { _ = rows.Close() }()

	var docs []*docsDomain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return docs, nil
}

// buildMySQLListQuery renders the access filter and catalog query into a
// parameterized SELECT with ? placeholders. The visibility branches mirror
// buildPostgreSQLListQuery; MySQL cannot reuse positional parameters, so the
// identity is bound once per ownership column.
func buildMySQLListQuery(
	q docsDomain.ListQuery,
	access accessDomain.AccessFilter,
	offset, limit int,
) (string, []any) {
	var args []any

	conds := []string{"d.status = 'approved'"}

	if !access.Unrestricted {
		branches := []string{"d.visibility = 'public'"}
		if access.Affiliated {
			// Unknown visibility values fall back to the campus rule.
			branches = append(branches,
				"d.visibility NOT IN ('public', 'embargo', 'private')")
			branches = append(branches,
				"(d.visibility = 'embargo' AND d.embargo_until IS NOT NULL AND d.embargo_until <= ?)")
			args = append(args, access.Now)
		}
		branches = append(branches,
			"(d.visibility = 'private' AND EXISTS (SELECT 1 FROM document_viewers v WHERE v.document_id = d.id AND v.identity = ?))",
			"d.author_email = ?",
			"d.submitter_email = ?",
			"d.adviser_email = ?",
			"d.uploader_email = ?",
		)
		args = append(args, access.Identity, access.Identity, access.Identity, access.Identity, access.Identity)
		conds = append(conds, "("+strings.Join(branches, " OR ")+")")
	}

	if q.Category != "" {
		conds = append(conds, "d.category = ?")
		args = append(args, q.Category)
	}
	if q.Year != 0 {
		conds = append(conds, "d.year = ?")
		args = append(args, q.Year)
	}
	if q.Text != "" {
		conds = append(conds, "LOWER(d.title) LIKE LOWER(?)")
		args = append(args, "%"+q.Text+"%")
	}

	query := `SELECT ` + documentColumns + ` FROM documents d WHERE ` +
		strings.Join(conds, " AND ") +
		" ORDER BY d.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return query, args
}
