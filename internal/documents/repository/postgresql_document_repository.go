// Package repository implements document persistence for PostgreSQL and MySQL.
// List queries translate the access filter into SQL so visibility decisions
// made in the database match the in-memory evaluator.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	"github.com/scholarvault/scholarvault/internal/database"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

const documentColumns = `d.id, d.title, d.category, d.year, d.visibility, d.embargo_until, ` +
	`d.author_email, d.submitter_email, d.adviser_email, d.uploader_email, ` +
	`d.status, d.storage_key, d.file_name, d.content_type, d.file_size, d.created_at, d.updated_at`

// PostgreSQLDocumentRepository implements Document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts a document and its allow-list rows. Owner identities and
// allowed viewers are lowercased at write time so SQL equality comparisons
// match the case-insensitive domain rules.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *docsDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, title, category, year, visibility, embargo_until,
			  author_email, submitter_email, adviser_email, uploader_email,
			  status, storage_key, file_name, content_type, file_size, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := querier.ExecContext(
		ctx,
		query,
		doc.ID,
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
			`INSERT INTO document_viewers (document_id, identity) VALUES ($1, $2)`,
			doc.ID,
			strings.ToLower(viewer),
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to create document viewer")
		}
	}

	return nil
}

// GetByID retrieves a document with its allow-list by ID.
func (p *PostgreSQLDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*docsDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = $1`

	doc, err := scanDocument(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, docsDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document by id")
	}

	rows, err := querier.QueryContext(
		ctx,
		`SELECT identity FROM document_viewers WHERE document_id = $1 ORDER BY identity`,
		id,
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
func (p *PostgreSQLDocumentRepository) List(
	ctx context.Context,
	q docsDomain.ListQuery,
	access accessDomain.AccessFilter,
	offset, limit int,
) ([]*docsDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query, args := buildPostgreSQLListQuery(q, access, offset, limit)

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

// buildPostgreSQLListQuery renders the access filter and catalog query into a
// parameterized SELECT. The visibility branches mirror the evaluator's rule
// table exactly:
//
//   - public is visible to every principal
//   - campus (and any unknown class, which falls back to campus) requires
//     affiliation
//   - embargo requires affiliation and an elapsed embargo instant
//   - private requires allow-list membership
//   - ownership of any of the four owner columns overrides everything but the
//     approved-status gate
func buildPostgreSQLListQuery(
	q docsDomain.ListQuery,
	access accessDomain.AccessFilter,
	offset, limit int,
) (string, []any) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds := []string{"d.status = 'approved'"}

	if !access.Unrestricted {
		branches := []string{"d.visibility = 'public'"}
		if access.Affiliated {
			// Unknown visibility values fall back to the campus rule.
			branches = append(branches,
				"d.visibility NOT IN ('public', 'embargo', 'private')")
			branches = append(branches, fmt.Sprintf(
				"(d.visibility = 'embargo' AND d.embargo_until IS NOT NULL AND d.embargo_until <= %s)",
				arg(access.Now)))
		}
		branches = append(branches, fmt.Sprintf(
			"(d.visibility = 'private' AND EXISTS (SELECT 1 FROM document_viewers v WHERE v.document_id = d.id AND v.identity = %s))",
			arg(access.Identity)))
		owner := arg(access.Identity)
		branches = append(branches,
			fmt.Sprintf("d.author_email = %s", owner),
			fmt.Sprintf("d.submitter_email = %s", owner),
			fmt.Sprintf("d.adviser_email = %s", owner),
			fmt.Sprintf("d.uploader_email = %s", owner),
		)
		conds = append(conds, "("+strings.Join(branches, " OR ")+")")
	}

	if q.Category != "" {
		conds = append(conds, fmt.Sprintf("d.category = %s", arg(q.Category)))
	}
	if q.Year != 0 {
		conds = append(conds, fmt.Sprintf("d.year = %s", arg(q.Year)))
	}
	if q.Text != "" {
		conds = append(conds, fmt.Sprintf("d.title ILIKE %s", arg("%"+q.Text+"%")))
	}

	query := `SELECT ` + documentColumns + ` FROM documents d WHERE ` +
		strings.Join(conds, " AND ") +
		fmt.Sprintf(" ORDER BY d.created_at DESC LIMIT %s OFFSET %s", arg(limit), arg(offset))

	return query, args
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans one document row in documentColumns order.
func scanDocument(row rowScanner) (*docsDomain.Document, error) {
	var (
		doc          docsDomain.Document
		embargoUntil sql.NullTime
	)
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Category,
		&doc.Year,
		&doc.Visibility,
		&embargoUntil,
		&doc.AuthorEmail,
		&doc.SubmitterEmail,
		&doc.AdviserEmail,
		&doc.UploaderEmail,
		&doc.Status,
		&doc.StorageKey,
		&doc.FileName,
		&doc.ContentType,
		&doc.FileSize,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if embargoUntil.Valid {
		t := embargoUntil.Time
		doc.EmbargoUntil = &t
	}
	return &doc, nil
}
