package dto

import (
	"time"

	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// DocumentResponse represents document metadata in API responses. Allow-lists
// and storage keys are internal access-control state and are never exposed.
type DocumentResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Year         int        `json:"year"`
	Visibility   string     `json:"visibility"`
	EmbargoUntil *time.Time `json:"embargo_until,omitempty"`
	AuthorEmail  string     `json:"author_email"`
	FileName     string     `json:"file_name"`
	ContentType  string     `json:"content_type"`
	FileSize     int64      `json:"file_size"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MapDocumentToResponse converts a domain document to an API response.
func MapDocumentToResponse(doc *docsDomain.Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID.String(),
		Title:        doc.Title,
		Category:     doc.Category,
		Year:         doc.Year,
		Visibility:   string(doc.Visibility),
		EmbargoUntil: doc.EmbargoUntil,
		AuthorEmail:  doc.AuthorEmail,
		FileName:     doc.FileName,
		ContentType:  doc.ContentType,
		FileSize:     doc.FileSize,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// ListDocumentsResponse wraps a page of document metadata.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// MapDocumentsToListResponse converts a page of domain documents to an API
// response.
func MapDocumentsToListResponse(docs []*docsDomain.Document, offset, limit int) ListDocumentsResponse {
	responses := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, MapDocumentToResponse(doc))
	}
	return ListDocumentsResponse{
		Documents: responses,
		Offset:    offset,
		Limit:     limit,
	}
}

// SignedGrantResponse carries a freshly minted delivery capability. The URL is
// the only supported way to present the capability; it is never accepted in a
// header.
type SignedGrantResponse struct {
	URL              string    `json:"url"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int64     `json:"expires_in_seconds"`
}
