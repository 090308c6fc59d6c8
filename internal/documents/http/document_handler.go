// Package http provides HTTP handlers for document metadata, listing, and
// delivery. The file endpoint is the delivery gate: it accepts either a bearer
// credential or a signed capability and re-checks access on every request.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessHTTP "github.com/scholarvault/scholarvault/internal/access/http"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	"github.com/scholarvault/scholarvault/internal/documents/http/dto"
	docsUseCase "github.com/scholarvault/scholarvault/internal/documents/usecase"
	"github.com/scholarvault/scholarvault/internal/httputil"
	customValidation "github.com/scholarvault/scholarvault/internal/validation"
)

// DocumentHandler handles HTTP requests for document metadata and signed
// grant issuance. All routes require an authenticated principal.
type DocumentHandler struct {
	documentUseCase docsUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(documentUseCase docsUseCase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// GetHandler retrieves document metadata by ID.
// GET /v1/documents/:id - Requires an authenticated principal.
// Returns 200 OK with metadata, 404 when absent or unapproved, 403 when the
// visibility rules deny.
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	principal, ok := accessHTTP.RequirePrincipal(c, h.logger)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid document id"), h.logger)
		return
	}

	doc, err := h.documentUseCase.Get(c.Request.Context(), id, principal, time.Now().UTC())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// ListHandler lists documents visible to the principal.
// GET /v1/documents?text=&category=&year=&offset=&limit=
// Returns 200 OK with a page of metadata. The page contains only documents
// the principal could retrieve individually.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	principal, ok := accessHTTP.RequirePrincipal(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req := dto.ListDocumentsRequest{
		Text:     c.Query("text"),
		Category: c.Query("category"),
	}
	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid year"), h.logger)
			return
		}
		req.Year = year
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	docs, err := h.documentUseCase.List(
		c.Request.Context(),
		principal,
		docsDomain.ListQuery{Text: req.Text, Category: req.Category, Year: req.Year},
		offset,
		limit,
		time.Now().UTC(),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentsToListResponse(docs, offset, limit))
}

// SignHandler mints a short-lived signed delivery URL for a document.
// GET /v1/documents/:id/signed - Requires an authenticated principal.
// Returns 200 OK with the URL, 404 when absent or unapproved, 403 when access
// is denied at mint time.
func (h *DocumentHandler) SignHandler(c *gin.Context) {
	principal, ok := accessHTTP.RequirePrincipal(c, h.logger)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid document id"), h.logger)
		return
	}

	now := time.Now().UTC()
	grant, err := h.documentUseCase.IssueSignedGrant(c.Request.Context(), id, principal, now)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SignedGrantResponse{
		URL:              fmt.Sprintf("/v1/documents/%s/file?sig=%s", id, url.QueryEscape(grant.Token)),
		ExpiresAt:        grant.ExpiresAt,
		ExpiresInSeconds: int64(grant.ExpiresAt.Sub(now).Seconds()),
	})
}
