package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	accessHTTP "github.com/scholarvault/scholarvault/internal/access/http"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
	docsUseCase "github.com/scholarvault/scholarvault/internal/documents/usecase"
	"github.com/scholarvault/scholarvault/internal/httputil"
)

// FileHandler serves document bytes. It is the delivery gate: the one route
// that accepts either credential kind, resolves it itself (it is not mounted
// behind the authentication middleware), and re-checks access on every
// request. Bearer credentials arrive via the Authorization header or, on GET,
// the ?token= query parameter. Capabilities arrive only via ?sig=; a
// capability in a header is never honored.
type FileHandler struct {
	documentUseCase   docsUseCase.DocumentUseCase
	bearerService     accessService.BearerService
	capabilityService accessService.CapabilityService
	logger            *slog.Logger
}

// NewFileHandler creates a new file handler with required dependencies.
func NewFileHandler(
	documentUseCase docsUseCase.DocumentUseCase,
	bearerService accessService.BearerService,
	capabilityService accessService.CapabilityService,
	logger *slog.Logger,
) *FileHandler {
	return &FileHandler{
		documentUseCase:   documentUseCase,
		bearerService:     bearerService,
		capabilityService: capabilityService,
		logger:            logger,
	}
}

// DownloadHandler streams the stored bytes for a document.
// GET /v1/documents/:id/file - Accepts a bearer credential or ?sig= capability.
// Returns 200 OK with the bytes, 401 on credential defects, 403 on denial or
// capability mismatch, 404 when the document is absent, unapproved, or its
// bytes are missing (deliberately indistinguishable).
func (h *FileHandler) DownloadHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid document id"), h.logger)
		return
	}

	doc, reader, err := h.resolveAndOpen(c, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() { _ = reader.Close() }()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", doc.FileName),
	}
	c.DataFromReader(http.StatusOK, doc.FileSize, doc.ContentType, reader, extraHeaders)
}

// resolveAndOpen picks the credential channel and runs the matching delivery
// path. A resolvable bearer credential takes precedence; when the bearer is
// absent or fails resolution, a presented ?sig= capability still gets its
// chance, so a signed URL keeps working next to a stale session token.
func (h *FileHandler) resolveAndOpen(
	c *gin.Context,
	id uuid.UUID,
) (*docsDomain.Document, io.ReadCloser, error) {
	now := time.Now().UTC()

	var bearerErr error
	if token, ok := accessHTTP.ExtractBearerCredential(c.Request); ok {
		principal, err := h.bearerService.Resolve(token)
		if err == nil {
			doc, reader, err := h.documentUseCase.Download(c.Request.Context(), id, principal, now)
			if err != nil {
				return nil, nil, err
			}
			return doc, reader, nil
		}
		h.logger.Debug("bearer resolution failed, trying capability",
			slog.String("error", err.Error()))
		bearerErr = err
	}

	if sig := c.Query("sig"); sig != "" {
		grant, err := h.capabilityService.Verify(sig)
		if err != nil {
			h.logger.Debug("delivery refused: capability verification failed",
				slog.String("error", err.Error()))
			return nil, nil, err
		}
		doc, reader, err := h.documentUseCase.DownloadWithCapability(c.Request.Context(), id, grant)
		if err != nil {
			return nil, nil, err
		}
		return doc, reader, nil
	}

	if bearerErr != nil {
		return nil, nil, bearerErr
	}
	return nil, nil, accessDomain.ErrCredentialMissing
}
