// Package http provides the HTTP handler for credential exchange.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarvault/scholarvault/internal/accounts/http/dto"
	accountsUseCase "github.com/scholarvault/scholarvault/internal/accounts/usecase"
	"github.com/scholarvault/scholarvault/internal/httputil"
	customValidation "github.com/scholarvault/scholarvault/internal/validation"
)

// TokenHandler handles login requests.
type TokenHandler struct {
	userUseCase accountsUseCase.UserUseCase
	logger      *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(userUseCase accountsUseCase.UserUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateHandler exchanges account credentials for a bearer token.
// POST /v1/auth/token
// Returns 200 OK with the token, 401 on bad credentials (never distinguishing
// unknown email from wrong password), 422 on malformed input.
func (h *TokenHandler) CreateHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issued, err := h.userUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   issued.ExpiresAt,
	})
}
