package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
	"github.com/scholarvault/scholarvault/internal/httputil"
)

// ExtractBearerCredential pulls the bearer credential from a request. The
// Authorization header is checked first; on read-only GET requests a ?token=
// query parameter is accepted as a fallback. The ?sig= parameter is the
// capability channel and is never read here: capabilities must not arrive
// through the bearer path.
func ExtractBearerCredential(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		return token, token != ""
	}

	if r.Method == http.MethodGet {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, true
		}
	}

	return "", false
}

// AuthenticationMiddleware resolves the bearer credential into a principal.
//
// The middleware:
//  1. Extracts the bearer token (Authorization header, or ?token= on GET)
//  2. Resolves it through the bearer service (fails closed on any defect)
//  3. Stores the canonical principal in the request context for handlers
//
// Error handling:
//   - Missing credential → 401 Unauthorized
//   - Malformed/expired/bad-signature credential → 401 Unauthorized
func AuthenticationMiddleware(
	bearerService accessService.BearerService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerCredential(c.Request)
		if !ok {
			logger.Debug("authentication failed: no usable bearer credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := bearerService.Resolve(token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("identity", principal.Identity),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// RequirePrincipal retrieves the principal set by AuthenticationMiddleware,
// writing a 401 and aborting when absent. Handlers behind the middleware use
// this instead of re-resolving credentials.
func RequirePrincipal(c *gin.Context, logger *slog.Logger) (accessDomain.Principal, bool) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		logger.Error("no principal in context; authentication middleware missing")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		c.Abort()
		return accessDomain.Principal{}, false
	}
	return principal, true
}
