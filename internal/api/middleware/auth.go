package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
)

// PrincipalKey is the key used to store the authenticated principal in the
// gin context
const PrincipalKey = "principal"

// RequireAuth resolves the Bearer token into a principal and aborts with 401
// when the credential is missing, unknown or expired
func RequireAuth(logger *slog.Logger, authenticator identity.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}
			logger.Error("Failed to authenticate request", "error", err)
			abortWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated principal holds one of
// the listed roles. Must run after RequireAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	}
}

// GetPrincipal retrieves the authenticated principal from the gin context,
// or nil when the request is unauthenticated
func GetPrincipal(c *gin.Context) *identity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if principal, ok := v.(*identity.Principal); ok {
			return principal
		}
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortWithError(c *gin.Context, statusCode int, code, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(statusCode, response)
}
