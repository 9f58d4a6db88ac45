package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*identity.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Principal), args.Error(1)
}

var _ identity.Authenticator = (*MockAuthenticator)(nil)

func newAuthTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ValidTokenStoresPrincipal", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		principal := &identity.Principal{UserID: uuid.New(), Role: identity.RoleApplicant, Name: "Jane Doe"}
		authenticator.On("Authenticate", mock.Anything, "valid-token").Return(principal, nil)

		router := gin.New()
		router.Use(RequireAuth(newAuthTestLogger(), authenticator))
		var captured *identity.Principal
		router.GET("/test", func(c *gin.Context) {
			captured = GetPrincipal(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, principal.UserID, captured.UserID)
		assert.Equal(t, identity.RoleApplicant, captured.Role)

		authenticator.AssertExpectations(t)
	})

	t.Run("MissingHeaderRejected", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		authenticator.On("Authenticate", mock.Anything, "").Return(nil, identity.ErrUnauthenticated)

		router := gin.New()
		router.Use(RequireAuth(newAuthTestLogger(), authenticator))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})

	t.Run("UnknownTokenRejected", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		authenticator.On("Authenticate", mock.Anything, "bogus").Return(nil, identity.ErrUnauthenticated)

		router := gin.New()
		router.Use(RequireAuth(newAuthTestLogger(), authenticator))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bogus")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})

	t.Run("AuthenticatorFailureIsInternalError", func(t *testing.T) {
		authenticator := new(MockAuthenticator)
		authenticator.On("Authenticate", mock.Anything, "valid-token").
			Return(nil, assert.AnError)

		router := gin.New()
		router.Use(RequireAuth(newAuthTestLogger(), authenticator))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "INTERNAL_SERVER_ERROR")
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouterWithPrincipal := func(principal *identity.Principal, roles ...identity.Role) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if principal != nil {
				c.Set(PrincipalKey, principal)
			}
			c.Next()
		})
		router.Use(RequireRole(roles...))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("MatchingRoleAllowed", func(t *testing.T) {
		principal := &identity.Principal{UserID: uuid.New(), Role: identity.RoleUnderwriter}
		router := newRouterWithPrincipal(principal, identity.RoleUnderwriter, identity.RoleSystemAdmin)

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("WrongRoleForbidden", func(t *testing.T) {
		principal := &identity.Principal{UserID: uuid.New(), Role: identity.RoleApplicant}
		router := newRouterWithPrincipal(principal, identity.RoleSystemAdmin)

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "FORBIDDEN")
	})

	t.Run("NoPrincipalUnauthorized", func(t *testing.T) {
		router := newRouterWithPrincipal(nil, identity.RoleApplicant)

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", bearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", bearerToken("bearer abc123"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic abc123"))
	assert.Equal(t, "", bearerToken("Bearer "))
}
