package handler

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/api/service"
	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/restoration"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// setupTestRouter builds a test engine that injects the given principal, the
// way RequireAuth would after authenticating
func setupTestRouter(principal *identity.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, principal)
		c.Next()
	})
	return r
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, principal *identity.Principal, input service.SubmitApplicationInput) (*application.Application, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, principal *identity.Principal, id uuid.UUID) (*service.ApplicationView, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationView), args.Error(1)
}

func (m *MockApplicationService) ListOwn(ctx context.Context, principal *identity.Principal) ([]*application.Application, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationService) ListAll(ctx context.Context) ([]*application.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationService) ListDeleted(ctx context.Context) ([]*application.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationService) SoftDelete(ctx context.Context, principal *identity.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

var _ service.ApplicationService = (*MockApplicationService)(nil)

type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Decide(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input service.DecisionInput) (*application.Application, error) {
	args := m.Called(ctx, principal, applicationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockLifecycleService) RequestAdditionalDocuments(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, comment string) (*application.Application, error) {
	args := m.Called(ctx, principal, applicationID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

var _ service.LifecycleService = (*MockLifecycleService)(nil)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, input service.UploadDocumentInput) (*document.Record, *application.Application, error) {
	args := m.Called(ctx, principal, applicationID, input)
	var rec *document.Record
	var app *application.Application
	if args.Get(0) != nil {
		rec = args.Get(0).(*document.Record)
	}
	if args.Get(1) != nil {
		app = args.Get(1).(*application.Application)
	}
	return rec, app, args.Error(2)
}

func (m *MockDocumentService) Download(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, docType string) (*document.Record, io.ReadCloser, error) {
	args := m.Called(ctx, principal, applicationID, docType)
	var rec *document.Record
	var contents io.ReadCloser
	if args.Get(0) != nil {
		rec = args.Get(0).(*document.Record)
	}
	if args.Get(1) != nil {
		contents = args.Get(1).(io.ReadCloser)
	}
	return rec, contents, args.Error(2)
}

var _ service.DocumentService = (*MockDocumentService)(nil)

type MockRestorationService struct {
	mock.Mock
}

func (m *MockRestorationService) Request(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, reason string) (*restoration.Request, error) {
	args := m.Called(ctx, principal, applicationID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restoration.Request), args.Error(1)
}

func (m *MockRestorationService) List(ctx context.Context, status string) ([]*restoration.Request, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*restoration.Request), args.Error(1)
}

func (m *MockRestorationService) ListMine(ctx context.Context, principal *identity.Principal) ([]*restoration.Request, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*restoration.Request), args.Error(1)
}

func (m *MockRestorationService) Approve(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error) {
	args := m.Called(ctx, principal, requestID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restoration.Request), args.Error(1)
}

func (m *MockRestorationService) Reject(ctx context.Context, principal *identity.Principal, requestID uuid.UUID, notes string) (*restoration.Request, error) {
	args := m.Called(ctx, principal, requestID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restoration.Request), args.Error(1)
}

func (m *MockRestorationService) PermanentlyDelete(ctx context.Context, principal *identity.Principal, applicationID uuid.UUID, confirmation string) error {
	args := m.Called(ctx, principal, applicationID, confirmation)
	return args.Error(0)
}

var _ service.RestorationService = (*MockRestorationService)(nil)
