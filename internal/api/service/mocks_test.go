package service

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/restoration"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func applicantPrincipal(id uuid.UUID) *identity.Principal {
	return &identity.Principal{UserID: id, Role: identity.RoleApplicant, Name: "Test Applicant"}
}

func underwriterPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Role: identity.RoleUnderwriter, Name: "Test Underwriter"}
}

func adminPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Role: identity.RoleSystemAdmin, Name: "Test Admin"}
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetDeletedByID(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*application.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetAll(ctx context.Context) ([]*application.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetDeleted(ctx context.Context) ([]*application.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ application.Repository = (*MockApplicationRepository)(nil)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Upsert(ctx context.Context, rec *document.Record) (*document.Record, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Record), args.Error(1)
}

func (m *MockDocumentRepository) GetByApplication(ctx context.Context, applicationID uuid.UUID) ([]*document.Record, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Record), args.Error(1)
}

func (m *MockDocumentRepository) GetByApplicationAndType(ctx context.Context, applicationID uuid.UUID, t document.Type) (*document.Record, error) {
	args := m.Called(ctx, applicationID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Record), args.Error(1)
}

func (m *MockDocumentRepository) DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

var _ document.Repository = (*MockDocumentRepository)(nil)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, fileName string, contents io.Reader) (string, error) {
	args := m.Called(ctx, fileName, contents)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Open(ctx context.Context, storageID string) (io.ReadCloser, error) {
	args := m.Called(ctx, storageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, storageID string) error {
	args := m.Called(ctx, storageID)
	return args.Error(0)
}

var _ document.FileStore = (*MockFileStore)(nil)

type MockRestorationRepository struct {
	mock.Mock
}

func (m *MockRestorationRepository) Create(ctx context.Context, req *restoration.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRestorationRepository) GetByID(ctx context.Context, id uuid.UUID) (*restoration.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restoration.Request), args.Error(1)
}

func (m *MockRestorationRepository) GetPendingByApplication(ctx context.Context, applicationID uuid.UUID) (*restoration.Request, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restoration.Request), args.Error(1)
}

func (m *MockRestorationRepository) GetByRequester(ctx context.Context, requestedBy uuid.UUID) ([]*restoration.Request, error) {
	args := m.Called(ctx, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*restoration.Request), args.Error(1)
}

func (m *MockRestorationRepository) GetAll(ctx context.Context, status restoration.Status) ([]*restoration.Request, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*restoration.Request), args.Error(1)
}

func (m *MockRestorationRepository) Update(ctx context.Context, req *restoration.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRestorationRepository) DeleteByApplication(ctx context.Context, applicationID uuid.UUID) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

var _ restoration.Repository = (*MockRestorationRepository)(nil)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
