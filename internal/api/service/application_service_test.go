package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

func newApplicationServiceForTest(appRepo *MockApplicationRepository, docRepo *MockDocumentRepository) ApplicationService {
	return NewApplicationService(newTestLogger(), appRepo, docRepo, document.DefaultCatalog(), nil)
}

func TestApplicationServiceImpl_Submit(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	t.Run("Success", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		appRepo.On("Create", ctx, mock.AnythingOfType("*application.Application")).Return(nil).Once()

		app, err := svc.Submit(ctx, principal, SubmitApplicationInput{
			LoanType:     "home",
			Amount:       500000,
			Purpose:      "First home purchase",
			TenureMonths: 240,
		})

		require.NoError(t, err)
		assert.Equal(t, applicantID, app.ApplicantID)
		assert.Equal(t, application.StatusPending, app.Status)
		assert.Equal(t, 1, app.Version)
		require.Len(t, app.StatusHistory, 1)
		assert.Equal(t, "Application submitted", app.StatusHistory[0].Comment)
		appRepo.AssertExpectations(t)
	})

	t.Run("UnknownLoanType", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		_, err := svc.Submit(ctx, principal, SubmitApplicationInput{
			LoanType:     "yacht",
			Amount:       500000,
			Purpose:      "A yacht",
			TenureMonths: 240,
		})

		assert.ErrorIs(t, err, shared.ValidationError{})
		appRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		_, err := svc.Submit(ctx, principal, SubmitApplicationInput{
			LoanType:     "personal",
			Amount:       0,
			Purpose:      "Nothing really",
			TenureMonths: 12,
		})

		assert.ErrorIs(t, err, shared.ValidationError{})
	})
}

func TestApplicationServiceImpl_Get(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()

	t.Run("OwnerSeesDocumentState", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newPendingApp(t, applicantID)
		records := completeRecords(app.ID, applicantID)[:2]
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		docRepo.On("GetByApplication", ctx, app.ID).Return(records, nil).Once()

		view, err := svc.Get(ctx, applicantPrincipal(applicantID), app.ID)

		require.NoError(t, err)
		assert.Equal(t, app, view.Application)
		assert.Len(t, view.Documents, len(document.DefaultCatalog()))
		assert.Equal(t, 2, view.Completeness.Uploaded)
		assert.Equal(t, 6, view.Completeness.Total)
		assert.False(t, view.Completeness.Complete())
	})

	t.Run("OtherApplicantGetsNotFound", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newPendingApp(t, applicantID)
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()

		_, err := svc.Get(ctx, applicantPrincipal(uuid.New()), app.ID)

		assert.ErrorIs(t, err, shared.NotFoundError{})
		docRepo.AssertNotCalled(t, "GetByApplication", ctx, mock.Anything)
	})

	t.Run("UnderwriterSeesAny", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newPendingApp(t, applicantID)
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		docRepo.On("GetByApplication", ctx, app.ID).Return([]*document.Record{}, nil).Once()

		view, err := svc.Get(ctx, underwriterPrincipal(), app.ID)

		require.NoError(t, err)
		assert.Equal(t, app, view.Application)
	})
}

func TestApplicationServiceImpl_SoftDelete(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	t.Run("Success", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newPendingApp(t, applicantID)
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		appRepo.On("Update", ctx, app).Return(nil).Once()

		err := svc.SoftDelete(ctx, principal, app.ID)

		require.NoError(t, err)
		assert.True(t, app.IsDeleted)
		assert.NotNil(t, app.DeletedAt)
		assert.Equal(t, "Application deleted", app.LastHistoryEntry().Comment)
		appRepo.AssertExpectations(t)
	})

	t.Run("ApprovedApplicationRefused", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newUnderReviewApp(t, applicantID)
		require.NoError(t, app.Approve(100000, 12, 12, "Approved", uuid.New().String()))
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()

		err := svc.SoftDelete(ctx, principal, app.ID)

		assert.ErrorIs(t, err, shared.PreconditionError{})
		assert.False(t, app.IsDeleted)
		appRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("NotOwnerGetsNotFound", func(t *testing.T) {
		appRepo := new(MockApplicationRepository)
		docRepo := new(MockDocumentRepository)
		svc := newApplicationServiceForTest(appRepo, docRepo)

		app := newPendingApp(t, uuid.New())
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil).Once()

		err := svc.SoftDelete(ctx, principal, app.ID)

		assert.ErrorIs(t, err, shared.NotFoundError{})
	})
}
