package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clearbridge-loan-origination/internal/api/service"
	"github.com/clearbridge-loan-origination/internal/domain/application"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/domain/shared"
)

func applicantPrincipal(id uuid.UUID) *identity.Principal {
	return &identity.Principal{UserID: id, Role: identity.RoleApplicant, Name: "Jane Doe"}
}

func newTestApplication(t *testing.T, applicantID uuid.UUID) *application.Application {
	t.Helper()
	app, err := application.NewApplication(applicantID, application.LoanTypePersonal, 100000, "Home renovation", 12)
	require.NoError(t, err)
	return app
}

func TestApplicationHandler_Submit(t *testing.T) {
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	t.Run("successful submission", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.POST("/applications", h.Submit)

		app := newTestApplication(t, applicantID)
		mockService.On("Submit", mock.Anything, principal, service.SubmitApplicationInput{
			LoanType:     "personal",
			Amount:       100000,
			Purpose:      "Home renovation",
			TenureMonths: 12,
		}).Return(app, nil)

		body, _ := json.Marshal(SubmitApplicationRequest{
			LoanType:     "personal",
			Amount:       100000,
			Purpose:      "Home renovation",
			TenureMonths: 12,
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/applications", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response Response
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		require.Nil(t, response.Error)

		data, err := json.Marshal(response.Data)
		require.NoError(t, err)
		var appResp ApplicationResponse
		require.NoError(t, json.Unmarshal(data, &appResp))

		assert.Equal(t, app.ID.String(), appResp.ID)
		assert.Equal(t, applicantID.String(), appResp.ApplicantID)
		assert.Equal(t, "pending", appResp.Status)
		assert.Len(t, appResp.StatusHistory, 1)

		mockService.AssertExpectations(t)
	})

	t.Run("invalid request body", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.POST("/applications", h.Submit)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/applications", bytes.NewBufferString(`{"amount": -5}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "BAD_REQUEST", response.Error.Code)

		mockService.AssertNotCalled(t, "Submit")
	})

	t.Run("unknown loan type", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.POST("/applications", h.Submit)

		mockService.On("Submit", mock.Anything, principal, mock.Anything).
			Return(nil, shared.ValidationError{Field: "loan_type", Reason: "unknown loan type"})

		body, _ := json.Marshal(SubmitApplicationRequest{
			LoanType:     "crypto",
			Amount:       100000,
			Purpose:      "Home renovation",
			TenureMonths: 12,
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/applications", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "VALIDATION_FAILED", response.Error.Code)

		mockService.AssertExpectations(t)
	})
}

func TestApplicationHandler_GetByID(t *testing.T) {
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	t.Run("successful retrieval", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.GET("/applications/:id", h.GetByID)

		app := newTestApplication(t, applicantID)
		view := &service.ApplicationView{
			Application: app,
			Documents:   []document.RequirementView{},
			Completeness: document.Completeness{
				Uploaded:   0,
				Total:      6,
				Percentage: 0,
				Missing:    []document.Type{document.TypeIdentityProof},
			},
		}
		mockService.On("Get", mock.Anything, principal, app.ID).Return(view, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/applications/"+app.ID.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Nil(t, response.Error)

		data, err := json.Marshal(response.Data)
		require.NoError(t, err)
		var viewResp ApplicationViewResponse
		require.NoError(t, json.Unmarshal(data, &viewResp))

		assert.Equal(t, app.ID.String(), viewResp.Application.ID)
		assert.Equal(t, 6, viewResp.Completeness.Total)
		assert.False(t, viewResp.Completeness.Complete)
		assert.Contains(t, viewResp.Completeness.Missing, "identity_proof")

		mockService.AssertExpectations(t)
	})

	t.Run("application not found", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.GET("/applications/:id", h.GetByID)

		id := uuid.New()
		mockService.On("Get", mock.Anything, principal, id).
			Return(nil, shared.NotFoundError{Resource: "application", ID: id.String()})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/applications/"+id.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "NOT_FOUND", response.Error.Code)
	})

	t.Run("malformed ID", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.GET("/applications/:id", h.GetByID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/applications/not-a-uuid", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Get")
	})
}

func TestApplicationHandler_ListOwn(t *testing.T) {
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	mockService := new(MockApplicationService)
	h := NewApplicationHandler(newTestLogger(), mockService)

	r := setupTestRouter(principal)
	r.GET("/applications", h.ListOwn)

	first := newTestApplication(t, applicantID)
	second := newTestApplication(t, applicantID)
	mockService.On("ListOwn", mock.Anything, principal).
		Return([]*application.Application{first, second}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/applications", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var listResp ApplicationListResponse
	require.NoError(t, json.Unmarshal(data, &listResp))

	assert.Len(t, listResp.Applications, 2)
	assert.Equal(t, first.ID.String(), listResp.Applications[0].ID)

	mockService.AssertExpectations(t)
}

func TestApplicationHandler_Delete(t *testing.T) {
	applicantID := uuid.New()
	principal := applicantPrincipal(applicantID)

	t.Run("successful deletion", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.DELETE("/applications/:id", h.Delete)

		id := uuid.New()
		mockService.On("SoftDelete", mock.Anything, principal, id).Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/applications/"+id.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("approved application cannot be deleted", func(t *testing.T) {
		mockService := new(MockApplicationService)
		h := NewApplicationHandler(newTestLogger(), mockService)

		r := setupTestRouter(principal)
		r.DELETE("/applications/:id", h.Delete)

		id := uuid.New()
		mockService.On("SoftDelete", mock.Anything, principal, id).
			Return(shared.PreconditionError{Precondition: "approved applications cannot be deleted"})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/applications/"+id.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "FAILED_PRECONDITION", response.Error.Code)
	})
}
