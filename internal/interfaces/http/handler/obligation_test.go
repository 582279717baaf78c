package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractapp "github.com/GaudenzB/blueearth-contracts/internal/application/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObligationRepository implements contract.ObligationRepository for testing
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*contract.Obligation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Obligation), args.Error(1)
}

func (m *MockObligationRepository) FindByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]contract.Obligation, error) {
	args := m.Called(ctx, tenantID, contractID)
	return args.Get(0).([]contract.Obligation), args.Error(1)
}

func (m *MockObligationRepository) Save(ctx context.Context, obligation *contract.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func setupObligationHandler(repo *MockObligationRepository, contractRepo *MockContractRepository) *ObligationHandler {
	return NewObligationHandler(contractapp.NewObligationService(repo, contractRepo, nil))
}

func TestObligationHandler_Create_Success(t *testing.T) {
	repo := new(MockObligationRepository)
	contractRepo := new(MockContractRepository)
	handler := setupObligationHandler(repo, contractRepo)

	existing := createTestContract(testTenantID)
	contractRepo.On("FindByIDForTenant", mock.Anything, testTenantID, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*contract.Obligation")).Return(nil)

	router := setupTestRouter()
	router.POST("/contracts/:id/obligations", handler.Create)

	due := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	reqBody := contractapp.CreateObligationRequest{
		Title:      "Quarterly impact report",
		Type:       "reporting",
		DueDate:    &due,
		Recurrence: "quarterly",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/contracts/"+existing.ID.String()+"/obligations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data contractapp.ObligationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Quarterly impact report", resp.Data.Title)
	assert.Equal(t, "quarterly", resp.Data.Recurrence)
	repo.AssertExpectations(t)
}

func TestObligationHandler_Create_UnknownContract(t *testing.T) {
	repo := new(MockObligationRepository)
	contractRepo := new(MockContractRepository)
	handler := setupObligationHandler(repo, contractRepo)

	contractID := uuid.New()
	contractRepo.On("FindByIDForTenant", mock.Anything, testTenantID, contractID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.POST("/contracts/:id/obligations", handler.Create)

	body := []byte(`{"title": "Report", "type": "reporting"}`)
	req := httptest.NewRequest(http.MethodPost, "/contracts/"+contractID.String()+"/obligations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestObligationHandler_List_Success(t *testing.T) {
	repo := new(MockObligationRepository)
	contractRepo := new(MockContractRepository)
	handler := setupObligationHandler(repo, contractRepo)

	existing := createTestContract(testTenantID)
	obligation, err := contract.NewObligation(testTenantID, existing.ID, "Annual audit", contract.ObligationCompliance)
	require.NoError(t, err)

	contractRepo.On("FindByIDForTenant", mock.Anything, testTenantID, existing.ID).Return(existing, nil)
	repo.On("FindByContract", mock.Anything, testTenantID, existing.ID).Return([]contract.Obligation{*obligation}, nil)

	router := setupTestRouter()
	router.GET("/contracts/:id/obligations", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/contracts/"+existing.ID.String()+"/obligations", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []contractapp.ObligationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Annual audit", resp.Data[0].Title)
}

func TestObligationHandler_Update_Status(t *testing.T) {
	repo := new(MockObligationRepository)
	contractRepo := new(MockContractRepository)
	handler := setupObligationHandler(repo, contractRepo)

	existing := createTestContract(testTenantID)
	obligation, err := contract.NewObligation(testTenantID, existing.ID, "Annual audit", contract.ObligationCompliance)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, testTenantID, obligation.ID).Return(obligation, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*contract.Obligation")).Return(nil)

	router := setupTestRouter()
	router.PATCH("/contracts/:id/obligations/:obligationId", handler.Update)

	body := []byte(`{"status": "COMPLETED"}`)
	req := httptest.NewRequest(http.MethodPatch,
		"/contracts/"+existing.ID.String()+"/obligations/"+obligation.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data contractapp.ObligationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "COMPLETED", resp.Data.Status)
	repo.AssertExpectations(t)
}

func TestObligationHandler_Delete_Success(t *testing.T) {
	repo := new(MockObligationRepository)
	contractRepo := new(MockContractRepository)
	handler := setupObligationHandler(repo, contractRepo)

	existing := createTestContract(testTenantID)
	obligation, err := contract.NewObligation(testTenantID, existing.ID, "Annual audit", contract.ObligationCompliance)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, testTenantID, obligation.ID).Return(obligation, nil)
	repo.On("Delete", mock.Anything, testTenantID, obligation.ID).Return(nil)

	router := setupTestRouter()
	router.DELETE("/contracts/:id/obligations/:obligationId", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete,
		"/contracts/"+existing.ID.String()+"/obligations/"+obligation.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
