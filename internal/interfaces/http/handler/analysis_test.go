package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	analysisapp "github.com/GaudenzB/blueearth-contracts/internal/application/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/cache"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAnalysisRepository implements analysis.Repository for testing
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*analysis.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Result), args.Error(1)
}

func (m *MockAnalysisRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*analysis.Result, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Result), args.Error(1)
}

func (m *MockAnalysisRepository) FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*analysis.Result, error) {
	args := m.Called(ctx, tenantID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Result), args.Error(1)
}

func (m *MockAnalysisRepository) Save(ctx context.Context, result *analysis.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

// MockContractRepository implements contract.Repository for testing
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]contract.Contract, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

func (m *MockContractRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepository) FindByCounterparty(ctx context.Context, tenantID uuid.UUID, name string) ([]contract.Contract, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Get(0).([]contract.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type noopExtractor struct{}

func (noopExtractor) Extract(_ context.Context, _ *document.Document, _ io.Reader) (analysis.Extraction, map[string]float64, error) {
	return analysis.Extraction{}, nil, nil
}

func setupAnalysisHandler(repo *MockAnalysisRepository, docRepo *MockDocumentRepository) *AnalysisHandler {
	statusCache := cache.NewInMemoryStatusCache(time.Minute)
	worker := analysisapp.NewWorker(repo, docRepo, new(MockContractRepository),
		storage.NewMemoryObjectStorage(), noopExtractor{}, statusCache,
		analysisapp.DefaultWorkerConfig(), nil)
	service := analysisapp.NewService(repo, docRepo, statusCache, worker, nil)
	return NewAnalysisHandler(service)
}

func TestAnalysisHandler_Analyze_Success(t *testing.T) {
	repo := new(MockAnalysisRepository)
	docRepo := new(MockDocumentRepository)
	handler := setupAnalysisHandler(repo, docRepo)

	doc := createTestDocument(testTenantID)
	docRepo.On("FindByIDForTenant", mock.Anything, testTenantID, doc.ID).Return(doc, nil)
	repo.On("FindByDocument", mock.Anything, testTenantID, doc.ID).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*analysis.Result")).Return(nil)

	router := setupTestRouter()
	router.POST("/contracts/upload/analyze/:documentId", handler.Analyze)

	req := httptest.NewRequest(http.MethodPost, "/contracts/upload/analyze/"+doc.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data analysisapp.AnalysisResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(analysis.StatusPending), resp.Data.Status)
	assert.Equal(t, doc.ID, resp.Data.DocumentID)
	repo.AssertExpectations(t)
}

func TestAnalysisHandler_Analyze_SecondRequestReturnsExisting(t *testing.T) {
	repo := new(MockAnalysisRepository)
	docRepo := new(MockDocumentRepository)
	handler := setupAnalysisHandler(repo, docRepo)

	doc := createTestDocument(testTenantID)
	existing, err := analysis.NewResult(testTenantID, doc.ID)
	require.NoError(t, err)

	docRepo.On("FindByIDForTenant", mock.Anything, testTenantID, doc.ID).Return(doc, nil)
	repo.On("FindByDocument", mock.Anything, testTenantID, doc.ID).Return(existing, nil)

	router := setupTestRouter()
	router.POST("/contracts/upload/analyze/:documentId", handler.Analyze)

	req := httptest.NewRequest(http.MethodPost, "/contracts/upload/analyze/"+doc.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data analysisapp.AnalysisResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, existing.ID, resp.Data.ID)
	repo.AssertNotCalled(t, "Save")
}

func TestAnalysisHandler_Analyze_UnknownDocument(t *testing.T) {
	repo := new(MockAnalysisRepository)
	docRepo := new(MockDocumentRepository)
	handler := setupAnalysisHandler(repo, docRepo)

	documentID := uuid.New()
	docRepo.On("FindByIDForTenant", mock.Anything, testTenantID, documentID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.POST("/contracts/upload/analyze/:documentId", handler.Analyze)

	req := httptest.NewRequest(http.MethodPost, "/contracts/upload/analyze/"+documentID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisHandler_GetStatus_Pending(t *testing.T) {
	repo := new(MockAnalysisRepository)
	docRepo := new(MockDocumentRepository)
	handler := setupAnalysisHandler(repo, docRepo)

	result, err := analysis.NewResult(testTenantID, uuid.New())
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, testTenantID, result.ID).Return(result, nil)

	router := setupTestRouter()
	router.GET("/contracts/upload/analysis/:analysisId", handler.GetStatus)

	req := httptest.NewRequest(http.MethodGet, "/contracts/upload/analysis/"+result.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data analysisapp.AnalysisResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(analysis.StatusPending), resp.Data.Status)
	assert.Empty(t, resp.Data.CounterpartyName)
	assert.Nil(t, resp.Data.Confidence)
}

func TestAnalysisHandler_GetStatus_NotFound(t *testing.T) {
	repo := new(MockAnalysisRepository)
	docRepo := new(MockDocumentRepository)
	handler := setupAnalysisHandler(repo, docRepo)

	analysisID := uuid.New()
	repo.On("FindByIDForTenant", mock.Anything, testTenantID, analysisID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/contracts/upload/analysis/:analysisId", handler.GetStatus)

	req := httptest.NewRequest(http.MethodGet, "/contracts/upload/analysis/"+analysisID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
