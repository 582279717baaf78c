package persistence

import (
	"context"
	"errors"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAnalysisRepository implements analysis.Repository using GORM
type GormAnalysisRepository struct {
	db *gorm.DB
}

// NewGormAnalysisRepository creates a new GormAnalysisRepository
func NewGormAnalysisRepository(db *gorm.DB) *GormAnalysisRepository {
	return &GormAnalysisRepository{db: db}
}

// FindByID finds an analysis result by its ID
func (r *GormAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*analysis.Result, error) {
	var model models.AnalysisResultModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an analysis result by ID within a tenant
func (r *GormAnalysisRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*analysis.Result, error) {
	var model models.AnalysisResultModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocument finds the analysis result for a document within a tenant
func (r *GormAnalysisRepository) FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*analysis.Result, error) {
	var model models.AnalysisResultModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", tenantID, documentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an analysis result.
// Each document carries at most one analysis row; re-running analysis
// replaces the previous result via the unique (tenant, document) index.
func (r *GormAnalysisRepository) Save(ctx context.Context, result *analysis.Result) error {
	model := models.AnalysisResultModelFromDomain(result)
	err := r.db.WithContext(ctx).Save(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Ensure GormAnalysisRepository implements analysis.Repository
var _ analysis.Repository = (*GormAnalysisRepository)(nil)
